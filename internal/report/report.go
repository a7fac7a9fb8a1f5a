// Package report renders a scouting trip as a spreadsheet workbook for
// download from the dashboard.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/locusmaps/scoutmap/internal/scout"
)

const (
	sheetSummary   = "Summary"
	sheetChecklist = "Checklist"
	sheetPlaces    = "Related Places"
)

// Write renders the trip report workbook to w.
func Write(w io.Writer, trip scout.ScoutingTrip) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetSummary)
	if err := writeSummary(f, trip); err != nil {
		return err
	}
	if err := writeChecklist(f, trip.Checklist); err != nil {
		return err
	}
	if err := writePlaces(f, trip.RelatedPlaces); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, trip scout.ScoutingTrip) error {
	rows := [][]any{
		{"Trip ID", trip.ID},
		{"City", trip.CityID},
		{"Status", trip.Status},
		{"Created", trip.CreatedAt},
		{"Submitted", trip.SubmittedAt},
		{"Reviewed", trip.ReviewedAt},
		{"Reviewed by", trip.ReviewedBy},
	}
	if trip.Status == scout.StatusRejected {
		rows = append(rows, []any{"Rejection notes", trip.RejectionNotes})
	}
	if trip.Property != nil {
		rows = append(rows,
			[]any{"Property", trip.Property.Name},
			[]any{"Property ID", trip.Property.ID},
		)
	}
	rows = append(rows,
		[]any{"Asking rent", trip.Lease.AskingRent},
		[]any{"Size (sqm)", trip.Lease.SizeSqm},
		[]any{"Lease term (months)", trip.Lease.LeaseTermMonths},
		[]any{"Lease notes", trip.Lease.Notes},
	)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeChecklist(f *excelize.File, items []scout.ChecklistItem) error {
	if _, err := f.NewSheet(sheetChecklist); err != nil {
		return err
	}
	header := []any{"Question", "Checked", "Notes"}
	if err := f.SetSheetRow(sheetChecklist, "A1", &header); err != nil {
		return err
	}
	for i, item := range items {
		checked := "no"
		if item.IsChecked {
			checked = "yes"
		}
		row := []any{item.Question, checked, item.Notes}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetChecklist, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writePlaces(f *excelize.File, places []scout.LinkedItem) error {
	if _, err := f.NewSheet(sheetPlaces); err != nil {
		return err
	}
	header := []any{"Name", "Kind", "ID", "Lat", "Lng"}
	if err := f.SetSheetRow(sheetPlaces, "A1", &header); err != nil {
		return err
	}
	for i, p := range places {
		row := []any{p.Name, p.Kind, p.ID, p.Lat, p.Lng}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetPlaces, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

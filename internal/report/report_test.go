package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/locusmaps/scoutmap/internal/scout"
)

func sampleTrip() scout.ScoutingTrip {
	return scout.ScoutingTrip{
		ID:     "t1",
		CityID: "madrid",
		Status: scout.StatusSubmitted,
		Property: &scout.LinkedItem{
			ID:   "property-40.4200--3.7100",
			Name: "Calle Mayor 12, ground floor",
			Kind: "poi",
			Lat:  40.42,
			Lng:  -3.71,
		},
		RelatedPlaces: []scout.LinkedItem{
			{ID: "cafe-40.4168--3.7038", Name: "Café Central", Kind: "poi", Lat: 40.4168, Lng: -3.7038},
		},
		Checklist: []scout.ChecklistItem{
			{ID: "c1", Question: "Are neighboring units occupied?", IsChecked: true, Notes: "all let", IsDefault: true},
			{ID: "c2", Question: "Street parking?", IsChecked: false},
		},
		Lease: scout.LeaseBrief{
			AskingRent:      4200,
			SizeSqm:         118,
			LeaseTermMonths: 60,
		},
		CreatedAt:   "2026-03-01T10:00:00.000Z",
		SubmittedAt: "2026-03-04T17:30:00.000Z",
	}
}

func TestWriteRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTrip()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Checklist", "Related Places"}, f.GetSheetList())

	city, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "madrid", city)

	prop, _ := f.GetCellValue("Summary", "B8")
	assert.Equal(t, "Calle Mayor 12, ground floor", prop)

	q, _ := f.GetCellValue("Checklist", "A2")
	assert.Equal(t, "Are neighboring units occupied?", q)
	checked, _ := f.GetCellValue("Checklist", "B2")
	assert.Equal(t, "yes", checked)
	checked, _ = f.GetCellValue("Checklist", "B3")
	assert.Equal(t, "no", checked)

	name, _ := f.GetCellValue("Related Places", "A2")
	assert.Equal(t, "Café Central", name)
}

func TestWriteRejectedTripIncludesNotes(t *testing.T) {
	trip := sampleTrip()
	trip.Status = scout.StatusRejected
	trip.RejectionNotes = "asking rent too high"

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, trip))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	notes, err := f.GetCellValue("Summary", "B8")
	require.NoError(t, err)
	assert.Equal(t, "asking rent too high", notes)
}

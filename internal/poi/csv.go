package poi

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RowError describes a single row the decoder could not normalize. The
// row is skipped; the caller decides whether to log or surface it. This
// replaces silent NaN propagation with a typed error at the boundary.
type RowError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: bad value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Header aliases seen across the source exports. Matching is
// case-insensitive after trimming.
var columnAliases = map[string]string{
	"name":      "name",
	"title":     "name",
	"category":  "type",
	"type":      "type",
	"kind":      "type",
	"lat":       "lat",
	"latitude":  "lat",
	"y":         "lat",
	"lng":       "lng",
	"lon":       "lng",
	"long":      "lng",
	"longitude": "lng",
	"x":         "lng",
	"address":   "address",
	"street":    "address",
	"tags":      "tags",
}

// DecodeCSV reads a POI export and normalizes each row. Rows that fail
// validation are reported as RowErrors and skipped; only a missing or
// unusable header is fatal. fallbackType is used when the file has no
// category column.
func DecodeCSV(r io.Reader, source, fallbackType string) ([]POI, []*RowError, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}

	cols := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canon, ok := columnAliases[key]; ok {
			if _, dup := cols[canon]; !dup {
				cols[canon] = i
			}
		}
	}
	if _, ok := cols["lat"]; !ok {
		return nil, nil, fmt.Errorf("source %q: no latitude column in header %v", source, header)
	}
	if _, ok := cols["lng"]; !ok {
		return nil, nil, fmt.Errorf("source %q: no longitude column in header %v", source, header)
	}

	cell := func(rec []string, canon string) string {
		i, ok := cols[canon]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var pois []POI
	var rowErrs []*RowError
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, &RowError{Line: line, Column: "", Value: "", Err: err})
			continue
		}

		lat, err := RepairCoordinate(cell(rec, "lat"))
		if err != nil {
			rowErrs = append(rowErrs, &RowError{Line: line, Column: "lat", Value: cell(rec, "lat"), Err: err})
			continue
		}
		lng, err := RepairCoordinate(cell(rec, "lng"))
		if err != nil {
			rowErrs = append(rowErrs, &RowError{Line: line, Column: "lng", Value: cell(rec, "lng"), Err: err})
			continue
		}
		if !InRange(lat, lng) {
			// Some exports swap the pair; repair when the swap fits.
			if InRange(lng, lat) {
				lat, lng = lng, lat
			} else {
				rowErrs = append(rowErrs, &RowError{
					Line: line, Column: "lat",
					Value: fmt.Sprintf("%v,%v", lat, lng),
					Err:   fmt.Errorf("coordinates out of range"),
				})
				continue
			}
		}

		typ := cell(rec, "type")
		if typ == "" {
			typ = fallbackType
		}
		name := cell(rec, "name")
		if name == "" {
			rowErrs = append(rowErrs, &RowError{Line: line, Column: "name", Value: "", Err: fmt.Errorf("empty name")})
			continue
		}

		p := POI{
			PlaceID: PlaceID(typ, lat, lng),
			Name:    name,
			Type:    typ,
			Lat:     lat,
			Lng:     lng,
			Address: cell(rec, "address"),
			Source:  source,
		}
		if tags := cell(rec, "tags"); tags != "" {
			for _, t := range strings.Split(tags, ";") {
				if t = strings.TrimSpace(t); t != "" {
					p.Tags = append(p.Tags, t)
				}
			}
		}
		pois = append(pois, p)
	}
	return pois, rowErrs, nil
}

// RepairCoordinate parses a coordinate cell, fixing the malformations
// seen in the source exports: comma decimal separators and doubled
// decimal points (a traffic sensor export writes "40.44.168" for
// 40.44168).
func RepairCoordinate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty coordinate")
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.Count(s, ".") > 1 {
		first := strings.Index(s, ".")
		s = s[:first+1] + strings.ReplaceAll(s[first+1:], ".", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	return v, nil
}

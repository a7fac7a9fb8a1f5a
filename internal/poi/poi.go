// Package poi normalizes heterogeneous CSV and GeoJSON sources into a
// uniform point-of-interest model and derives the stable placeId used by
// lists and trips to reference a point.
package poi

import (
	"fmt"
	"regexp"
	"strconv"
)

// POI is the uniform model every source is normalized into.
type POI struct {
	PlaceID string   `json:"placeId"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Address string   `json:"address,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Source  string   `json:"source"`
}

// PlaceID derives the stable identifier for a point: type plus
// coordinates at four decimals, e.g. "cafe-40.4168--3.7038". The same
// input always yields the same id, so it survives reloads and can be
// reconstructed from any normalized POI.
func PlaceID(typ string, lat, lng float64) string {
	return fmt.Sprintf("%s-%s-%s", typ, formatCoord(lat), formatCoord(lng))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// placeIDPattern splits "<type>-<lat>-<lng>" where type may itself
// contain hyphens and both coordinates may be negative.
var placeIDPattern = regexp.MustCompile(`^(.+)-(-?\d+\.\d{4})-(-?\d+\.\d{4})$`)

// ParsePlaceID reconstructs the components of a derived id.
func ParsePlaceID(id string) (typ string, lat, lng float64, err error) {
	m := placeIDPattern.FindStringSubmatch(id)
	if m == nil {
		return "", 0, 0, fmt.Errorf("malformed placeId %q", id)
	}
	lat, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed placeId %q: %w", id, err)
	}
	lng, err = strconv.ParseFloat(m[3], 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed placeId %q: %w", id, err)
	}
	return m[1], lat, lng, nil
}

// InRange reports whether the pair is a plausible WGS84 coordinate.
func InRange(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

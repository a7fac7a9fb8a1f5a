package poi

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DecodeGeoJSON normalizes point features of a FeatureCollection into
// POIs. Non-point geometries are skipped; demographic polygon layers go
// through DecodeLayer instead.
func DecodeGeoJSON(data []byte, source, fallbackType string) ([]POI, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}

	var pois []POI
	for _, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		lng, lat := pt.Lon(), pt.Lat()
		if !InRange(lat, lng) {
			continue
		}

		typ := f.Properties.MustString("category", fallbackType)
		name := f.Properties.MustString("name", "")
		if name == "" {
			continue
		}

		p := POI{
			PlaceID: PlaceID(typ, lat, lng),
			Name:    name,
			Type:    typ,
			Lat:     lat,
			Lng:     lng,
			Address: f.Properties.MustString("address", ""),
			Source:  source,
		}
		pois = append(pois, p)
	}
	return pois, nil
}

// Layer is a parsed demographic overlay (income, population density,
// footfall). The feature collection is validated once and then served
// as-is to the map client.
type Layer struct {
	Name     string                     `json:"name"`
	Features *geojson.FeatureCollection `json:"features"`
}

// DecodeLayer validates a demographic GeoJSON layer. Every feature must
// carry a numeric "value" property; features without one are dropped so
// the client never renders NaN buckets.
func DecodeLayer(data []byte, name string) (*Layer, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing layer %s: %w", name, err)
	}

	kept := fc.Features[:0]
	for _, f := range fc.Features {
		if _, ok := numericProperty(f, "value"); ok {
			kept = append(kept, f)
		}
	}
	fc.Features = kept
	return &Layer{Name: name, Features: fc}, nil
}

func numericProperty(f *geojson.Feature, key string) (float64, bool) {
	v, ok := f.Properties[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

package poi

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoSource marks a request for a source file that does not exist.
var ErrNoSource = errors.New("no such source")

// Catalog serves normalized POIs and demographic layers from static
// files in a data directory, deduplicating loads through the injected
// cache. Sources are read once and kept until invalidated.
type Catalog struct {
	dir    string
	cache  *Cache
	logger *slog.Logger
}

func NewCatalog(dir string, cache *Cache, logger *slog.Logger) *Catalog {
	return &Catalog{dir: dir, cache: cache, logger: logger}
}

// Source loads and normalizes one named POI source. The name is the file
// base without extension; both <name>.csv and <name>.geojson are tried.
func (c *Catalog) Source(name string) ([]POI, error) {
	if !validSourceName(name) {
		return nil, fmt.Errorf("invalid source name %q", name)
	}
	v, err := c.cache.Load("source:"+name, func() (any, error) {
		return c.loadSource(name)
	})
	if err != nil {
		return nil, err
	}
	return v.([]POI), nil
}

func (c *Catalog) loadSource(name string) ([]POI, error) {
	csvPath := filepath.Join(c.dir, name+".csv")
	if f, err := os.Open(csvPath); err == nil {
		defer f.Close()
		pois, rowErrs, err := DecodeCSV(f, name, name)
		if err != nil {
			return nil, err
		}
		for _, re := range rowErrs {
			c.logger.Warn("skipping malformed row", "source", name, "error", re)
		}
		return pois, nil
	}

	data, err := os.ReadFile(filepath.Join(c.dir, name+".geojson"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("source %q: %w", name, ErrNoSource)
		}
		return nil, err
	}
	return DecodeGeoJSON(data, name, name)
}

// LayerByName loads a demographic overlay (<name>.geojson in the layers
// subdirectory).
func (c *Catalog) LayerByName(name string) (*Layer, error) {
	if !validSourceName(name) {
		return nil, fmt.Errorf("invalid layer name %q", name)
	}
	v, err := c.cache.Load("layer:"+name, func() (any, error) {
		data, err := os.ReadFile(filepath.Join(c.dir, "layers", name+".geojson"))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("layer %q: %w", name, ErrNoSource)
			}
			return nil, err
		}
		return DecodeLayer(data, name)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Layer), nil
}

// Invalidate drops cached results for one source so the next request
// re-reads the file.
func (c *Catalog) Invalidate(name string) {
	c.cache.Invalidate("source:" + name)
	c.cache.Invalidate("layer:" + name)
}

func validSourceName(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\.`)
}

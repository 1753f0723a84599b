// Package geo maps geographic coordinates to timezone identifiers.
package geo

import (
	"fmt"

	"github.com/ringsaturn/tzf"
)

// Finder resolves a coordinate pair to an IANA timezone identifier. The
// production implementation embeds a point-in-polygon dataset; alternative
// datasets can be substituted without touching the timezone service.
type Finder interface {
	TimezoneName(lat, lng float64) (string, error)
}

// TZFinder implements Finder on top of the tzf embedded boundary data.
// Lookups are in-memory and safe for concurrent use. Ocean points resolve
// to the nearest maritime zone (Etc/GMT±N), so every coordinate yields a
// zone.
type TZFinder struct {
	finder tzf.F
}

// NewTZFinder loads the embedded timezone boundary dataset. This is a
// one-time cost at process start.
func NewTZFinder() (*TZFinder, error) {
	f, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone boundary data: %w", err)
	}
	return &TZFinder{finder: f}, nil
}

// TimezoneName returns the timezone identifier covering the coordinates.
// tzf expects longitude first.
func (f *TZFinder) TimezoneName(lat, lng float64) (string, error) {
	name := f.finder.GetTimezoneName(lng, lat)
	if name == "" {
		return "", fmt.Errorf("no timezone found for coordinates (%f, %f)", lat, lng)
	}
	return name, nil
}

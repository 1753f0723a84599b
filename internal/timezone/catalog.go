// Package timezone implements the timezone catalog and conversion engine.
package timezone

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"epochzone/internal/models"
)

// zoneDirs are the usual locations of the IANA zoneinfo database. The first
// directory that exists is used.
var zoneDirs = []string{
	"/usr/share/zoneinfo",
	"/usr/lib/zoneinfo",
	"/usr/share/lib/zoneinfo",
}

// skipDirs are zoneinfo subtrees that duplicate the canonical names.
var skipDirs = map[string]bool{
	"posix": true,
	"right": true,
}

// Catalog is an immutable snapshot of the IANA timezone catalog, loaded once
// at process start. Entries keep the order in which the catalog lists them;
// locations are resolved eagerly so requests never touch the filesystem.
type Catalog struct {
	entries   []models.TimezoneListItem
	locations map[string]*time.Location
}

// LoadCatalog walks the system zoneinfo database and builds a catalog
// snapshot. Every entry is validated with time.LoadLocation before it is
// admitted, so Resolve cannot fail for a listed name.
func LoadCatalog() (*Catalog, error) {
	for _, dir := range zoneDirs {
		if _, err := os.Stat(dir); err == nil {
			return loadCatalogFrom(dir)
		}
	}
	return nil, fmt.Errorf("no zoneinfo database found in %v", zoneDirs)
}

func loadCatalogFrom(dir string) (*Catalog, error) {
	c := &Catalog{locations: make(map[string]*time.Location)}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		if d.IsDir() {
			if skipDirs[rel] {
				return filepath.SkipDir
			}
			return nil
		}
		if !isZoneName(rel) {
			return nil
		}
		loc, loadErr := time.LoadLocation(rel)
		if loadErr != nil {
			// Non-TZif files (leapseconds, tzdata.zi, ...) live in the
			// same tree; skip anything the runtime rejects.
			return nil
		}
		c.entries = append(c.entries, models.TimezoneListItem{
			Name:        rel,
			DisplayName: strings.ReplaceAll(rel, "_", " "),
		})
		c.locations[rel] = loc
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk zoneinfo database: %w", err)
	}
	if len(c.entries) == 0 {
		return nil, fmt.Errorf("zoneinfo database at %s contains no zones", dir)
	}
	return c, nil
}

// isZoneName filters out metadata files shipped alongside the TZif data.
// Zone identifiers start with an uppercase letter (Area/Location form, UTC,
// fixed aliases) while metadata files are lowercase or contain dots.
func isZoneName(name string) bool {
	if name == "" || strings.Contains(name, ".") {
		return false
	}
	first := rune(name[0])
	return unicode.IsUpper(first)
}

// Resolve looks up a zone identifier with an exact, case-sensitive match.
func (c *Catalog) Resolve(name string) (*time.Location, error) {
	loc, ok := c.locations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidZone, name)
	}
	return loc, nil
}

// List returns every catalog entry in catalog order. The returned slice is
// shared; callers must not modify it.
func (c *Catalog) List() []models.TimezoneListItem {
	return c.entries
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

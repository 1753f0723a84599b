package timezone

import (
	"fmt"
	"strings"
	"time"

	"epochzone/internal/geo"
	"epochzone/internal/models"
)

// datetime layouts accepted by the convert endpoint, tried in order.
var datetimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Service is the conversion engine. It is purely functional and stateless
// per call; the catalog snapshot and coordinate finder are injected at
// construction and immutable afterwards.
type Service struct {
	catalog *Catalog
	finder  geo.Finder
	now     func() time.Time
}

// NewService creates a new timezone service.
func NewService(catalog *Catalog, finder geo.Finder) *Service {
	return &Service{
		catalog: catalog,
		finder:  finder,
		now:     time.Now,
	}
}

// GetZoneInfo returns the current time and metadata for a timezone.
func (s *Service) GetZoneInfo(name string) (*models.TimezoneInfo, error) {
	loc, err := s.catalog.Resolve(name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	r := render(now, name, loc)

	return &models.TimezoneInfo{
		Timezone:     r.Timezone,
		CurrentTime:  r.Datetime,
		UTCOffset:    r.UTCOffset,
		Abbreviation: r.Abbreviation,
		IsDST:        r.IsDST,
		Timestamp:    r.Timestamp,
	}, nil
}

// ListZones returns every catalog entry in catalog order.
func (s *Service) ListZones() []models.TimezoneListItem {
	return s.catalog.List()
}

// ResolveCoordinates looks up the timezone covering a coordinate pair and
// returns its current info. The finder always yields some zone, including
// for ocean points; a finder failure is an infrastructure fault, not a
// validation error.
func (s *Service) ResolveCoordinates(lat, lng float64) (*models.TimezoneInfo, error) {
	name, err := s.finder.TimezoneName(lat, lng)
	if err != nil {
		return nil, fmt.Errorf("coordinate lookup failed: %w", err)
	}
	return s.GetZoneInfo(name)
}

// Convert renders one instant in both the source and target timezones.
func (s *Service) Convert(req *models.ConvertRequest) (*models.ConvertResponse, error) {
	instant, fromName, fromLoc, err := s.deriveInstant(req)
	if err != nil {
		return nil, err
	}

	toLoc, err := s.catalog.Resolve(req.To)
	if err != nil {
		return nil, fmt.Errorf("%w (target)", err)
	}

	return &models.ConvertResponse{
		From: render(instant, fromName, fromLoc),
		To:   render(instant, req.To, toLoc),
	}, nil
}

// deriveInstant resolves a ConvertRequest to a single absolute instant plus
// the source zone used for the from-side rendering. Structural problems are
// rejected before any parsing happens.
func (s *Service) deriveInstant(req *models.ConvertRequest) (time.Time, string, *time.Location, error) {
	switch {
	case req.Timestamp != nil && (req.Datetime != nil || req.From != nil):
		return time.Time{}, "", nil, ErrConflictingInstant

	case req.Timestamp != nil:
		return time.Unix(*req.Timestamp, 0).UTC(), "UTC", time.UTC, nil

	case req.Datetime == nil:
		return time.Time{}, "", nil, ErrMissingInstant

	case req.From == nil:
		return time.Time{}, "", nil, ErrMissingSourceZone
	}

	fromLoc, err := s.catalog.Resolve(*req.From)
	if err != nil {
		return time.Time{}, "", nil, fmt.Errorf("%w (source)", err)
	}

	naive, err := parseNaiveDatetime(*req.Datetime)
	if err != nil {
		return time.Time{}, "", nil, err
	}

	instant, err := resolveLocal(naive, fromLoc)
	if err != nil {
		return time.Time{}, "", nil, fmt.Errorf("%w: '%s' in %s", ErrAmbiguousLocalTime, *req.Datetime, *req.From)
	}

	return instant, *req.From, fromLoc, nil
}

// parseNaiveDatetime parses a naive wall-clock string, seconds defaulting
// to zero. The result carries UTC as a placeholder location.
func parseNaiveDatetime(value string) (time.Time, error) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: '%s'", ErrMalformedDatetime, value)
}

// resolveLocal maps a naive wall-clock value onto the unique instant with
// that wall clock in loc. Around DST transitions a wall-clock value can map
// to zero instants (spring-forward gap) or two (fall-back overlap); both
// cases are rejected.
func resolveLocal(naive time.Time, loc *time.Location) (time.Time, error) {
	// Collect the distinct UTC offsets in effect around the wall time. Any
	// transition relevant to this value lies within a day of it.
	offsets := make(map[int]bool)
	for _, probe := range []time.Duration{-24 * time.Hour, 0, 24 * time.Hour} {
		_, off := naive.Add(probe).In(loc).Zone()
		offsets[off] = true
	}

	var matches []time.Time
	for off := range offsets {
		candidate := naive.Add(-time.Duration(off) * time.Second)
		if sameWallClock(candidate.In(loc), naive) {
			matches = append(matches, candidate)
		}
	}

	if len(matches) != 1 {
		return time.Time{}, ErrAmbiguousLocalTime
	}
	return matches[0], nil
}

// sameWallClock compares calendar and clock fields, ignoring location.
func sameWallClock(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd &&
		a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second()
}

// render expresses one instant in one timezone. It cannot fail: the offset
// is computed numerically and a missing letter abbreviation is replaced by
// an explicit marker.
func render(instant time.Time, name string, loc *time.Location) models.ConvertTimezoneInfo {
	local := instant.In(loc)
	abbrev, offset := local.Zone()

	return models.ConvertTimezoneInfo{
		Timezone:     name,
		Datetime:     local.Format(time.RFC3339),
		UTCOffset:    formatUTCOffset(offset),
		Abbreviation: formatAbbreviation(abbrev),
		IsDST:        local.IsDST(),
		Timestamp:    instant.Unix(),
	}
}

// formatUTCOffset renders an offset in seconds as UTC±HH:MM.
func formatUTCOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, seconds/3600, seconds%3600/60)
}

// formatAbbreviation substitutes N/A when the catalog only defines a numeric
// offset for the zone. A numeric string would be indistinguishable from a
// real offset downstream.
func formatAbbreviation(abbrev string) string {
	if abbrev == "" || strings.HasPrefix(abbrev, "+") || strings.HasPrefix(abbrev, "-") {
		return "N/A"
	}
	return abbrev
}

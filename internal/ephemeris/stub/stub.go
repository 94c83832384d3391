// Package stub provides a scripted ephemeris source for tests and
// fixtures.
package stub

import (
	"kundali-engine/internal/domain"
	"kundali-engine/internal/ephemeris"
)

// Source serves fixed positions keyed by body, ignoring the queried
// instant. Unscripted bodies come back as zero positions.
type Source struct {
	Positions map[domain.Body]ephemeris.Position
	Err       error // when set, every call fails with it
}

var _ ephemeris.Source = (*Source)(nil)

// New returns a scripted source over the given positions.
func New(positions map[domain.Body]ephemeris.Position) *Source {
	return &Source{Positions: positions}
}

// Position implements ephemeris.Source.
func (s *Source) Position(body domain.Body, _ float64) (ephemeris.Position, error) {
	if s.Err != nil {
		return ephemeris.Position{}, s.Err
	}
	return s.Positions[body], nil
}

// Package ephemeris supplies tropical ecliptic positions for the nine
// chart bodies. The built-in analytic source covers roughly 3000 BCE
// through 3000 CE; any other ephemeris can stand in through the Source
// interface.
package ephemeris

import (
	"errors"

	"kundali-engine/internal/domain"
)

// ErrOutOfRange is returned for Julian Days outside the supported span.
var ErrOutOfRange = errors.New("julian day out of ephemeris range")

// Supported Julian Day span of the built-in source, roughly 3001 BCE
// through 3000 CE in the proleptic Gregorian calendar.
const (
	MinJD = 625000.0
	MaxJD = 2817000.0
)

// Position is one body's ecliptic state at a single instant.
type Position struct {
	Longitude float64 // tropical ecliptic of date, degrees [0,360)
	Latitude  float64 // ecliptic latitude, degrees
	Speed     float64 // longitude rate, degrees per day; negative while retrograde
}

// Source yields positions for chart computation. Implementations must
// be deterministic and side-effect free; retrograde state is derived by
// callers as Speed < 0, never stored.
type Source interface {
	Position(body domain.Body, jd float64) (Position, error)
}

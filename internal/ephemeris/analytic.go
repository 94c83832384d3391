package ephemeris

import (
	"fmt"

	"kundali-engine/internal/domain"
)

// Analytic is the built-in ephemeris source: Keplerian mean elements
// for the Sun and the five classical planets, the truncated lunar
// series for the Moon and the mean lunar node for Rahu and Ketu.
// Positions are mean (nutation ignored), tropical, ecliptic of date.
type Analytic struct{}

var _ Source = (*Analytic)(nil)

// NewAnalytic returns the built-in source.
func NewAnalytic() *Analytic {
	return &Analytic{}
}

// Position implements Source. Daily speed comes from a central
// difference half a day to each side, so the usable span is half a day
// inside the [MinJD, MaxJD] bounds.
func (a *Analytic) Position(body domain.Body, jd float64) (Position, error) {
	if !body.IsValid() {
		return Position{}, fmt.Errorf("unknown body %q", body)
	}
	if jd < MinJD+0.5 || jd > MaxJD-0.5 {
		return Position{}, fmt.Errorf("%w: jd %.4f outside [%.1f, %.1f]", ErrOutOfRange, jd, MinJD, MaxJD)
	}

	lon, lat := lonLatAt(body, jd)
	before, _ := lonLatAt(body, jd-0.5)
	after, _ := lonLatAt(body, jd+0.5)

	return Position{
		Longitude: lon,
		Latitude:  lat,
		Speed:     angularDelta(after, before),
	}, nil
}

func lonLatAt(body domain.Body, jd float64) (lon, lat float64) {
	switch body {
	case domain.BodyMoon:
		return moonLonLat(jd)
	case domain.BodyRahu:
		return meanNode(jd), 0
	case domain.BodyKetu:
		return norm360(meanNode(jd) + 180), 0
	default:
		return planetLonLat(body, jd)
	}
}

// angularDelta returns the signed minimal difference a-b in degrees,
// in (-180, 180].
func angularDelta(a, b float64) float64 {
	return norm180(a - b)
}

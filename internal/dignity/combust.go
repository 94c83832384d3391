package dignity

import (
	"math"

	"kundali-engine/internal/domain"
)

// combustOrbs gives the maximum separation from the Sun, in degrees of
// sidereal longitude, inside which a planet counts as combust. Retrograde
// Mercury and Venus use the tighter orb below.
var combustOrbs = map[domain.Body]float64{
	domain.BodyMoon:    12,
	domain.BodyMars:    17,
	domain.BodyMercury: 14,
	domain.BodyJupiter: 11,
	domain.BodyVenus:   10,
	domain.BodySaturn:  15,
}

var combustOrbsRetro = map[domain.Body]float64{
	domain.BodyMercury: 12,
	domain.BodyVenus:   8,
}

// combust reports whether a planet sits within its combustion orb of
// the Sun. The Sun itself and the nodes are never combust.
func combust(p domain.Planet, sunLon float64) bool {
	orb, ok := combustOrbs[p.Body]
	if !ok {
		return false
	}
	if p.Retrograde {
		if r, has := combustOrbsRetro[p.Body]; has {
			orb = r
		}
	}
	return separation(p.Longitude, sunLon) <= orb
}

// separation returns the minimal angular distance between two
// longitudes, in [0, 180].
func separation(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

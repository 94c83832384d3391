package ephemeris

import (
	"math"

	"kundali-engine/internal/domain"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// Keplerian mean elements with centennial rates, from the JPL
// approximation tables (Standish 1992). Angles in degrees, semi-major
// axes in AU; t is Julian centuries from J2000.
type elements struct {
	a, aDot       float64
	e, eDot       float64
	incl, inclDot float64
	l, lDot       float64 // mean longitude
	peri, periDot float64 // longitude of perihelion
	node, nodeDot float64 // longitude of ascending node
}

var earthElements = elements{
	1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668,
	100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0.0, 0.0,
}

var planetElements = map[domain.Body]elements{
	domain.BodyMercury: {
		0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749,
		252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081,
	},
	domain.BodyVenus: {
		0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890,
		181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418,
	},
	domain.BodyMars: {
		1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131,
		-4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343,
	},
	domain.BodyJupiter: {
		5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714,
		34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106,
	},
	domain.BodySaturn: {
		9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609,
		49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794,
	},
}

// helioVector returns heliocentric J2000 ecliptic coordinates in AU.
func (el elements) helioVector(t float64) (x, y, z float64) {
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	incl := el.incl + el.inclDot*t
	l := el.l + el.lDot*t
	peri := el.peri + el.periDot*t
	node := el.node + el.nodeDot*t

	m := norm180(l - peri)
	omega := peri - node
	ecc := kepler(m, e)

	xp := a * (cosd(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * sind(ecc)

	co, so := cosd(omega), sind(omega)
	cn, sn := cosd(node), sind(node)
	ci, si := cosd(incl), sind(incl)

	x = (co*cn-so*sn*ci)*xp + (-so*cn-co*sn*ci)*yp
	y = (co*sn+so*cn*ci)*xp + (-so*sn+co*cn*ci)*yp
	z = so*si*xp + co*si*yp
	return x, y, z
}

// kepler solves M = E - e*sin(E) for the eccentric anomaly, working in
// degrees. Converges in a handful of iterations for every planetary
// eccentricity.
func kepler(m, e float64) float64 {
	eStar := e * rad2deg
	ecc := m + eStar*sind(m)
	for i := 0; i < 30; i++ {
		dm := m - (ecc - eStar*sind(ecc))
		de := dm / (1 - e*cosd(ecc))
		ecc += de
		if math.Abs(de) < 1e-9 {
			break
		}
	}
	return ecc
}

// planetLonLat returns the geocentric tropical-of-date longitude and
// ecliptic latitude for the Sun or one of the five classical planets.
func planetLonLat(body domain.Body, jd float64) (lon, lat float64) {
	t := (jd - 2451545.0) / 36525.0
	ex, ey, ez := earthElements.helioVector(t)

	var gx, gy, gz float64
	if body == domain.BodySun {
		gx, gy, gz = -ex, -ey, -ez
	} else {
		px, py, pz := planetElements[body].helioVector(t)
		gx, gy, gz = px-ex, py-ey, pz-ez
	}

	lon = precess(norm360(math.Atan2(gy, gx)*rad2deg), t)
	lat = math.Atan2(gz, math.Hypot(gx, gy)) * rad2deg
	return lon, lat
}

// precess carries a J2000 ecliptic longitude to the ecliptic of date.
func precess(lonJ2000, t float64) float64 {
	return norm360(lonJ2000 + 1.39697*t + 0.000309*t*t)
}

func sind(d float64) float64 { return math.Sin(d * deg2rad) }
func cosd(d float64) float64 { return math.Cos(d * deg2rad) }

func norm360(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// norm180 brings an angle into (-180, 180].
func norm180(d float64) float64 {
	d = norm360(d)
	if d > 180 {
		d -= 360
	}
	return d
}

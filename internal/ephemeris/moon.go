package ephemeris

// Truncated lunar theory: the principal periodic terms of the standard
// series (Meeus ch. 47), good to a few hundredths of a degree across
// the supported span. Terms carrying the solar anomaly are damped by
// the eccentricity factor.

type moonTerm struct {
	coef       float64 // units of 1e-6 degree
	d, m, mp, f int
}

var moonLonTerms = []moonTerm{
	{6288774, 0, 0, 1, 0},
	{1274027, 2, 0, -1, 0},
	{658314, 2, 0, 0, 0},
	{213618, 0, 0, 2, 0},
	{-185116, 0, 1, 0, 0},
	{-114332, 0, 0, 0, 2},
	{58793, 2, 0, -2, 0},
	{57066, 2, -1, -1, 0},
	{53322, 2, 0, 1, 0},
	{45758, 2, -1, 0, 0},
	{-40923, 0, 1, -1, 0},
	{-34720, 1, 0, 0, 0},
	{-30383, 0, 1, 1, 0},
	{15327, 2, 0, 0, -2},
	{-12528, 0, 0, 1, 2},
	{10980, 0, 0, 1, -2},
	{10675, 4, 0, -1, 0},
	{10034, 0, 0, 3, 0},
	{8548, 4, 0, -2, 0},
	{-7888, 2, 1, -1, 0},
	{-6766, 2, 1, 0, 0},
	{-5163, 1, 0, -1, 0},
}

var moonLatTerms = []moonTerm{
	{5128122, 0, 0, 0, 1},
	{280602, 0, 0, 1, 1},
	{277693, 0, 0, 1, -1},
	{173237, 2, 0, 0, -1},
	{55413, 2, 0, -1, 1},
	{46271, 2, 0, -1, -1},
	{32573, 2, 0, 0, 1},
	{17198, 0, 0, 2, 1},
	{9266, 2, 0, 1, -1},
	{8822, 0, 0, 2, -1},
}

// moonLonLat returns the Moon's geocentric tropical longitude and
// ecliptic latitude at jd.
func moonLonLat(jd float64) (lon, lat float64) {
	t := (jd - 2451545.0) / 36525.0

	lp := norm360(218.3164477 + 481267.88123421*t - 0.0015786*t*t + t*t*t/538841.0 - t*t*t*t/65194000.0)
	d := norm360(297.8501921 + 445267.1114034*t - 0.0018819*t*t + t*t*t/545868.0 - t*t*t*t/113065000.0)
	m := norm360(357.5291092 + 35999.0502909*t - 0.0001536*t*t + t*t*t/24490000.0)
	mp := norm360(134.9633964 + 477198.8675055*t + 0.0087414*t*t + t*t*t/69699.0 - t*t*t*t/14712000.0)
	f := norm360(93.2720950 + 483202.0175233*t - 0.0036539*t*t - t*t*t/3526000.0 + t*t*t*t/863310000.0)
	eCorr := 1 - 0.002516*t - 0.0000074*t*t

	lon = norm360(lp + sumTerms(moonLonTerms, d, m, mp, f, eCorr)/1e6)
	lat = sumTerms(moonLatTerms, d, m, mp, f, eCorr) / 1e6
	return lon, lat
}

func sumTerms(terms []moonTerm, d, m, mp, f, eCorr float64) float64 {
	var sum float64
	for _, tm := range terms {
		arg := float64(tm.d)*d + float64(tm.m)*m + float64(tm.mp)*mp + float64(tm.f)*f
		v := tm.coef * sind(arg)
		switch tm.m {
		case 1, -1:
			v *= eCorr
		case 2, -2:
			v *= eCorr * eCorr
		}
		sum += v
	}
	return sum
}

// meanNode returns the mean longitude of the Moon's ascending node,
// the model behind Rahu. Ketu sits exactly opposite.
func meanNode(jd float64) float64 {
	t := (jd - 2451545.0) / 36525.0
	return norm360(125.0445479 - 1934.1362891*t + 0.0020754*t*t + t*t*t/467441.0)
}

// Package shadbala computes the six-fold strength score per planet.
//
// Each component is its own fixed formula on a 0..100 scale and reads
// only the built chart, never another component's output, so the six
// can be computed in any order. The aggregate is a weighted sum with
// frozen weights; per-planet minimum thresholds mark whether a planet
// clears its classical bar.
package shadbala

import (
	"math"

	"kundali-engine/internal/dignity"
	"kundali-engine/internal/domain"
)

// Aggregate weights, frozen. Positional strength dominates.
const (
	weightSthana     = 0.30
	weightDig        = 0.15
	weightKala       = 0.15
	weightCheshta    = 0.15
	weightNaisargika = 0.10
	weightDrik       = 0.15
)

// digStrongHouse is the house where each body holds full directional
// strength; strength decays linearly to zero at the opposite house.
// The nodes follow their co-ruling planets, Rahu with Saturn and Ketu
// with Mars.
var digStrongHouse = map[domain.Body]int{
	domain.BodySun:     10,
	domain.BodyMoon:    4,
	domain.BodyMars:    10,
	domain.BodyMercury: 1,
	domain.BodyJupiter: 1,
	domain.BodyVenus:   4,
	domain.BodySaturn:  7,
	domain.BodyRahu:    7,
	domain.BodyKetu:    10,
}

// diurnal marks the planets strong in daytime births; the rest are
// night-strong except Mercury, which always scores full.
var diurnal = map[domain.Body]bool{
	domain.BodySun:     true,
	domain.BodyJupiter: true,
	domain.BodyVenus:   true,
}

// naisargikaScores is the innate strength ladder, Sun strongest through
// Saturn weakest, shares of seven. The shadow planets sit below all.
var naisargikaScores = map[domain.Body]float64{
	domain.BodySun:     100,
	domain.BodyMoon:    100.0 * 6 / 7,
	domain.BodyVenus:   100.0 * 5 / 7,
	domain.BodyJupiter: 100.0 * 4 / 7,
	domain.BodyMercury: 100.0 * 3 / 7,
	domain.BodyMars:    100.0 * 2 / 7,
	domain.BodySaturn:  100.0 * 1 / 7,
	domain.BodyRahu:    20,
	domain.BodyKetu:    20,
}

// minimumTotals is the classical required-strength bar per planet,
// rescaled from rupas to the 0..100 aggregate.
var minimumTotals = map[domain.Body]float64{
	domain.BodySun:     65,
	domain.BodyMoon:    60,
	domain.BodyMars:    50,
	domain.BodyMercury: 70,
	domain.BodyJupiter: 65,
	domain.BodyVenus:   55,
	domain.BodySaturn:  50,
	domain.BodyRahu:    50,
	domain.BodyKetu:    50,
}

// Compute scores every planet. The day/night split reads from the
// Sun's house: houses 7 through 12 stand above the horizon under
// whole-sign counting.
func Compute(planets []domain.Planet) map[domain.Body]domain.ShadBalaScore {
	dayBirth := false
	var sunLon float64
	for _, p := range planets {
		if p.Body == domain.BodySun {
			dayBirth = p.House >= 7
			sunLon = p.Longitude
		}
	}

	out := make(map[domain.Body]domain.ShadBalaScore, len(planets))
	for _, p := range planets {
		s := domain.ShadBalaScore{
			Sthana:     sthanaBala(p),
			Dig:        digBala(p),
			Kala:       kalaBala(p, dayBirth, sunLon),
			Cheshta:    cheshtaBala(p),
			Naisargika: naisargikaScores[p.Body],
			Drik:       drikBala(p, planets),
		}
		s.Total = weightSthana*s.Sthana + weightDig*s.Dig + weightKala*s.Kala +
			weightCheshta*s.Cheshta + weightNaisargika*s.Naisargika + weightDrik*s.Drik
		s.MeetsMinimum = s.Total >= minimumTotals[p.Body]
		out[p.Body] = s
	}
	return out
}

// sthanaBala scales the placement dignity, halved under combustion.
func sthanaBala(p domain.Planet) float64 {
	return effectiveScore(p) * 100
}

// digBala decays linearly from 100 at the body's strong house to 0 at
// the opposite house.
func digBala(p domain.Planet) float64 {
	strong := digStrongHouse[p.Body]
	d := (p.House - strong + 12) % 12
	if d > 6 {
		d = 12 - d
	}
	return (1 - float64(d)/6) * 100
}

// kalaBala matches the planet's diurnal class against the birth half of
// the day. The Moon instead scores by its brightness, the separation
// from the Sun at full scale on the full moon. Mercury is strong in
// both halves.
func kalaBala(p domain.Planet, dayBirth bool, sunLon float64) float64 {
	switch p.Body {
	case domain.BodyMoon:
		return separation(p.Longitude, sunLon) / 180 * 100
	case domain.BodyMercury:
		return 100
	}
	if diurnal[p.Body] == dayBirth {
		return 100
	}
	return 40
}

// cheshtaBala rewards slow and retrograde motion. Retrogression scores
// full; the Sun, never retrograde, sits at the midpoint; the Moon
// scales by its pace against the fastest lunar motion; the rest decay
// from 75 toward 25 as direct speed approaches two degrees per day.
func cheshtaBala(p domain.Planet) float64 {
	if p.Retrograde {
		return 100
	}
	switch p.Body {
	case domain.BodySun:
		return 50
	case domain.BodyMoon:
		return math.Min(100, p.Speed/15*100)
	}
	frac := math.Min(1, p.Speed/2)
	return 50*(1-frac) + 25
}

// drikBala sums the full drishti casts landing on the planet's house,
// benefics lifting and malefics cutting around the neutral midpoint,
// each cast scaled by the caster's effective dignity.
func drikBala(p domain.Planet, planets []domain.Planet) float64 {
	score := 50.0
	for _, q := range planets {
		if q.Body == p.Body {
			continue
		}
		if !dignity.CastsDrishti(q.Body, q.House, p.House) {
			continue
		}
		contribution := 25 * effectiveScore(q)
		if q.Body.IsBenefic() {
			score += contribution
		} else {
			score -= contribution
		}
	}
	return math.Max(0, math.Min(100, score))
}

func effectiveScore(p domain.Planet) float64 {
	s := p.Dignity.Score()
	if p.Combust {
		s /= 2
	}
	return s
}

func separation(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

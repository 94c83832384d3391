// Package dignity grades planetary placements and derives the chart's
// angular relationships: dignity categories, combustion flags and the
// pairwise aspect list.
package dignity

import (
	"kundali-engine/internal/domain"
)

// exaltations maps each body to its exaltation sign, deep degree and
// the span [0, To) that grades exalted. Every planet but Mercury holds
// the whole sign; Mercury's Virgo partitions into exaltation (0-15),
// moolatrikona (15-20) and domicile (20-30). Debilitation is the
// seventh sign from exaltation.
var exaltations = map[domain.Body]struct {
	Sign domain.Sign
	Deg  float64
	To   float64
}{
	domain.BodySun:     {domain.SignAries, 10, 30},
	domain.BodyMoon:    {domain.SignTaurus, 3, 30},
	domain.BodyMars:    {domain.SignCapricorn, 28, 30},
	domain.BodyMercury: {domain.SignVirgo, 15, 15},
	domain.BodyJupiter: {domain.SignCancer, 5, 30},
	domain.BodyVenus:   {domain.SignPisces, 27, 30},
	domain.BodySaturn:  {domain.SignLibra, 20, 30},
	domain.BodyRahu:    {domain.SignTaurus, 20, 30},
	domain.BodyKetu:    {domain.SignScorpio, 20, 30},
}

// ownSigns lists each classical planet's domiciles. The nodes own none.
var ownSigns = map[domain.Body][]domain.Sign{
	domain.BodySun:     {domain.SignLeo},
	domain.BodyMoon:    {domain.SignCancer},
	domain.BodyMars:    {domain.SignAries, domain.SignScorpio},
	domain.BodyMercury: {domain.SignGemini, domain.SignVirgo},
	domain.BodyJupiter: {domain.SignSagittarius, domain.SignPisces},
	domain.BodyVenus:   {domain.SignTaurus, domain.SignLibra},
	domain.BodySaturn:  {domain.SignCapricorn, domain.SignAquarius},
}

// moolatrikonas maps each classical planet to its moolatrikona span.
var moolatrikonas = map[domain.Body]struct {
	Sign     domain.Sign
	From, To float64 // degrees within the sign, [From, To)
}{
	domain.BodySun:     {domain.SignLeo, 0, 20},
	domain.BodyMoon:    {domain.SignTaurus, 3, 30},
	domain.BodyMars:    {domain.SignAries, 0, 12},
	domain.BodyMercury: {domain.SignVirgo, 15, 20},
	domain.BodyJupiter: {domain.SignSagittarius, 0, 10},
	domain.BodyVenus:   {domain.SignLibra, 0, 15},
	domain.BodySaturn:  {domain.SignAquarius, 0, 20},
}

type relation int

const (
	relationFriend relation = iota
	relationNeutral
	relationEnemy
)

// friendships is the fixed permanent (naisargika) relationship table.
// Rows are the planet, entries its friends and enemies; everything else
// is neutral.
var friendships = map[domain.Body]struct {
	Friends []domain.Body
	Enemies []domain.Body
}{
	domain.BodySun: {
		Friends: []domain.Body{domain.BodyMoon, domain.BodyMars, domain.BodyJupiter},
		Enemies: []domain.Body{domain.BodyVenus, domain.BodySaturn},
	},
	domain.BodyMoon: {
		Friends: []domain.Body{domain.BodySun, domain.BodyMercury},
		Enemies: nil,
	},
	domain.BodyMars: {
		Friends: []domain.Body{domain.BodySun, domain.BodyMoon, domain.BodyJupiter},
		Enemies: []domain.Body{domain.BodyMercury},
	},
	domain.BodyMercury: {
		Friends: []domain.Body{domain.BodySun, domain.BodyVenus},
		Enemies: []domain.Body{domain.BodyMoon},
	},
	domain.BodyJupiter: {
		Friends: []domain.Body{domain.BodySun, domain.BodyMoon, domain.BodyMars},
		Enemies: []domain.Body{domain.BodyMercury, domain.BodyVenus},
	},
	domain.BodyVenus: {
		Friends: []domain.Body{domain.BodyMercury, domain.BodySaturn},
		Enemies: []domain.Body{domain.BodySun, domain.BodyMoon},
	},
	domain.BodySaturn: {
		Friends: []domain.Body{domain.BodyMercury, domain.BodyVenus},
		Enemies: []domain.Body{domain.BodySun, domain.BodyMoon, domain.BodyMars},
	},
}

// Result carries the stage output: planet copies with dignity,
// combustion and directed aspects filled, plus the canonical unordered
// aspect list.
type Result struct {
	Planets []domain.Planet
	Aspects []domain.Aspect
}

// Analyze grades every planet and computes the chart's aspects. Input
// planets are not mutated.
func Analyze(planets []domain.Planet) Result {
	out := make([]domain.Planet, len(planets))
	copy(out, planets)

	var sunLon float64
	for _, p := range out {
		if p.Body == domain.BodySun {
			sunLon = p.Longitude
		}
	}

	for i := range out {
		out[i].Dignity = Grade(out[i].Body, out[i].Sign, out[i].Degree)
		out[i].Combust = combust(out[i], sunLon)
	}

	pairs, directed := computeAspects(out)
	for i := range out {
		out[i].Aspects = directed[out[i].Body]
	}

	return Result{Planets: out, Aspects: pairs}
}

// Grade returns the dignity for a body standing at a degree of a sign.
// Moolatrikona spans take precedence over exaltation so the shared
// signs (Sun in Leo, Moon in Taurus) grade classically; past the
// exaltation band the sign grades as domicile.
func Grade(body domain.Body, sign domain.Sign, degree float64) domain.Dignity {
	if mt, ok := moolatrikonas[body]; ok && sign == mt.Sign && degree >= mt.From && degree < mt.To {
		return domain.DignityMoolatrikona
	}
	ex, hasExalt := exaltations[body]
	if hasExalt && sign == ex.Sign && degree < ex.To {
		return domain.DignityExalted
	}
	if hasExalt && sign == ex.Sign.Offset(6) {
		return domain.DignityDebilitated
	}
	for _, s := range ownSigns[body] {
		if sign == s {
			return domain.DignityOwn
		}
	}

	// nodes carry no friendships; anything unlisted sits neutral
	rel, ok := friendships[body]
	if !ok {
		return domain.DignityNeutral
	}
	disposer := sign.Ruler()
	for _, f := range rel.Friends {
		if disposer == f {
			return domain.DignityFriendly
		}
	}
	for _, e := range rel.Enemies {
		if disposer == e {
			return domain.DignityEnemy
		}
	}
	return domain.DignityNeutral
}

// Package varga generates harmonic divisional charts from the base
// placements.
//
// Each supported factor carries its classical mapping: the hora halves
// swing between Leo and Cancer, the drekkana walks the trines, the
// navamsa starts from the sign's element anchor, the trimsamsa splits
// unevenly between the five true planets. A mapped placement becomes a
// synthetic divisional longitude, and sign, nakshatra, pada and house
// re-derive from it through the same helpers the base chart uses.
package varga

import (
	"errors"
	"fmt"
	"math"

	"kundali-engine/internal/chart"
	"kundali-engine/internal/dignity"
	"kundali-engine/internal/domain"
)

// ErrUnsupportedFactor rejects division factors without a classical
// mapping here.
var ErrUnsupportedFactor = errors.New("unsupported division factor")

// DefaultFactors is the divisional set computed per chart, in ascending
// harmonic order.
var DefaultFactors = []int{2, 3, 7, 9, 10, 12, 30}

// navamsaAnchor maps a sign's element to the sign its ninths count
// from.
var navamsaAnchor = map[domain.Element]domain.Sign{
	domain.ElementFire:  domain.SignAries,
	domain.ElementEarth: domain.SignCapricorn,
	domain.ElementAir:   domain.SignLibra,
	domain.ElementWater: domain.SignCancer,
}

// trimsamsa spans: width in degrees and target sign, walked in order.
type trimsamsaSpan struct {
	width float64
	sign  domain.Sign
}

var trimsamsaOdd = []trimsamsaSpan{
	{5, domain.SignAries},
	{5, domain.SignAquarius},
	{8, domain.SignSagittarius},
	{7, domain.SignGemini},
	{5, domain.SignLibra},
}

var trimsamsaEven = []trimsamsaSpan{
	{5, domain.SignTaurus},
	{7, domain.SignVirgo},
	{8, domain.SignPisces},
	{5, domain.SignCapricorn},
	{5, domain.SignScorpio},
}

// Generate builds the divisional chart for one factor. Speed,
// retrogression and combustion carry over from the base placements;
// sign, house, nakshatra, pada and dignity re-derive under the
// division. The divisional Ascendant is mapped with the same rule as
// the planets and keeps the base Ascendant's confidence.
func Generate(factor int, asc domain.Ascendant, planets []domain.Planet) (domain.DivisionalChart, error) {
	ascSign, ascDeg, err := mapToDivision(factor, asc.Sign, asc.Degree)
	if err != nil {
		return domain.DivisionalChart{}, fmt.Errorf("map ascendant: %w", err)
	}
	ascLon := divisionalLongitude(ascSign, ascDeg)

	dAsc := domain.Ascendant{
		Longitude:  ascLon,
		Sign:       ascSign,
		Degree:     ascDeg,
		Nakshatra:  chart.NakshatraOf(ascLon),
		Pada:       chart.PadaOf(ascLon),
		Ruler:      ascSign.Ruler(),
		Confidence: asc.Confidence,
	}

	dPlanets := make([]domain.Planet, 0, len(planets))
	for _, p := range planets {
		sign, deg, err := mapToDivision(factor, p.Sign, p.Degree)
		if err != nil {
			return domain.DivisionalChart{}, fmt.Errorf("map %s: %w", p.Body, err)
		}
		lon := divisionalLongitude(sign, deg)
		dPlanets = append(dPlanets, domain.Planet{
			Body:       p.Body,
			Longitude:  lon,
			Sign:       sign,
			Degree:     deg,
			Nakshatra:  chart.NakshatraOf(lon),
			Pada:       chart.PadaOf(lon),
			House:      domain.SignDistance(ascSign, sign),
			Speed:      p.Speed,
			Retrograde: p.Retrograde,
			Combust:    p.Combust,
			Dignity:    dignity.Grade(p.Body, sign, deg),
		})
	}

	houses := make([]domain.House, 0, 12)
	for n := 1; n <= 12; n++ {
		sign := ascSign.Offset(n - 1)
		h := domain.House{
			Number:     n,
			Sign:       sign,
			Ruler:      sign.Ruler(),
			Cusp:       float64(int(sign)-1) * 30,
			Confidence: asc.Confidence,
		}
		for _, p := range dPlanets {
			if p.House == n {
				h.Occupants = append(h.Occupants, p.Body)
			}
		}
		houses = append(houses, h)
	}

	return domain.DivisionalChart{
		Factor:    factor,
		Ascendant: dAsc,
		Planets:   dPlanets,
		Houses:    houses,
	}, nil
}

// mapToDivision resolves a base sign and degree into the divisional
// sign and the degree within it. Part boundaries follow the floor rule,
// an exact boundary degree belonging to the later part.
func mapToDivision(factor int, sign domain.Sign, degree float64) (domain.Sign, float64, error) {
	part := int(degree * float64(factor) / 30)
	if part >= factor {
		part = factor - 1
	}
	deg := math.Mod(degree*float64(factor), 30)

	switch factor {
	case 2:
		// hora: Sun's half then Moon's for odd signs, mirrored for even
		if sign.IsOdd() {
			return []domain.Sign{domain.SignLeo, domain.SignCancer}[part], deg, nil
		}
		return []domain.Sign{domain.SignCancer, domain.SignLeo}[part], deg, nil
	case 3:
		return sign.Offset(part * 4), deg, nil
	case 7:
		if sign.IsOdd() {
			return sign.Offset(part), deg, nil
		}
		return sign.Offset(6 + part), deg, nil
	case 9:
		return navamsaAnchor[sign.Element()].Offset(part), deg, nil
	case 10:
		if sign.IsOdd() {
			return sign.Offset(part), deg, nil
		}
		return sign.Offset(8 + part), deg, nil
	case 12:
		return sign.Offset(part), deg, nil
	case 30:
		spans := trimsamsaOdd
		if !sign.IsOdd() {
			spans = trimsamsaEven
		}
		lo := 0.0
		for _, sp := range spans {
			if degree < lo+sp.width {
				return sp.sign, (degree - lo) / sp.width * 30, nil
			}
			lo += sp.width
		}
		last := spans[len(spans)-1]
		return last.sign, (degree - (30 - last.width)) / last.width * 30, nil
	default:
		return 0, 0, ErrUnsupportedFactor
	}
}

func divisionalLongitude(sign domain.Sign, degree float64) float64 {
	return float64(int(sign)-1)*30 + degree
}

// Package verification recomputes stored charts from their embedded
// birth inputs and reports field divergences. A clean pass is the
// operational proof that the engine is deterministic and that stored
// documents were produced by the current rule set.
package verification

import (
	"context"
	"fmt"
	"math"

	"kundali-engine/internal/domain"
)

// FloatTolerance is the tolerance for longitude and other float64
// comparisons. Discrete fields must match exactly.
const FloatTolerance = 1e-9

// FieldDivergence represents a mismatch between stored and recomputed values.
type FieldDivergence struct {
	Field    string      // field path, e.g. "Planets[SUN].Longitude"
	Expected interface{} // stored value
	Actual   interface{} // recomputed value
}

// Result contains the outcome of verifying a single chart.
type Result struct {
	ChartID     string            // verified chart ID
	Match       bool              // true if all fields match
	Divergences []FieldDivergence // list of divergent fields
}

// Report contains results for batch verification.
type Report struct {
	TotalCharts     int      // total charts verified
	MatchedCharts   int      // charts that matched exactly
	DivergentCharts int      // charts with divergences
	Results         []Result // individual results
}

// Verifier re-derives stored charts and compares them field by field.
type Verifier interface {
	// VerifyChart verifies a single chart by ID. It loads the stored
	// document, recomputes from the embedded birth input and compares.
	VerifyChart(ctx context.Context, chartID string) (*Result, error)

	// VerifyAll verifies every stored chart and returns a report.
	VerifyAll(ctx context.Context) (*Report, error)
}

// CompareKundalis compares a stored chart against a recomputation and
// returns the divergent fields. Longitudes, speeds, strengths and other
// floats use FloatTolerance; signs, houses, names and counts are exact.
func CompareKundalis(stored, recomputed *domain.Kundali) []FieldDivergence {
	var divergences []FieldDivergence

	diverge := func(field string, expected, actual interface{}) {
		divergences = append(divergences, FieldDivergence{Field: field, Expected: expected, Actual: actual})
	}

	if stored.ChartID != recomputed.ChartID {
		diverge("ChartID", stored.ChartID, recomputed.ChartID)
	}
	if !floatEquals(stored.JulianDay, recomputed.JulianDay) {
		diverge("JulianDay", stored.JulianDay, recomputed.JulianDay)
	}
	if !floatEquals(stored.Ayanamsa, recomputed.Ayanamsa) {
		diverge("Ayanamsa", stored.Ayanamsa, recomputed.Ayanamsa)
	}
	if stored.TimeKnown != recomputed.TimeKnown {
		diverge("TimeKnown", stored.TimeKnown, recomputed.TimeKnown)
	}
	if !stored.BirthUTC.Equal(recomputed.BirthUTC) {
		diverge("BirthUTC", stored.BirthUTC, recomputed.BirthUTC)
	}

	compareAscendant("Ascendant", stored.Ascendant, recomputed.Ascendant, diverge)
	comparePlanets("Planets", stored.Planets, recomputed.Planets, diverge)
	compareHouses(stored.Houses, recomputed.Houses, diverge)
	compareAspects(stored.Aspects, recomputed.Aspects, diverge)
	compareYogas("Yogas", stored.Yogas, recomputed.Yogas, diverge)
	compareDasha(stored.Dasha, recomputed.Dasha, diverge)
	compareShadBala(stored.ShadBala, recomputed.ShadBala, diverge)
	compareDivisionals(stored.Divisionals, recomputed.Divisionals, diverge)

	return divergences
}

func compareAscendant(path string, stored, recomputed domain.Ascendant, diverge func(string, interface{}, interface{})) {
	if !floatEquals(stored.Longitude, recomputed.Longitude) {
		diverge(path+".Longitude", stored.Longitude, recomputed.Longitude)
	}
	if stored.Sign != recomputed.Sign {
		diverge(path+".Sign", stored.Sign, recomputed.Sign)
	}
	if stored.Nakshatra != recomputed.Nakshatra {
		diverge(path+".Nakshatra", stored.Nakshatra, recomputed.Nakshatra)
	}
	if stored.Pada != recomputed.Pada {
		diverge(path+".Pada", stored.Pada, recomputed.Pada)
	}
	if stored.Ruler != recomputed.Ruler {
		diverge(path+".Ruler", stored.Ruler, recomputed.Ruler)
	}
	if stored.Confidence != recomputed.Confidence {
		diverge(path+".Confidence", stored.Confidence, recomputed.Confidence)
	}
}

func comparePlanets(path string, stored, recomputed []domain.Planet, diverge func(string, interface{}, interface{})) {
	if len(stored) != len(recomputed) {
		diverge(path+".len", len(stored), len(recomputed))
		return
	}
	for i, sp := range stored {
		rp := recomputed[i]
		field := fmt.Sprintf("%s[%s]", path, sp.Body)
		if sp.Body != rp.Body {
			diverge(field+".Body", sp.Body, rp.Body)
			continue
		}
		if !floatEquals(sp.Longitude, rp.Longitude) {
			diverge(field+".Longitude", sp.Longitude, rp.Longitude)
		}
		if !floatEquals(sp.Speed, rp.Speed) {
			diverge(field+".Speed", sp.Speed, rp.Speed)
		}
		if sp.Sign != rp.Sign {
			diverge(field+".Sign", sp.Sign, rp.Sign)
		}
		if sp.House != rp.House {
			diverge(field+".House", sp.House, rp.House)
		}
		if sp.Nakshatra != rp.Nakshatra {
			diverge(field+".Nakshatra", sp.Nakshatra, rp.Nakshatra)
		}
		if sp.Pada != rp.Pada {
			diverge(field+".Pada", sp.Pada, rp.Pada)
		}
		if sp.Retrograde != rp.Retrograde {
			diverge(field+".Retrograde", sp.Retrograde, rp.Retrograde)
		}
		if sp.Combust != rp.Combust {
			diverge(field+".Combust", sp.Combust, rp.Combust)
		}
		if sp.Dignity != rp.Dignity {
			diverge(field+".Dignity", sp.Dignity, rp.Dignity)
		}
	}
}

func compareHouses(stored, recomputed []domain.House, diverge func(string, interface{}, interface{})) {
	if len(stored) != len(recomputed) {
		diverge("Houses.len", len(stored), len(recomputed))
		return
	}
	for i, sh := range stored {
		rh := recomputed[i]
		field := fmt.Sprintf("Houses[%d]", sh.Number)
		if sh.Sign != rh.Sign {
			diverge(field+".Sign", sh.Sign, rh.Sign)
		}
		if sh.Confidence != rh.Confidence {
			diverge(field+".Confidence", sh.Confidence, rh.Confidence)
		}
		if len(sh.Occupants) != len(rh.Occupants) {
			diverge(field+".Occupants.len", len(sh.Occupants), len(rh.Occupants))
			continue
		}
		for j, b := range sh.Occupants {
			if rh.Occupants[j] != b {
				diverge(fmt.Sprintf("%s.Occupants[%d]", field, j), b, rh.Occupants[j])
			}
		}
	}
}

func compareAspects(stored, recomputed []domain.Aspect, diverge func(string, interface{}, interface{})) {
	if len(stored) != len(recomputed) {
		diverge("Aspects.len", len(stored), len(recomputed))
		return
	}
	for i, sa := range stored {
		ra := recomputed[i]
		field := fmt.Sprintf("Aspects[%d]", i)
		if sa.From != ra.From || sa.To != ra.To || sa.Type != ra.Type {
			diverge(field, fmt.Sprintf("%s-%s %s", sa.From, sa.To, sa.Type),
				fmt.Sprintf("%s-%s %s", ra.From, ra.To, ra.Type))
			continue
		}
		if !floatEquals(sa.Orb, ra.Orb) {
			diverge(field+".Orb", sa.Orb, ra.Orb)
		}
		if sa.Applying != ra.Applying {
			diverge(field+".Applying", sa.Applying, ra.Applying)
		}
		if !floatEquals(sa.Strength, ra.Strength) {
			diverge(field+".Strength", sa.Strength, ra.Strength)
		}
	}
}

func compareYogas(path string, stored, recomputed []domain.Yoga, diverge func(string, interface{}, interface{})) {
	if len(stored) != len(recomputed) {
		diverge(path+".len", len(stored), len(recomputed))
		return
	}
	for i, sy := range stored {
		ry := recomputed[i]
		field := fmt.Sprintf("%s[%d]", path, i)
		if sy.Name != ry.Name {
			diverge(field+".Name", sy.Name, ry.Name)
			continue
		}
		if sy.Polarity != ry.Polarity {
			diverge(field+".Polarity", sy.Polarity, ry.Polarity)
		}
		if sy.House != ry.House {
			diverge(field+".House", sy.House, ry.House)
		}
		if !floatEquals(sy.Strength, ry.Strength) {
			diverge(field+".Strength", sy.Strength, ry.Strength)
		}
		if len(sy.Participants) != len(ry.Participants) {
			diverge(field+".Participants.len", len(sy.Participants), len(ry.Participants))
			continue
		}
		for j, b := range sy.Participants {
			if ry.Participants[j] != b {
				diverge(fmt.Sprintf("%s.Participants[%d]", field, j), b, ry.Participants[j])
			}
		}
	}
}

func compareDasha(stored, recomputed domain.Dasha, diverge func(string, interface{}, interface{})) {
	if stored.RootLord != recomputed.RootLord {
		diverge("Dasha.RootLord", stored.RootLord, recomputed.RootLord)
	}
	if !floatEquals(stored.BalanceYears, recomputed.BalanceYears) {
		diverge("Dasha.BalanceYears", stored.BalanceYears, recomputed.BalanceYears)
	}
	if stored.SubConfidence != recomputed.SubConfidence {
		diverge("Dasha.SubConfidence", stored.SubConfidence, recomputed.SubConfidence)
	}
	if len(stored.Periods) != len(recomputed.Periods) {
		diverge("Dasha.Periods.len", len(stored.Periods), len(recomputed.Periods))
		return
	}
	for i, sp := range stored.Periods {
		rp := recomputed.Periods[i]
		field := fmt.Sprintf("Dasha.Periods[%d]", i)
		if sp.Lord != rp.Lord {
			diverge(field+".Lord", sp.Lord, rp.Lord)
		}
		if !floatEquals(sp.Years, rp.Years) {
			diverge(field+".Years", sp.Years, rp.Years)
		}
		if !sp.Start.Equal(rp.Start) {
			diverge(field+".Start", sp.Start, rp.Start)
		}
		if !sp.End.Equal(rp.End) {
			diverge(field+".End", sp.End, rp.End)
		}
	}
}

func compareShadBala(stored, recomputed map[domain.Body]domain.ShadBalaScore, diverge func(string, interface{}, interface{})) {
	if len(stored) != len(recomputed) {
		diverge("ShadBala.len", len(stored), len(recomputed))
		return
	}
	for _, body := range domain.Bodies {
		ss, ok := stored[body]
		if !ok {
			continue
		}
		rs, ok := recomputed[body]
		field := fmt.Sprintf("ShadBala[%s]", body)
		if !ok {
			diverge(field, ss.Total, nil)
			continue
		}
		if !floatEquals(ss.Total, rs.Total) {
			diverge(field+".Total", ss.Total, rs.Total)
		}
		if ss.MeetsMinimum != rs.MeetsMinimum {
			diverge(field+".MeetsMinimum", ss.MeetsMinimum, rs.MeetsMinimum)
		}
	}
}

func compareDivisionals(stored, recomputed map[int]domain.DivisionalChart, diverge func(string, interface{}, interface{})) {
	if len(stored) != len(recomputed) {
		diverge("Divisionals.len", len(stored), len(recomputed))
		return
	}
	for factor, sd := range stored {
		rd, ok := recomputed[factor]
		field := fmt.Sprintf("Divisionals[%d]", factor)
		if !ok {
			diverge(field, "present", "missing")
			continue
		}
		compareAscendant(field+".Ascendant", sd.Ascendant, rd.Ascendant, diverge)
		comparePlanets(field+".Planets", sd.Planets, rd.Planets, diverge)
		compareYogas(field+".Yogas", sd.Yogas, rd.Yogas, diverge)
	}
}

// floatEquals compares two float64 values within FloatTolerance.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= FloatTolerance
}

package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"kundali-engine/internal/domain"
	"kundali-engine/internal/verification"
)

// divisionNames maps supported harmonic factors to their classical names.
var divisionNames = map[int]string{
	2:  "Hora",
	3:  "Drekkana",
	7:  "Saptamsa",
	9:  "Navamsa",
	10: "Dasamsa",
	12: "Dwadasamsa",
	30: "Trimsamsa",
}

// RenderMarkdown renders one Kundali as a Markdown string.
func RenderMarkdown(k *domain.Kundali) string {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# Kundali %s\n\n", k.ChartID))
	in := k.Input
	if in.TimeKnown {
		sb.WriteString(fmt.Sprintf("Born %04d-%02d-%02d %02d:%02d:%02d %s at %.4f, %.4f\n\n",
			in.Year, in.Month, in.Day, in.Hour, in.Minute, in.Second,
			in.Timezone, in.Latitude, in.Longitude))
	} else {
		sb.WriteString(fmt.Sprintf("Born %04d-%02d-%02d (time unknown) %s at %.4f, %.4f\n\n",
			in.Year, in.Month, in.Day, in.Timezone, in.Latitude, in.Longitude))
	}
	sb.WriteString(fmt.Sprintf("UTC: %s | JD: %.6f | Ayanamsa: %.6f\n\n",
		k.BirthUTC.Format(time.RFC3339), k.JulianDay, k.Ayanamsa))

	// Ascendant
	asc := k.Ascendant
	sb.WriteString(fmt.Sprintf("Ascendant: %s %.2f in %s pada %d, ruled by %s (confidence %s)\n\n",
		asc.Sign, asc.Degree, asc.Nakshatra, asc.Pada, asc.Ruler, asc.Confidence))

	// Planetary Positions
	sb.WriteString("## Planetary Positions\n\n")
	sb.WriteString("| Planet | Sign | Degree | Nakshatra | Pada | House | Dignity | Flags |\n")
	sb.WriteString("|--------|------|--------|-----------|------|-------|---------|-------|\n")
	for _, p := range k.Planets {
		sb.WriteString(fmt.Sprintf("| %s | %s | %.2f | %s | %d | %d | %s | %s |\n",
			p.Body, p.Sign, p.Degree, p.Nakshatra, p.Pada, p.House, p.Dignity, planetFlags(p)))
	}
	sb.WriteString("\n")

	// Houses
	sb.WriteString("## Houses\n\n")
	sb.WriteString("| House | Sign | Ruler | Occupants | Confidence |\n")
	sb.WriteString("|-------|------|-------|-----------|------------|\n")
	for _, h := range k.Houses {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			h.Number, h.Sign, h.Ruler, bodyList(h.Occupants), h.Confidence))
	}
	sb.WriteString("\n")

	// Aspects
	sb.WriteString("## Aspects\n\n")
	if len(k.Aspects) > 0 {
		sb.WriteString("| From | To | Type | Orb | Applying | Strength |\n")
		sb.WriteString("|------|----|------|-----|----------|----------|\n")
		for _, a := range k.Aspects {
			applying := "no"
			if a.Applying {
				applying = "yes"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.2f | %s | %.1f |\n",
				a.From, a.To, a.Type, a.Orb, applying, a.Strength))
		}
	} else {
		sb.WriteString("No aspects within orb.\n")
	}
	sb.WriteString("\n")

	// Yogas
	sb.WriteString("## Yogas\n\n")
	if len(k.Yogas) > 0 {
		sb.WriteString("| Yoga | Polarity | Participants | House | Strength |\n")
		sb.WriteString("|------|----------|--------------|-------|----------|\n")
		for _, y := range k.Yogas {
			house := "-"
			if y.House > 0 {
				house = fmt.Sprintf("%d", y.House)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %.1f |\n",
				y.Name, y.Polarity, bodyList(y.Participants), house, y.Strength))
		}
	} else {
		sb.WriteString("No yogas detected.\n")
	}
	sb.WriteString("\n")

	// Dasha timeline
	sb.WriteString("## Vimshottari Dasha\n\n")
	sb.WriteString(fmt.Sprintf("Root lord %s, balance %.4f years at birth. Sub-period confidence: %s\n\n",
		k.Dasha.RootLord, k.Dasha.BalanceYears, k.Dasha.SubConfidence))
	sb.WriteString("| Lord | Start | End | Years |\n")
	sb.WriteString("|------|-------|-----|-------|\n")
	for _, p := range k.Dasha.Periods {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.4f |\n",
			p.Lord, p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"), p.Years))
	}
	sb.WriteString("\n")

	// Shad Bala
	sb.WriteString("## Shad Bala\n\n")
	sb.WriteString("| Planet | Sthana | Dig | Kala | Cheshta | Naisargika | Drik | Total | Minimum |\n")
	sb.WriteString("|--------|--------|-----|------|---------|------------|------|-------|--------|\n")
	for _, b := range domain.Bodies {
		score, ok := k.ShadBala[b]
		if !ok {
			continue
		}
		minimum := "no"
		if score.MeetsMinimum {
			minimum = "yes"
		}
		sb.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %s |\n",
			b, score.Sthana, score.Dig, score.Kala, score.Cheshta,
			score.Naisargika, score.Drik, score.Total, minimum))
	}
	sb.WriteString("\n")

	// Divisional Charts
	sb.WriteString("## Divisional Charts\n\n")
	if len(k.Divisionals) > 0 {
		factors := make([]int, 0, len(k.Divisionals))
		for f := range k.Divisionals {
			factors = append(factors, f)
		}
		sort.Ints(factors)

		sb.WriteString("| Chart | Ascendant | Sun | Moon | Yogas |\n")
		sb.WriteString("|-------|-----------|-----|------|-------|\n")
		for _, f := range factors {
			d := k.Divisionals[f]
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d |\n",
				divisionLabel(f), d.Ascendant.Sign,
				planetSign(d.Planets, domain.BodySun), planetSign(d.Planets, domain.BodyMoon),
				len(d.Yogas)))
		}
	} else {
		sb.WriteString("No divisional charts computed.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// RenderSummary renders a chart collection summary as Markdown.
func RenderSummary(s *ChartSummary) string {
	var sb strings.Builder

	sb.WriteString("# Chart Collection Summary\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", s.GeneratedAt.Format(time.RFC3339)))

	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Charts | %d |\n", s.TotalCharts))
	sb.WriteString(fmt.Sprintf("| Timed Births | %d |\n", s.TimedCharts))
	sb.WriteString(fmt.Sprintf("| Untimed Births | %d |\n", s.UntimedCharts))
	if !s.EarliestBirth.IsZero() {
		sb.WriteString(fmt.Sprintf("| Earliest Birth | %s |\n", s.EarliestBirth.Format(time.RFC3339)))
		sb.WriteString(fmt.Sprintf("| Latest Birth | %s |\n", s.LatestBirth.Format(time.RFC3339)))
	}
	sb.WriteString("\n")

	sb.WriteString("## Rising Signs\n\n")
	if len(s.AscendantSigns) > 0 {
		sb.WriteString("| Sign | Count |\n")
		sb.WriteString("|------|-------|\n")
		for _, row := range s.AscendantSigns {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", row.Sign, row.Count))
		}
	} else {
		sb.WriteString("No charts stored.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Yoga Frequency\n\n")
	if len(s.YogaFrequency) > 0 {
		sb.WriteString("| Yoga | Polarity | Count |\n")
		sb.WriteString("|------|----------|-------|\n")
		for _, row := range s.YogaFrequency {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d |\n", row.Name, row.Polarity, row.Count))
		}
	} else {
		sb.WriteString("No yogas detected.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Retrograde Placements\n\n")
	if len(s.Retrogrades) > 0 {
		sb.WriteString("| Planet | Count |\n")
		sb.WriteString("|--------|-------|\n")
		for _, row := range s.Retrogrades {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", row.Body, row.Count))
		}
	} else {
		sb.WriteString("No retrograde placements.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// RenderVerification renders a recomputation report as Markdown.
func RenderVerification(r *verification.Report) string {
	var sb strings.Builder

	sb.WriteString("# Verification Report\n\n")
	sb.WriteString(fmt.Sprintf("Charts: %d | Matched: %d | Divergent: %d\n\n",
		r.TotalCharts, r.MatchedCharts, r.DivergentCharts))

	if r.DivergentCharts == 0 {
		sb.WriteString("All stored charts recomputed cleanly.\n")
		return sb.String()
	}

	for _, res := range r.Results {
		if res.Match {
			continue
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", res.ChartID))
		sb.WriteString("| Field | Stored | Recomputed |\n")
		sb.WriteString("|-------|--------|------------|\n")
		for _, d := range res.Divergences {
			sb.WriteString(fmt.Sprintf("| %s | %v | %v |\n", d.Field, d.Expected, d.Actual))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// planetFlags marks retrograde and combust placements.
func planetFlags(p domain.Planet) string {
	flags := ""
	if p.Retrograde {
		flags += "R"
	}
	if p.Combust {
		flags += "C"
	}
	if flags == "" {
		return "-"
	}
	return flags
}

// bodyList joins bodies for a table cell, "-" when empty.
func bodyList(bodies []domain.Body) string {
	if len(bodies) == 0 {
		return "-"
	}
	names := make([]string, len(bodies))
	for i, b := range bodies {
		names[i] = b.String()
	}
	return strings.Join(names, ", ")
}

// divisionLabel prefixes the harmonic number with its classical name.
func divisionLabel(factor int) string {
	if name, ok := divisionNames[factor]; ok {
		return fmt.Sprintf("D%d %s", factor, name)
	}
	return fmt.Sprintf("D%d", factor)
}

// planetSign finds one body's sign in a divisional placement list.
func planetSign(planets []domain.Planet, b domain.Body) string {
	for _, p := range planets {
		if p.Body == b {
			return p.Sign.String()
		}
	}
	return "-"
}

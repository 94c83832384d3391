// Package yoga detects named planetary combinations over a built chart.
//
// The catalog is a fixed, ordered list of rule values. Every rule is
// evaluated on every call; matches are returned in catalog order, which
// is presentation order only. Each rule reports at most one match, so a
// chart carries at most one yoga per catalog name.
package yoga

import (
	"kundali-engine/internal/domain"
)

// ChartState is the read-only view the rules evaluate. The engine
// assembles it from the built frame after dignity analysis; rules never
// mutate it.
type ChartState struct {
	Ascendant domain.Ascendant
	Planets   []domain.Planet
	Houses    []domain.House
	Aspects   []domain.Aspect
}

// rule is one named predicate. match reports the participating bodies
// and the anchoring house; strength derives centrally from the
// participants' dignity.
type rule struct {
	name     string
	polarity domain.YogaPolarity
	match    func(*ChartState) (bool, []domain.Body, int)
}

// catalog fixes the evaluation order. Rules are independent; the order
// matters only for stable presentation.
var catalog = []rule{
	{"Gaja Kesari", domain.YogaBenefic, matchGajaKesari},
	{"Budha-Aditya", domain.YogaBenefic, matchBudhaAditya},
	{"Chandra-Mangala", domain.YogaBenefic, matchChandraMangala},
	{"Ruchaka", domain.YogaBenefic, mahapurusha(domain.BodyMars)},
	{"Bhadra", domain.YogaBenefic, mahapurusha(domain.BodyMercury)},
	{"Hamsa", domain.YogaBenefic, mahapurusha(domain.BodyJupiter)},
	{"Malavya", domain.YogaBenefic, mahapurusha(domain.BodyVenus)},
	{"Sasa", domain.YogaBenefic, mahapurusha(domain.BodySaturn)},
	{"Raja", domain.YogaBenefic, matchRaja},
	{"Dhana", domain.YogaBenefic, matchDhana},
	{"Vipareeta Raja", domain.YogaBenefic, matchVipareetaRaja},
	{"Neecha Bhanga", domain.YogaBenefic, matchNeechaBhanga},
	{"Sunapha", domain.YogaBenefic, matchSunapha},
	{"Anapha", domain.YogaBenefic, matchAnapha},
	{"Durudhara", domain.YogaBenefic, matchDurudhara},
	{"Kemadruma", domain.YogaMalefic, matchKemadruma},
	{"Shakata", domain.YogaMalefic, matchShakata},
	{"Adhi", domain.YogaBenefic, matchAdhi},
	{"Kala Sarpa", domain.YogaMalefic, matchKalaSarpa},
}

// CatalogSize is the number of rules evaluated per chart. Feature
// encoding normalizes yoga counts against it.
const CatalogSize = 19

// Detect evaluates the full catalog and returns all matches in catalog
// order. There is no early exit; rules are independent of one another.
func Detect(state *ChartState) []domain.Yoga {
	var out []domain.Yoga
	for _, r := range catalog {
		matched, participants, house := r.match(state)
		if !matched {
			continue
		}
		out = append(out, domain.Yoga{
			Name:         r.name,
			Polarity:     r.polarity,
			Participants: participants,
			House:        house,
			Strength:     strength(state, r.polarity, participants),
		})
	}
	return out
}

// strength scores a match from the participants' mean effective dignity.
// Benefic and neutral yogas scale with dignity; malefic yogas invert it,
// a well-placed participant softening the affliction.
func strength(state *ChartState, polarity domain.YogaPolarity, participants []domain.Body) float64 {
	if len(participants) == 0 {
		return 0
	}
	var sum float64
	for _, b := range participants {
		p, ok := state.planet(b)
		if !ok {
			continue
		}
		sum += effectiveScore(p)
	}
	mean := sum / float64(len(participants))
	if polarity == domain.YogaMalefic {
		return (1 - mean) * 100
	}
	return mean * 100
}

// effectiveScore is the dignity score, halved under combustion.
func effectiveScore(p domain.Planet) float64 {
	s := p.Dignity.Score()
	if p.Combust {
		s /= 2
	}
	return s
}

func (s *ChartState) planet(b domain.Body) (domain.Planet, bool) {
	for _, p := range s.Planets {
		if p.Body == b {
			return p, true
		}
	}
	return domain.Planet{}, false
}

// houseLord returns the ruler of house n.
func (s *ChartState) houseLord(n int) (domain.Body, bool) {
	for _, h := range s.Houses {
		if h.Number == n {
			return h.Ruler, true
		}
	}
	return "", false
}

// houseOfSign returns the whole-sign house number occupied by a sign.
func (s *ChartState) houseOfSign(sign domain.Sign) int {
	return domain.SignDistance(s.Ascendant.Sign, sign)
}

// aspectBetween reports whether the chart lists any aspect between two
// bodies, optionally restricted to the given types.
func (s *ChartState) aspectBetween(a, b domain.Body, types ...domain.AspectType) bool {
	for _, asp := range s.Aspects {
		if !(asp.From == a && asp.To == b) && !(asp.From == b && asp.To == a) {
			continue
		}
		if len(types) == 0 {
			return true
		}
		for _, t := range types {
			if asp.Type == t {
				return true
			}
		}
	}
	return false
}

// bodiesInSign collects planets standing in a sign, filtered to the
// given candidate set, in canonical body order.
func (s *ChartState) bodiesInSign(sign domain.Sign, candidates []domain.Body) []domain.Body {
	var out []domain.Body
	for _, b := range candidates {
		p, ok := s.planet(b)
		if ok && p.Sign == sign {
			out = append(out, b)
		}
	}
	return out
}

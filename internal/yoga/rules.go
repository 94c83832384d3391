package yoga

import (
	"math"

	"kundali-engine/internal/domain"
)

// lunarCandidates are the bodies counted for the Moon-flank yogas.
// Classical texts exclude the Sun and the shadow planets there.
var lunarCandidates = []domain.Body{
	domain.BodyMars, domain.BodyMercury, domain.BodyJupiter,
	domain.BodyVenus, domain.BodySaturn,
}

// adhiBenefics and adhiMalefics split the bodies for the Adhi rule.
var adhiBenefics = []domain.Body{
	domain.BodyMercury, domain.BodyJupiter, domain.BodyVenus,
}

var adhiMalefics = []domain.Body{
	domain.BodySun, domain.BodyMars, domain.BodySaturn,
	domain.BodyRahu, domain.BodyKetu,
}

var kendraDistances = map[int]bool{1: true, 4: true, 7: true, 10: true}

// matchGajaKesari: Jupiter in a kendra counted from the Moon's sign.
func matchGajaKesari(s *ChartState) (bool, []domain.Body, int) {
	moon, okM := s.planet(domain.BodyMoon)
	jup, okJ := s.planet(domain.BodyJupiter)
	if !okM || !okJ {
		return false, nil, 0
	}
	if !kendraDistances[domain.SignDistance(moon.Sign, jup.Sign)] {
		return false, nil, 0
	}
	return true, []domain.Body{domain.BodyMoon, domain.BodyJupiter}, jup.House
}

// matchBudhaAditya: Sun and Mercury sharing a sign. Combustion is not a
// disqualifier here; it already halves the strength score.
func matchBudhaAditya(s *ChartState) (bool, []domain.Body, int) {
	sun, okS := s.planet(domain.BodySun)
	mer, okM := s.planet(domain.BodyMercury)
	if !okS || !okM || sun.Sign != mer.Sign {
		return false, nil, 0
	}
	return true, []domain.Body{domain.BodySun, domain.BodyMercury}, sun.House
}

// matchChandraMangala: Moon and Mars conjunct in one sign or standing in
// opposition.
func matchChandraMangala(s *ChartState) (bool, []domain.Body, int) {
	moon, okM := s.planet(domain.BodyMoon)
	mars, okR := s.planet(domain.BodyMars)
	if !okM || !okR {
		return false, nil, 0
	}
	together := moon.Sign == mars.Sign ||
		s.aspectBetween(domain.BodyMoon, domain.BodyMars, domain.AspectConjunction, domain.AspectOpposition)
	if !together {
		return false, nil, 0
	}
	return true, []domain.Body{domain.BodyMoon, domain.BodyMars}, moon.House
}

// mahapurusha builds the matcher for one of the five great-person
// yogas: the planet in own sign, moolatrikona or exaltation while
// occupying a kendra house.
func mahapurusha(body domain.Body) func(*ChartState) (bool, []domain.Body, int) {
	return func(s *ChartState) (bool, []domain.Body, int) {
		p, ok := s.planet(body)
		if !ok || !domain.IsKendra(p.House) {
			return false, nil, 0
		}
		switch p.Dignity {
		case domain.DignityExalted, domain.DignityMoolatrikona, domain.DignityOwn:
			return true, []domain.Body{body}, p.House
		}
		return false, nil, 0
	}
}

// matchRaja: a kendra lord (houses 4, 7, 10) associated with a trikona
// lord (houses 5, 9) by shared sign or mutual aspect. House 1 is both
// kendra and trikona and is excluded from either side to keep the rule
// from collapsing into the lagna lord matching itself. The scan stops
// at the first qualifying pair, in fixed house order.
func matchRaja(s *ChartState) (bool, []domain.Body, int) {
	for _, kh := range []int{4, 7, 10} {
		kl, okK := s.houseLord(kh)
		if !okK {
			continue
		}
		for _, th := range []int{5, 9} {
			tl, okT := s.houseLord(th)
			if !okT || kl == tl {
				continue
			}
			kp, okKP := s.planet(kl)
			tp, okTP := s.planet(tl)
			if !okKP || !okTP {
				continue
			}
			if kp.Sign == tp.Sign || s.aspectBetween(kl, tl) {
				return true, []domain.Body{kl, tl}, kp.House
			}
		}
	}
	return false, nil, 0
}

// matchDhana: the lords of the 2nd and 11th in association, or a single
// planet ruling both while standing in either house.
func matchDhana(s *ChartState) (bool, []domain.Body, int) {
	l2, ok2 := s.houseLord(2)
	l11, ok11 := s.houseLord(11)
	if !ok2 || !ok11 {
		return false, nil, 0
	}
	p2, okP2 := s.planet(l2)
	p11, okP11 := s.planet(l11)
	if !okP2 || !okP11 {
		return false, nil, 0
	}
	if l2 == l11 {
		if p2.House == 2 || p2.House == 11 {
			return true, []domain.Body{l2}, p2.House
		}
		return false, nil, 0
	}
	associated := p2.Sign == p11.Sign ||
		s.aspectBetween(l2, l11) ||
		p2.House == 11 || p11.House == 2
	if !associated {
		return false, nil, 0
	}
	return true, []domain.Body{l2, l11}, p2.House
}

// matchVipareetaRaja: a dusthana lord (houses 6, 8, 12) placed in a
// dusthana. First qualifying lord in house order wins.
func matchVipareetaRaja(s *ChartState) (bool, []domain.Body, int) {
	dusthana := map[int]bool{6: true, 8: true, 12: true}
	for _, h := range []int{6, 8, 12} {
		lord, ok := s.houseLord(h)
		if !ok {
			continue
		}
		p, okP := s.planet(lord)
		if okP && dusthana[p.House] {
			return true, []domain.Body{lord}, p.House
		}
	}
	return false, nil, 0
}

// matchNeechaBhanga: a debilitated planet whose dispositor occupies a
// kendra from the Ascendant or from the Moon, cancelling the
// debilitation. First debilitated planet in canonical order wins.
func matchNeechaBhanga(s *ChartState) (bool, []domain.Body, int) {
	moon, okMoon := s.planet(domain.BodyMoon)
	for _, b := range domain.Bodies {
		p, ok := s.planet(b)
		if !ok || p.Dignity != domain.DignityDebilitated {
			continue
		}
		disp := p.Sign.Ruler()
		dp, okD := s.planet(disp)
		if !okD {
			continue
		}
		cancelled := domain.IsKendra(dp.House) ||
			(okMoon && kendraDistances[domain.SignDistance(moon.Sign, dp.Sign)])
		if cancelled {
			return true, []domain.Body{b, disp}, p.House
		}
	}
	return false, nil, 0
}

// matchSunapha: a non-luminary planet in the 2nd sign from the Moon
// with the 12th empty.
func matchSunapha(s *ChartState) (bool, []domain.Body, int) {
	moon, ok := s.planet(domain.BodyMoon)
	if !ok {
		return false, nil, 0
	}
	second := s.bodiesInSign(moon.Sign.Offset(1), lunarCandidates)
	twelfth := s.bodiesInSign(moon.Sign.Offset(11), lunarCandidates)
	if len(second) == 0 || len(twelfth) > 0 {
		return false, nil, 0
	}
	return true, second, s.houseOfSign(moon.Sign.Offset(1))
}

// matchAnapha: the mirror of Sunapha on the 12th side.
func matchAnapha(s *ChartState) (bool, []domain.Body, int) {
	moon, ok := s.planet(domain.BodyMoon)
	if !ok {
		return false, nil, 0
	}
	second := s.bodiesInSign(moon.Sign.Offset(1), lunarCandidates)
	twelfth := s.bodiesInSign(moon.Sign.Offset(11), lunarCandidates)
	if len(twelfth) == 0 || len(second) > 0 {
		return false, nil, 0
	}
	return true, twelfth, s.houseOfSign(moon.Sign.Offset(11))
}

// matchDurudhara: planets on both flanks of the Moon.
func matchDurudhara(s *ChartState) (bool, []domain.Body, int) {
	moon, ok := s.planet(domain.BodyMoon)
	if !ok {
		return false, nil, 0
	}
	second := s.bodiesInSign(moon.Sign.Offset(1), lunarCandidates)
	twelfth := s.bodiesInSign(moon.Sign.Offset(11), lunarCandidates)
	if len(second) == 0 || len(twelfth) == 0 {
		return false, nil, 0
	}
	return true, append(second, twelfth...), moon.House
}

// matchKemadruma: no planet with the Moon or on either flank. The
// affliction reads from the Moon's isolation.
func matchKemadruma(s *ChartState) (bool, []domain.Body, int) {
	moon, ok := s.planet(domain.BodyMoon)
	if !ok {
		return false, nil, 0
	}
	if len(s.bodiesInSign(moon.Sign, lunarCandidates)) > 0 {
		return false, nil, 0
	}
	if len(s.bodiesInSign(moon.Sign.Offset(1), lunarCandidates)) > 0 {
		return false, nil, 0
	}
	if len(s.bodiesInSign(moon.Sign.Offset(11), lunarCandidates)) > 0 {
		return false, nil, 0
	}
	return true, []domain.Body{domain.BodyMoon}, moon.House
}

// matchShakata: the Moon in the 6th, 8th or 12th sign from Jupiter,
// unless the Moon holds a kendra house from the Ascendant.
func matchShakata(s *ChartState) (bool, []domain.Body, int) {
	moon, okM := s.planet(domain.BodyMoon)
	jup, okJ := s.planet(domain.BodyJupiter)
	if !okM || !okJ {
		return false, nil, 0
	}
	d := domain.SignDistance(jup.Sign, moon.Sign)
	if d != 6 && d != 8 && d != 12 {
		return false, nil, 0
	}
	if domain.IsKendra(moon.House) {
		return false, nil, 0
	}
	return true, []domain.Body{domain.BodyMoon, domain.BodyJupiter}, moon.House
}

// matchAdhi: benefics spread over at least two of the 6th, 7th and 8th
// signs from the Moon, with no malefic in any of the three.
func matchAdhi(s *ChartState) (bool, []domain.Body, int) {
	moon, ok := s.planet(domain.BodyMoon)
	if !ok {
		return false, nil, 0
	}
	occupied := 0
	var participants []domain.Body
	for _, off := range []int{5, 6, 7} {
		sign := moon.Sign.Offset(off)
		if len(s.bodiesInSign(sign, adhiMalefics)) > 0 {
			return false, nil, 0
		}
		benefics := s.bodiesInSign(sign, adhiBenefics)
		if len(benefics) > 0 {
			occupied++
			participants = append(participants, benefics...)
		}
	}
	if occupied < 2 {
		return false, nil, 0
	}
	return true, participants, moon.House
}

// matchKalaSarpa: the seven classical planets confined to one side of
// the node axis. A planet standing exactly on the axis breaks the belt.
func matchKalaSarpa(s *ChartState) (bool, []domain.Body, int) {
	rahu, ok := s.planet(domain.BodyRahu)
	if !ok {
		return false, nil, 0
	}
	forward, backward := 0, 0
	for _, b := range domain.Bodies {
		if b.IsNode() {
			continue
		}
		p, okP := s.planet(b)
		if !okP {
			return false, nil, 0
		}
		d := math.Mod(p.Longitude-rahu.Longitude+360, 360)
		if d == 0 || d == 180 {
			return false, nil, 0
		}
		if d < 180 {
			forward++
		} else {
			backward++
		}
	}
	if forward > 0 && backward > 0 {
		return false, nil, 0
	}
	return true, []domain.Body{domain.BodyRahu, domain.BodyKetu}, rahu.House
}

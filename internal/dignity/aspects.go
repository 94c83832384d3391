package dignity

import (
	"math"
	"sort"

	"kundali-engine/internal/domain"
)

// aspectOrbs gives the allowed deviation from the exact angle per
// aspect type. The bands never overlap, so a separation matches at most
// one type.
var aspectOrbs = map[domain.AspectType]float64{
	domain.AspectConjunction: 10,
	domain.AspectSextile:     6,
	domain.AspectSquare:      7,
	domain.AspectTrine:       9,
	domain.AspectOpposition:  10,
}

// aspectTypes fixes the classification scan order.
var aspectTypes = []domain.AspectType{
	domain.AspectConjunction,
	domain.AspectSextile,
	domain.AspectSquare,
	domain.AspectTrine,
	domain.AspectOpposition,
}

// computeAspects scans every unordered planet pair in canonical body
// order and classifies its separation. It returns the chart-level list
// plus directed per-body views where From is always the owning body.
func computeAspects(planets []domain.Planet) ([]domain.Aspect, map[domain.Body][]domain.Aspect) {
	ordered := make([]domain.Planet, len(planets))
	copy(ordered, planets)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Body.Order() < ordered[j].Body.Order()
	})

	var pairs []domain.Aspect
	directed := make(map[domain.Body][]domain.Aspect, len(ordered))

	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			a, b := ordered[i], ordered[j]
			t, dev, ok := classify(separation(a.Longitude, b.Longitude))
			if !ok {
				continue
			}
			orb := aspectOrbs[t]
			asp := domain.Aspect{
				From:     a.Body,
				To:       b.Body,
				Type:     t,
				Orb:      dev,
				Applying: applying(a, b, t, dev),
				Strength: (1 - dev/orb) * 100,
			}
			pairs = append(pairs, asp)
			directed[a.Body] = append(directed[a.Body], asp)

			back := asp
			back.From, back.To = b.Body, a.Body
			directed[b.Body] = append(directed[b.Body], back)
		}
	}
	return pairs, directed
}

// classify matches a separation in [0, 180] against the aspect bands.
func classify(sep float64) (domain.AspectType, float64, bool) {
	for _, t := range aspectTypes {
		dev := math.Abs(sep - t.Angle())
		if dev <= aspectOrbs[t] {
			return t, dev, true
		}
	}
	return "", 0, false
}

// applying projects both planets one day forward at their birth speeds
// and reports whether the deviation from the exact angle shrinks.
func applying(a, b domain.Planet, t domain.AspectType, dev float64) bool {
	next := separation(a.Longitude+a.Speed, b.Longitude+b.Speed)
	return math.Abs(next-t.Angle()) < dev
}

package reporting

import (
	"context"
	"sort"
	"time"

	"kundali-engine/internal/domain"
	"kundali-engine/internal/storage"
)

// Generator produces collection summaries from stored charts.
type Generator struct {
	kundaliStore storage.KundaliStore
	now          func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new summary generator.
func NewGenerator(store storage.KundaliStore) *Generator {
	return &Generator{
		kundaliStore: store,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a summary of every stored chart.
func (g *Generator) Generate(ctx context.Context) (*ChartSummary, error) {
	ids, err := g.kundaliStore.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ChartSummary{
		GeneratedAt: g.now(),
		TotalCharts: len(ids),
	}

	signCounts := make(map[domain.Sign]int)
	yogaCounts := make(map[string]*YogaCountRow)
	retroCounts := make(map[domain.Body]int)

	for _, id := range ids {
		k, err := g.kundaliStore.GetByChartID(ctx, id)
		if err != nil {
			return nil, err
		}

		if k.TimeKnown {
			summary.TimedCharts++
		} else {
			summary.UntimedCharts++
		}
		if summary.EarliestBirth.IsZero() || k.BirthUTC.Before(summary.EarliestBirth) {
			summary.EarliestBirth = k.BirthUTC
		}
		if k.BirthUTC.After(summary.LatestBirth) {
			summary.LatestBirth = k.BirthUTC
		}

		signCounts[k.Ascendant.Sign]++
		for _, y := range k.Yogas {
			row, ok := yogaCounts[y.Name]
			if !ok {
				row = &YogaCountRow{Name: y.Name, Polarity: y.Polarity.String()}
				yogaCounts[y.Name] = row
			}
			row.Count++
		}
		for _, p := range k.Planets {
			if p.Retrograde {
				retroCounts[p.Body]++
			}
		}
	}

	summary.AscendantSigns = signRows(signCounts)
	summary.YogaFrequency = yogaRows(yogaCounts)
	summary.Retrogrades = retroRows(retroCounts)

	return summary, nil
}

// signRows emits occupied rising signs in zodiac order.
func signRows(counts map[domain.Sign]int) []SignCountRow {
	var rows []SignCountRow
	for i := 1; i <= 12; i++ {
		s := domain.Sign(i)
		if counts[s] > 0 {
			rows = append(rows, SignCountRow{Sign: s.String(), Count: counts[s]})
		}
	}
	return rows
}

// yogaRows sorts by count descending, then name for stable output.
func yogaRows(counts map[string]*YogaCountRow) []YogaCountRow {
	rows := make([]YogaCountRow, 0, len(counts))
	for _, row := range counts {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// retroRows emits retrograde counts in canonical body order.
func retroRows(counts map[domain.Body]int) []BodyCountRow {
	var rows []BodyCountRow
	for _, b := range domain.Bodies {
		if counts[b] > 0 {
			rows = append(rows, BodyCountRow{Body: b.String(), Count: counts[b]})
		}
	}
	return rows
}

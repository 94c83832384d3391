package reporting

import "time"

// ChartSummary describes a stored chart collection.
type ChartSummary struct {
	// Metadata
	GeneratedAt time.Time
	TotalCharts int

	// Birth data coverage
	TimedCharts   int
	UntimedCharts int
	EarliestBirth time.Time // zero when the store is empty
	LatestBirth   time.Time

	// Distributions (sorted rows)
	AscendantSigns []SignCountRow
	YogaFrequency  []YogaCountRow
	Retrogrades    []BodyCountRow
}

// SignCountRow counts rising signs across the collection, in zodiac order.
type SignCountRow struct {
	Sign  string
	Count int
}

// YogaCountRow counts one yoga's occurrences across the collection.
type YogaCountRow struct {
	Name     string
	Polarity string
	Count    int
}

// BodyCountRow counts retrograde placements per body.
type BodyCountRow struct {
	Body  string
	Count int
}

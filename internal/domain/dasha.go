package domain

import "time"

// DashaPeriod is one lord's span inside the Vimshottari timeline. Major
// periods carry their sub-periods; sub-periods leave SubPeriods nil.
type DashaPeriod struct {
	Lord       Body          `json:"lord"`
	Start      time.Time     `json:"start"` // UTC
	End        time.Time     `json:"end"`   // UTC
	Years      float64       `json:"years"`
	SubPeriods []DashaPeriod `json:"sub_periods,omitempty"`
}

// Dasha is the full 120 year Vimshottari timeline rooted at the Moon's
// birth nakshatra. The first major period starts before birth; its
// remainder at the birth instant is the balance.
type Dasha struct {
	RootLord      Body          `json:"root_lord"`
	BalanceYears  float64       `json:"balance_years"`
	Periods       []DashaPeriod `json:"periods"` // nine majors starting with the root lord
	SubConfidence Confidence    `json:"sub_confidence"`
}

// Package dasha builds the Vimshottari major/sub period timeline from
// the Moon's sidereal longitude at birth.
//
// The dasha year is 365.25 days. The first major period opens before
// birth by the share of it the Moon has already walked through its
// nakshatra; eight more majors follow in the fixed lord cycle, spanning
// 120 years in total. Period boundaries are computed from cumulative
// year offsets, not chained additions, so adjacent periods always meet
// exactly; the last sub-period of a major is pinned to the major's end
// to absorb nanosecond conversion remainders.
package dasha

import (
	"time"

	"kundali-engine/internal/domain"
)

const (
	nakshatraWidth = 360.0 / 27.0
	yearHours      = 365.25 * 24
	cycleYears     = 120.0
	lordCount      = 9
)

// Compute derives the full timeline. moonLon is the Moon's sidereal
// longitude in [0, 360); birthUTC anchors the calendar boundaries.
// Sub-period confidence degrades when the birth time was unknown, since
// a noon-anchored chart can shift sub boundaries by months.
func Compute(birthUTC time.Time, moonLon float64, timeKnown bool) domain.Dasha {
	idx := int(moonLon / nakshatraWidth) // 0-based nakshatra
	if idx >= 27 {
		idx = 26
	}
	frac := (moonLon - float64(idx)*nakshatraWidth) / nakshatraWidth

	rootLord := domain.VimshottariLords[idx%lordCount]
	rootYears := domain.VimshottariYears[rootLord]
	elapsed := rootYears * frac

	cycleStart := birthUTC.Add(-yearsToDuration(elapsed))

	periods := make([]domain.DashaPeriod, 0, lordCount)
	cum := 0.0
	for i := 0; i < lordCount; i++ {
		lord := domain.VimshottariLords[(idx+i)%lordCount]
		years := domain.VimshottariYears[lord]
		start := cycleStart.Add(yearsToDuration(cum))
		end := cycleStart.Add(yearsToDuration(cum + years))
		p := domain.DashaPeriod{
			Lord:  lord,
			Start: start,
			End:   end,
			Years: years,
		}
		p.SubPeriods = subPeriods(p)
		periods = append(periods, p)
		cum += years
	}

	conf := domain.ConfidenceFull
	if !timeKnown {
		conf = domain.ConfidenceLow
	}
	return domain.Dasha{
		RootLord:      rootLord,
		BalanceYears:  rootYears * (1 - frac),
		Periods:       periods,
		SubConfidence: conf,
	}
}

// subPeriods splits a major period into nine proportional sub-periods,
// the cycle restarting at the major lord itself.
func subPeriods(major domain.DashaPeriod) []domain.DashaPeriod {
	start := 0
	for i, l := range domain.VimshottariLords {
		if l == major.Lord {
			start = i
			break
		}
	}

	subs := make([]domain.DashaPeriod, 0, lordCount)
	cum := 0.0
	for i := 0; i < lordCount; i++ {
		lord := domain.VimshottariLords[(start+i)%lordCount]
		years := major.Years * domain.VimshottariYears[lord] / cycleYears
		end := major.Start.Add(yearsToDuration(cum + years))
		if i == lordCount-1 {
			end = major.End
		}
		subs = append(subs, domain.DashaPeriod{
			Lord:  lord,
			Start: major.Start.Add(yearsToDuration(cum)),
			End:   end,
			Years: years,
		})
		cum += years
	}
	return subs
}

// ActiveAt walks the timeline for the major and sub period covering an
// instant. Returns false before the cycle start or at/after its end.
func ActiveAt(d domain.Dasha, at time.Time) (major, sub domain.DashaPeriod, ok bool) {
	for _, p := range d.Periods {
		if at.Before(p.Start) || !at.Before(p.End) {
			continue
		}
		for _, s := range p.SubPeriods {
			if !at.Before(s.Start) && at.Before(s.End) {
				return p, s, true
			}
		}
		return p, domain.DashaPeriod{}, true
	}
	return domain.DashaPeriod{}, domain.DashaPeriod{}, false
}

func yearsToDuration(years float64) time.Duration {
	return time.Duration(years * yearHours * float64(time.Hour))
}

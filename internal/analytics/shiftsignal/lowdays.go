package shiftsignal

import (
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/stats"
)

// RollingRadius is the half-width of the centered 7-day rolling window
const RollingRadius = 3

// DaySignal is one day whose raw activity fell below its own rolling average
type DaySignal struct {
	Date    time.Time `json:"date"`
	Count   int       `json:"count"`
	Rolling float64   `json:"rolling"`
}

// DayResult groups low-day signals for the full activity and hygiene subset
type DayResult struct {
	All     []DaySignal `json:"all"`
	Hygiene []DaySignal `json:"hygiene"`
}

// LowDays is the simpler day-granularity variant of the detector: it builds a
// contiguous daily series between from and to, filling calendar gaps with
// zeros, and flags every day whose raw count is below its centered 7-day
// rolling average. An empty window yields empty lists.
func LowDays(entries []domain.LedgerEntry, hygieneItems map[uint]bool, from, to time.Time) DayResult {
	from = truncateDay(from)
	to = truncateDay(to)
	if to.Before(from) {
		return DayResult{}
	}

	days := daysBetween(from, to) + 1
	counts := make([]float64, days)
	hygiene := make([]float64, days)

	for _, entry := range entries {
		idx := daysBetween(from, entry.OccurredAt)
		if idx < 0 || idx >= days {
			continue
		}
		counts[idx]++
		if hygieneItems[entry.ItemID] {
			hygiene[idx]++
		}
	}

	return DayResult{
		All:     lowDaySignals(counts, from),
		Hygiene: lowDaySignals(hygiene, from),
	}
}

func lowDaySignals(series []float64, from time.Time) []DaySignal {
	rolling := stats.RollingAverage(series, RollingRadius)

	var signals []DaySignal
	for i, value := range series {
		if value < rolling[i] {
			signals = append(signals, DaySignal{
				Date:    from.AddDate(0, 0, i),
				Count:   int(value),
				Rolling: rolling[i],
			})
		}
	}
	return signals
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b. Comparing the dates in UTC
// keeps the count stable across daylight saving transitions, where a wall
// clock day is not 24 hours long.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}

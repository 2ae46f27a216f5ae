// Package shiftsignal maps timestamped ledger entries onto a recurring shift
// calendar and flags shifts whose scan activity is anomalously low relative
// to a rolling median baseline.
package shiftsignal

import (
	"sort"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
)

// Shift names of the recurring calendar
const (
	ShiftDay    = "day"
	ShiftNight  = "night"
	ShiftSecond = "day-2"
)

// ShiftDef is one recurring shift: a daily window bound to one usage stream.
// Start and End are minutes from local midnight; End past 1440 spans into the
// following day.
type ShiftDef struct {
	Name        string
	Stream      int
	StartMinute int
	EndMinute   int
}

// Calendar is the fixed weekly shift plan
type Calendar []ShiftDef

// DefaultCalendar returns the operational three-shift plan: a day shift and a
// midnight-spanning night shift on stream 1, and an independent second day
// shift on stream 2. The night shift starts 6.5 hours before midnight, which
// encodes the attribution cutoff: entries in the last 6.5 hours of a day
// belong to that night's shift, earlier out-of-window entries to the previous
// night's shift that is still open.
func DefaultCalendar() Calendar {
	return Calendar{
		{Name: ShiftDay, Stream: 1, StartMinute: 7 * 60, EndMinute: 17*60 + 30},
		{Name: ShiftNight, Stream: 1, StartMinute: 17*60 + 30, EndMinute: 31 * 60},
		{Name: ShiftSecond, Stream: 2, StartMinute: 7 * 60, EndMinute: 17*60 + 30},
	}
}

// Instance is one concrete occurrence of a shift on a calendar day
type Instance struct {
	Name   string    `json:"name"`
	Stream int       `json:"stream"`
	Date   time.Time `json:"date"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`

	Count        int `json:"count"`
	HygieneCount int `json:"hygiene_count"`
}

type instanceKey struct {
	name string
	date time.Time
}

// Assign maps every entry onto at most one shift instance: the entry's
// stream is matched first, then the day-shift window [start, end); entries
// outside that window roll into the stream's night shift when it has one and
// stay unassigned otherwise. hygieneItems marks the items counted into the
// narrower hygiene sub-count.
func (c Calendar) Assign(entries []domain.LedgerEntry, hygieneItems map[uint]bool) []Instance {
	dayByStream := make(map[int]ShiftDef)
	nightByStream := make(map[int]ShiftDef)
	for _, def := range c {
		if def.StartMinute < 24*60 && def.EndMinute <= 24*60 {
			dayByStream[def.Stream] = def
		} else {
			nightByStream[def.Stream] = def
		}
	}

	instances := make(map[instanceKey]*Instance)

	for _, entry := range entries {
		def, date, ok := c.locate(entry, dayByStream, nightByStream)
		if !ok {
			continue
		}

		key := instanceKey{name: def.Name, date: date}
		instance, exists := instances[key]
		if !exists {
			instance = &Instance{
				Name:   def.Name,
				Stream: def.Stream,
				Date:   date,
				Start:  date.Add(time.Duration(def.StartMinute) * time.Minute),
				End:    date.Add(time.Duration(def.EndMinute) * time.Minute),
			}
			instances[key] = instance
		}

		instance.Count++
		if hygieneItems[entry.ItemID] {
			instance.HygieneCount++
		}
	}

	out := make([]Instance, 0, len(instances))
	for _, instance := range instances {
		out = append(out, *instance)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// locate resolves the shift definition and the date key an entry belongs to
func (c Calendar) locate(entry domain.LedgerEntry, dayByStream, nightByStream map[int]ShiftDef) (ShiftDef, time.Time, bool) {
	t := entry.OccurredAt
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	minute := t.Hour()*60 + t.Minute()

	if day, ok := dayByStream[entry.StreamID]; ok {
		if minute >= day.StartMinute && minute < day.EndMinute {
			return day, date, true
		}
	}

	night, ok := nightByStream[entry.StreamID]
	if !ok {
		return ShiftDef{}, time.Time{}, false
	}

	if minute >= night.StartMinute {
		// Last hours of the day attribute forward to tonight's shift.
		return night, date, true
	}
	// Before the day window opens the previous night's shift is still on.
	return night, date.AddDate(0, 0, -1), true
}

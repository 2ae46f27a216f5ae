package shiftsignal

import (
	"testing"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
)

func entryAt(itemID uint, stream int, ts time.Time) domain.LedgerEntry {
	return domain.LedgerEntry{ItemID: itemID, StreamID: stream, UsageCode: 1, Amount: 1, OccurredAt: ts}
}

func TestAssignAttribution(t *testing.T) {
	calendar := DefaultCalendar()
	day := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	at := func(hour, minute int) time.Time {
		return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	}

	tests := []struct {
		name     string
		entry    domain.LedgerEntry
		wantName string
		wantDate time.Time
	}{
		{
			name:     "inside day window",
			entry:    entryAt(1, 1, at(12, 0)),
			wantName: ShiftDay,
			wantDate: day,
		},
		{
			name:     "last minute of the day shift",
			entry:    entryAt(1, 1, at(17, 29)),
			wantName: ShiftDay,
			wantDate: day,
		},
		{
			name:     "cutoff belongs to tonight",
			entry:    entryAt(1, 1, at(17, 30)),
			wantName: ShiftNight,
			wantDate: day,
		},
		{
			name:     "late evening belongs to tonight",
			entry:    entryAt(1, 1, at(23, 45)),
			wantName: ShiftNight,
			wantDate: day,
		},
		{
			name:     "early morning belongs to the previous night",
			entry:    entryAt(1, 1, at(6, 59)),
			wantName: ShiftNight,
			wantDate: day.AddDate(0, 0, -1),
		},
		{
			name:     "day window opens at seven",
			entry:    entryAt(1, 1, at(7, 0)),
			wantName: ShiftDay,
			wantDate: day,
		},
		{
			name:     "second stream has its own day shift",
			entry:    entryAt(1, 2, at(12, 0)),
			wantName: ShiftSecond,
			wantDate: day,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instances := calendar.Assign([]domain.LedgerEntry{tt.entry}, nil)
			if len(instances) != 1 {
				t.Fatalf("expected one instance, got %d", len(instances))
			}
			got := instances[0]
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if !got.Date.Equal(tt.wantDate) {
				t.Errorf("Date = %v, want %v", got.Date, tt.wantDate)
			}
			if got.Count != 1 {
				t.Errorf("Count = %d, want 1", got.Count)
			}
		})
	}
}

func TestAssignStreamWithoutNightShiftDropsOutOfWindow(t *testing.T) {
	calendar := DefaultCalendar()
	ts := time.Date(2026, 8, 25, 20, 0, 0, 0, time.UTC)

	// Stream 2 only has a day shift; an evening entry has nowhere to go.
	instances := calendar.Assign([]domain.LedgerEntry{entryAt(1, 2, ts)}, nil)
	if len(instances) != 0 {
		t.Fatalf("expected no instances, got %+v", instances)
	}
}

func TestAssignHygieneCount(t *testing.T) {
	calendar := DefaultCalendar()
	ts := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	entries := []domain.LedgerEntry{
		entryAt(1, 1, ts),
		entryAt(2, 1, ts.Add(time.Minute)),
		entryAt(3, 1, ts.Add(2*time.Minute)),
	}
	hygiene := map[uint]bool{2: true}

	instances := calendar.Assign(entries, hygiene)
	if len(instances) != 1 {
		t.Fatalf("expected one instance, got %d", len(instances))
	}
	if instances[0].Count != 3 {
		t.Errorf("Count = %d, want 3", instances[0].Count)
	}
	if instances[0].HygieneCount != 1 {
		t.Errorf("HygieneCount = %d, want 1", instances[0].HygieneCount)
	}
}

func TestAssignOrdering(t *testing.T) {
	calendar := DefaultCalendar()
	day1 := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	entries := []domain.LedgerEntry{
		entryAt(1, 1, day2),
		entryAt(1, 2, day1),
		entryAt(1, 1, day1),
	}

	instances := calendar.Assign(entries, nil)
	if len(instances) != 3 {
		t.Fatalf("expected 3 instances, got %d", len(instances))
	}
	if !instances[0].Date.Before(instances[2].Date) {
		t.Errorf("instances not ordered by date: %v then %v", instances[0].Date, instances[2].Date)
	}
	// Same date sorts by shift name: day before day-2.
	if instances[0].Name != ShiftDay || instances[1].Name != ShiftSecond {
		t.Errorf("same-date order = %q, %q; want %q, %q", instances[0].Name, instances[1].Name, ShiftDay, ShiftSecond)
	}
}

package shiftsignal

import (
	"math"
	"testing"
	"time"
)

func instanceSeries(name string, counts []int) []Instance {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	out := make([]Instance, len(counts))
	for i, count := range counts {
		out[i] = Instance{
			Name:   name,
			Stream: 1,
			Date:   base.AddDate(0, 0, i),
			Count:  count,
		}
	}
	return out
}

func totalCount(i Instance) int { return i.Count }

func TestDetect(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name         string
		counts       []int
		wantSignals  int
		wantSeverity string
		wantRatio    float64
	}{
		{
			name:         "quiet shift against stable history is critical",
			counts:       []int{10, 10, 10, 10, 2},
			wantSignals:  1,
			wantSeverity: SeverityCritical,
			wantRatio:    0.2,
		},
		{
			name:         "moderate drop against stable history is warning",
			counts:       []int{10, 10, 10, 10, 4},
			wantSignals:  1,
			wantSeverity: SeverityWarning,
			wantRatio:    0.4,
		},
		{
			name:        "count at threshold is not flagged",
			counts:      []int{10, 10, 10, 10, 6},
			wantSignals: 0,
		},
		{
			name:        "baseline below noise floor is skipped",
			counts:      []int{4, 4, 4, 1},
			wantSignals: 0,
		},
		{
			name:        "first instance has no history",
			counts:      []int{1},
			wantSignals: 0,
		},
		{
			name:         "noisy history uses robust z-score",
			counts:       []int{10, 12, 14, 16, 18, 2},
			wantSignals:  1,
			wantSeverity: SeverityCritical, // z = (14-2)/2 = 6
		},
		{
			name:         "noisy history moderate drop",
			counts:       []int{10, 12, 14, 16, 18, 7},
			wantSignals:  1,
			wantSeverity: SeverityWarning, // z = (14-7)/2 = 3.5
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signals := Detect(instanceSeries(ShiftDay, tt.counts), cfg, totalCount)
			if len(signals) != tt.wantSignals {
				t.Fatalf("got %d signals, want %d: %+v", len(signals), tt.wantSignals, signals)
			}
			if tt.wantSignals == 0 {
				return
			}
			signal := signals[0]
			if signal.Severity != tt.wantSeverity {
				t.Errorf("Severity = %q, want %q", signal.Severity, tt.wantSeverity)
			}
			if tt.wantRatio != 0 && math.Abs(signal.Ratio-tt.wantRatio) > 1e-9 {
				t.Errorf("Ratio = %v, want %v", signal.Ratio, tt.wantRatio)
			}
			if signal.Shift != ShiftDay {
				t.Errorf("Shift = %q, want %q", signal.Shift, ShiftDay)
			}
		})
	}
}

func TestDetectWindowLimitsBaseline(t *testing.T) {
	// A long-gone era of huge counts must fall out of the rolling window.
	counts := make([]int, 0, 20)
	for i := 0; i < 5; i++ {
		counts = append(counts, 1000)
	}
	for i := 0; i < 14; i++ {
		counts = append(counts, 10)
	}
	counts = append(counts, 8)

	cfg := DefaultConfig() // window 12
	signals := Detect(instanceSeries(ShiftNight, counts), cfg, totalCount)
	for _, signal := range signals {
		if signal.Date.Day() == 20 { // the final instance, 2026-08-20
			t.Errorf("final count 8 against baseline 10 should not be flagged: %+v", signal)
		}
	}
}

func TestDetectSeparatesShiftTypes(t *testing.T) {
	day := instanceSeries(ShiftDay, []int{10, 10, 10, 10, 10})
	night := instanceSeries(ShiftNight, []int{20, 20, 20, 20, 2})

	signals := Detect(append(day, night...), DefaultConfig(), totalCount)
	if len(signals) != 1 {
		t.Fatalf("got %d signals, want 1", len(signals))
	}
	if signals[0].Shift != ShiftNight {
		t.Errorf("Shift = %q, want %q", signals[0].Shift, ShiftNight)
	}
}

func TestDetectorRunEmptyWindow(t *testing.T) {
	detector := NewDetector(DefaultCalendar(), DefaultConfig())
	result := detector.Run(nil, nil)
	if len(result.All) != 0 || len(result.Hygiene) != 0 {
		t.Errorf("empty ledger window must yield empty results: %+v", result)
	}
}

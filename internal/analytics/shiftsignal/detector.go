package shiftsignal

import (
	"sort"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/stats"
)

// Severity buckets
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Config tunes the anomaly detection
type Config struct {
	// Window is the number of prior instances forming the baseline median
	Window int
	// RatioThreshold flags an instance when count < baseline * ratio
	RatioThreshold float64
	// NoiseFloor skips baselines too small to judge against
	NoiseFloor float64
}

// DefaultConfig returns the operational tuning
func DefaultConfig() Config {
	return Config{
		Window:         12,
		RatioThreshold: 0.55,
		NoiseFloor:     5,
	}
}

// Signal is one anomalously quiet shift instance
type Signal struct {
	Shift    string    `json:"shift"`
	Stream   int       `json:"stream"`
	Date     time.Time `json:"date"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Count    int       `json:"count"`
	Baseline float64   `json:"baseline"`
	Ratio    float64   `json:"ratio"`
	Severity string    `json:"severity"`
}

// Detect scores every shift instance against the rolling median of its own
// shift type. The first instance of a type has no history and is skipped, as
// are instances whose baseline sits below the noise floor. counter selects
// which per-instance count is scored (total or hygiene).
func Detect(instances []Instance, cfg Config, counter func(Instance) int) []Signal {
	byName := make(map[string][]Instance)
	for _, instance := range instances {
		byName[instance.Name] = append(byName[instance.Name], instance)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	var signals []Signal
	for _, name := range names {
		series := byName[name]
		sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

		for k := 1; k < len(series); k++ {
			lo := k - cfg.Window
			if lo < 0 {
				lo = 0
			}
			window := make([]float64, 0, k-lo)
			for _, prev := range series[lo:k] {
				window = append(window, float64(counter(prev)))
			}

			baseline := stats.Median(window)
			if baseline < cfg.NoiseFloor {
				continue
			}

			count := counter(series[k])
			if float64(count) >= baseline*cfg.RatioThreshold {
				continue
			}

			ratio := float64(count) / baseline
			signals = append(signals, Signal{
				Shift:    series[k].Name,
				Stream:   series[k].Stream,
				Date:     series[k].Date,
				Start:    series[k].Start,
				End:      series[k].End,
				Count:    count,
				Baseline: baseline,
				Ratio:    ratio,
				Severity: severity(window, baseline, count, ratio),
			})
		}
	}

	sort.Slice(signals, func(i, j int) bool {
		if !signals[i].Date.Equal(signals[j].Date) {
			return signals[i].Date.Before(signals[j].Date)
		}
		return signals[i].Shift < signals[j].Shift
	})
	return signals
}

// severity buckets a flagged instance. A degenerate, perfectly stable history
// (MAD 0) falls back to plain ratio buckets; otherwise a robust z-score over
// the MAD decides.
func severity(window []float64, baseline float64, count int, ratio float64) string {
	mad := stats.MAD(window, baseline)
	if mad < 1e-9 {
		switch {
		case ratio < 0.30:
			return SeverityCritical
		case ratio < 0.50:
			return SeverityWarning
		default:
			return SeverityInfo
		}
	}

	z := (baseline - float64(count)) / mad
	switch {
	case z >= 4.0:
		return SeverityCritical
	case z >= 2.5:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// Result groups the signals over the full activity and the hygiene subset
type Result struct {
	All     []Signal `json:"all"`
	Hygiene []Signal `json:"hygiene"`
}

// Detector runs assignment and detection over a ledger window
type Detector struct {
	calendar Calendar
	cfg      Config
}

// NewDetector creates a detector over the given calendar and tuning
func NewDetector(calendar Calendar, cfg Config) *Detector {
	return &Detector{calendar: calendar, cfg: cfg}
}

// Run maps the entries onto shift instances and scores both count series.
// An empty or unmatchable ledger window yields empty lists, never an error.
func (d *Detector) Run(entries []domain.LedgerEntry, hygieneItems map[uint]bool) Result {
	instances := d.calendar.Assign(entries, hygieneItems)
	return Result{
		All:     Detect(instances, d.cfg, func(i Instance) int { return i.Count }),
		Hygiene: Detect(instances, d.cfg, func(i Instance) int { return i.HygieneCount }),
	}
}

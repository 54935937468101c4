// Package report renders a simulation series for human and machine
// consumers. The core exposes numbers; everything about presentation -
// console lines, JSON envelopes, golden snapshots - lives here.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/proofsight/mixsim/internal/driver"
)

// FormatProbability renders a linkability bound with six decimal places,
// matching the research model's console output. Fixed precision also keeps
// golden files stable across float formatting changes.
func FormatProbability(p float64) string {
	return strconv.FormatFloat(p, 'f', 6, 64)
}

// Formatter writes the human-readable run report.
type Formatter struct {
	Writer io.Writer

	// Every controls how often per-hour lines are printed; a line is
	// emitted for hours where (hour-1) % Every == 0, mirroring the
	// original model's cadence. Zero or negative means every hour.
	Every int
}

// WriteSeries renders the per-hour lines and the final summary.
func (f *Formatter) WriteSeries(series *driver.Series) error {
	every := f.Every
	if every <= 0 {
		every = 1
	}

	for i, sample := range series.Samples {
		if i%every != 0 {
			continue
		}
		if _, err := fmt.Fprintf(f.Writer, "Hour %d: Users=%d, P(link)=%s\n",
			sample.Hour, sample.AnonymitySet, FormatProbability(sample.Linkability)); err != nil {
			return err
		}
	}

	last, ok := series.Last()
	if !ok {
		_, err := fmt.Fprintln(f.Writer, "No samples recorded.")
		return err
	}

	_, err := fmt.Fprintf(f.Writer, "Final state: %d users, %d synthetic txs, max P(link)=%s\n",
		last.AnonymitySet, last.SyntheticTotal, FormatProbability(series.Max()))
	return err
}

// Snapshot converts a series into the canonical-JSON-ready form used for
// golden files and determinism verification. Probabilities become fixed
// six-decimal strings; everything else stays integral.
func Snapshot(name string, series *driver.Series) map[string]any {
	samples := make([]any, len(series.Samples))
	for i, sample := range series.Samples {
		samples[i] = map[string]any{
			"hour":            sample.Hour,
			"anonymity_set":   sample.AnonymitySet,
			"deposits":        sample.Deposits,
			"synthetic_total": sample.SyntheticTotal,
			"p_link":          FormatProbability(sample.Linkability),
		}
	}

	return map[string]any{
		"scenario": name,
		"samples":  samples,
	}
}

// MarshalSeries renders the canonical snapshot bytes for a named series.
func MarshalSeries(name string, series *driver.Series) ([]byte, error) {
	return MarshalCanonical(Snapshot(name, series))
}

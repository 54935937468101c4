package driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/proofsight/mixsim/internal/linkability"
	"github.com/proofsight/mixsim/internal/traffic"
)

// Sample is the output surface exposed after each simulated hour.
type Sample struct {
	// Hour is the simulation clock after the step.
	Hour int64 `json:"hour"`

	// AnonymitySet is the cumulative anonymity-set size.
	AnonymitySet int `json:"anonymity_set"`

	// Deposits is the number of arrivals admitted in this hour.
	Deposits int `json:"deposits"`

	// SyntheticTotal is the cumulative number of decoy records.
	SyntheticTotal int `json:"synthetic_total"`

	// Linkability is the clamped upper-bound probability after the step.
	Linkability float64 `json:"linkability"`
}

// Series is the recorded time series of one run.
type Series struct {
	Samples []Sample `json:"samples"`
}

// Last returns the final sample, or false for an empty series.
func (s *Series) Last() (Sample, bool) {
	if len(s.Samples) == 0 {
		return Sample{}, false
	}
	return s.Samples[len(s.Samples)-1], true
}

// Max returns the largest linkability bound observed across the run.
// Returns 0 for an empty series.
func (s *Series) Max() float64 {
	var max float64
	for _, sample := range s.Samples {
		if sample.Linkability > max {
			max = sample.Linkability
		}
	}
	return max
}

// Below reports whether every sample stays strictly below the threshold.
// This is the question the simulator exists to answer: does the configured
// traffic keep the linkability bound under an acceptable level.
func (s *Series) Below(threshold float64) bool {
	return s.Max() < threshold
}

// Runner drives one simulation run: advance state, compute the bound,
// record a sample, once per hour.
type Runner struct {
	sim    *traffic.Simulation
	source DepositSource
	hours  int
}

// NewRunner creates a runner over sim, drawing arrivals from source for the
// given number of hours.
//
// Returns an invalid-argument error when hours is not positive.
func NewRunner(sim *traffic.Simulation, source DepositSource, hours int) (*Runner, error) {
	if hours <= 0 {
		return nil, traffic.NewInvalidArgumentError("run length must be positive", map[string]string{
			"hours": fmt.Sprintf("%d", hours),
		})
	}
	return &Runner{sim: sim, source: source, hours: hours}, nil
}

// Run executes the loop and returns the recorded series.
//
// The loop is strictly sequential; the Runner is the Simulation's single
// writer for the whole run. Cancelling the context stops the run between
// hours and returns the context error; individual steps are never
// interrupted mid-mutation.
func (r *Runner) Run(ctx context.Context) (*Series, error) {
	series := &Series{Samples: make([]Sample, 0, r.hours)}

	for i := 0; i < r.hours; i++ {
		if err := ctx.Err(); err != nil {
			slog.Info("run cancelled", "hour", r.sim.CurrentHour())
			return nil, err
		}

		arrivals := r.source.Next()
		if err := r.sim.Advance(arrivals); err != nil {
			return nil, fmt.Errorf("advance hour %d: %w", r.sim.CurrentHour()+1, err)
		}

		p, err := linkability.Probability(r.sim)
		if err != nil {
			return nil, fmt.Errorf("estimate at hour %d: %w", r.sim.CurrentHour(), err)
		}

		sample := Sample{
			Hour:           r.sim.CurrentHour(),
			AnonymitySet:   r.sim.AnonymitySetSize(),
			Deposits:       arrivals,
			SyntheticTotal: r.sim.SyntheticCount(),
			Linkability:    p,
		}
		series.Samples = append(series.Samples, sample)

		slog.Debug("hour advanced",
			"hour", sample.Hour,
			"deposits", sample.Deposits,
			"anonymity_set", sample.AnonymitySet,
			"synthetic_total", sample.SyntheticTotal,
			"linkability", sample.Linkability,
		)
	}

	last, _ := series.Last()
	slog.Info("run complete",
		"hours", r.hours,
		"anonymity_set", last.AnonymitySet,
		"synthetic_total", last.SyntheticTotal,
		"max_linkability", series.Max(),
	)

	return series, nil
}

package scenario

import (
	"context"
	"fmt"

	"github.com/proofsight/mixsim/internal/driver"
	"github.com/proofsight/mixsim/internal/traffic"
)

// Result holds the outcome of one scenario execution.
type Result struct {
	// Scenario is the definition that produced this result.
	Scenario *Scenario

	// Series is the recorded per-hour time series.
	Series *driver.Series

	// Pass is true when every expectation held.
	Pass bool

	// Failures lists human-readable expectation violations.
	Failures []string
}

// Run executes a scenario and evaluates its expectations.
//
// Each run builds a fresh simulation, so scenarios are isolated from each
// other. Identifier generation is seeded from the scenario, which makes the
// full deposit log - not just the numeric series - reproducible.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	sim, err := traffic.New(
		traffic.Config{
			InitialUsers:   scenario.InitialUsers,
			SyntheticRatio: scenario.SyntheticRatio,
		},
		traffic.WithIDGenerator(traffic.NewSeededGenerator(scenario.Seed)),
	)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	var source driver.DepositSource
	if scenario.RandomSchedule() {
		min, max := scenario.ArrivalRange()
		source, err = driver.NewUniformSource(scenario.Seed, min, max)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
	} else {
		source = driver.NewFixedSource(scenario.Deposits...)
	}

	runner, err := driver.NewRunner(sim, source, scenario.RunHours())
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	series, err := runner.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := &Result{
		Scenario: scenario,
		Series:   series,
		Failures: evaluateExpectations(scenario.Expect, series),
	}
	result.Pass = len(result.Failures) == 0
	return result, nil
}

package scenario

import (
	"fmt"

	"github.com/proofsight/mixsim/internal/driver"
	"github.com/proofsight/mixsim/internal/report"
)

// evaluateExpectations checks every configured expectation against the
// recorded series and returns all violations (it does not fail fast).
func evaluateExpectations(expect *ExpectClause, series *driver.Series) []string {
	if expect == nil {
		return nil
	}

	var failures []string

	last, ok := series.Last()
	if !ok {
		return []string{"expectations configured but the run recorded no samples"}
	}

	if expect.FinalAnonymitySet != nil && last.AnonymitySet != *expect.FinalAnonymitySet {
		failures = append(failures, fmt.Sprintf(
			"final_anonymity_set: expected %d, got %d", *expect.FinalAnonymitySet, last.AnonymitySet))
	}

	if expect.FinalSynthetic != nil && last.SyntheticTotal != *expect.FinalSynthetic {
		failures = append(failures, fmt.Sprintf(
			"final_synthetic: expected %d, got %d", *expect.FinalSynthetic, last.SyntheticTotal))
	}

	if expect.FinalHour != nil && last.Hour != *expect.FinalHour {
		failures = append(failures, fmt.Sprintf(
			"final_hour: expected %d, got %d", *expect.FinalHour, last.Hour))
	}

	if expect.MaxLinkabilityBelow != nil && !series.Below(*expect.MaxLinkabilityBelow) {
		failures = append(failures, fmt.Sprintf(
			"max_linkability_below: bound reached %s, threshold %s",
			report.FormatProbability(series.Max()),
			report.FormatProbability(*expect.MaxLinkabilityBelow)))
	}

	return failures
}

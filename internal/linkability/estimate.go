package linkability

import (
	"github.com/proofsight/mixsim/internal/traffic"
)

// EpsilonTime is the fixed temporal-mixing slack: the correction for a
// 24-hour window during which a withdrawal may follow its deposit. The
// model adds it conservatively rather than subtracting mixing gains.
const EpsilonTime = 1.0 / 24

// State is the read-only view of the traffic model the estimator needs.
// *traffic.Simulation satisfies it.
type State interface {
	AnonymitySetSize() int
	SyntheticRatio() float64
}

// Estimate is the derived linkability value with its intermediate terms,
// computed on demand and never stored.
type Estimate struct {
	// EffectiveSetSize is k*(1+rho): the real anonymity set inflated by the
	// fraction of indistinguishable decoy traffic.
	EffectiveSetSize float64

	// BaseProbability is 1/EffectiveSetSize: uniform guessing over the
	// effective set.
	BaseProbability float64

	// Correction is EpsilonTime/k, the temporal-mixing slack term.
	Correction float64

	// Probability is the clamped upper bound, always in (0, 1].
	Probability float64
}

// Compute evaluates the linkability bound for the given state.
//
// Pure function of the state: no mutation, no side effects, no randomness.
// Returns an undefined-estimate error when the anonymity set is empty; the
// bound must never surface as NaN or Inf.
func Compute(s State) (Estimate, error) {
	k := s.AnonymitySetSize()
	if k == 0 {
		return Estimate{}, traffic.NewUndefinedEstimateError()
	}

	rho := s.SyntheticRatio()

	effective := float64(k) * (1 + rho)
	base := 1 / effective
	correction := EpsilonTime / float64(k)

	total := base + correction
	if total > 1 {
		// The clamp is model behavior, not an error: tiny anonymity sets
		// legitimately saturate the bound.
		total = 1
	}

	return Estimate{
		EffectiveSetSize: effective,
		BaseProbability:  base,
		Correction:       correction,
		Probability:      total,
	}, nil
}

// Probability is a convenience wrapper returning only the clamped bound.
func Probability(s State) (float64, error) {
	est, err := Compute(s)
	if err != nil {
		return 0, err
	}
	return est.Probability, nil
}

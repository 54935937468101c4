// Package linkability computes the closed-form upper bound on the
// probability that an observer links a withdrawal to the deposit that
// funded it, given the current traffic-model state.
//
// The bound is
//
//	P(link) <= 1/(k*(1+rho)) + (1/24)/k
//
// where k is the anonymity-set size and rho the synthetic-transaction
// ratio. The first term is uniform guessing over an anonymity set inflated
// by indistinguishable decoy traffic; the second is a fixed temporal-mixing
// slack for a 24-hour withdrawal-delay window, scaled down as the set grows.
// The result is clamped to 1.
//
// This is an analytic heuristic, not a statistical estimate: no sampling,
// no matching, no randomness. Computing it twice over the same state yields
// bit-identical results, which the golden-file tests rely on. The arithmetic
// is part of the model's contract; keep it exactly as written.
package linkability

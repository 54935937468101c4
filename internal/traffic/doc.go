// Package traffic implements the traffic model for the mixer privacy
// simulation: an anonymity set that grows with exogenous deposit arrivals
// and a stream of synthetic (decoy) transactions injected alongside them.
//
// ARCHITECTURE:
//
// Single-Writer State:
// A Simulation is the only stateful entity in the model. It is mutated by
// exactly one operation, Advance, which the driver calls once per simulated
// hour. The Simulation provides no internal locking; the driver owns it
// exclusively for the lifetime of one run. Callers that share a Simulation
// across goroutines must add their own synchronization.
//
// Determinism:
// Deposit identifiers come from an injected DepositIDGenerator rather than
// a hidden global source. With a SeededGenerator, two runs over the same
// arrival sequence produce identical logs, which is what makes golden-file
// comparison and the verify command possible.
//
// The model deliberately does not simulate withdrawals. No link between a
// specific withdrawal and a specific deposit is ever created; linkability is
// computed analytically from the aggregate state (see package linkability).
package traffic

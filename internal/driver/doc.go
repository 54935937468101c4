// Package driver composes the traffic model and the linkability estimator
// into a run: advance one hour, compute the bound, record a sample.
//
// The driver owns the Simulation exclusively for the duration of a run and
// calls it strictly sequentially; the loop is single-threaded by design.
// Deposit arrivals are exogenous: the driver draws them from an injected
// DepositSource rather than generating them inside the model, so a seeded
// source makes whole runs reproducible end to end.
package driver

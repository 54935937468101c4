// Package scenario loads and executes declarative simulation scenarios.
//
// A scenario is a YAML file describing a starting population, a synthetic
// traffic ratio, and an arrival schedule - either an explicit per-hour
// deposit list or a seeded uniform range. Scenarios can carry expectations
// about the final state and the worst-case linkability bound, and their
// recorded series are compared byte-for-byte against golden snapshots.
//
// Files are validated twice: structurally against an embedded CUE schema
// (types, ranges, unknown fields), then cross-field in Go (mutually
// exclusive schedule modes, range ordering).
package scenario

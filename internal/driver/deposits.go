package driver

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/proofsight/mixsim/internal/traffic"
)

// DepositSource supplies the number of new deposits for each simulated hour.
// Implemented by UniformSource (production) and FixedSource (scenarios and
// tests).
type DepositSource interface {
	Next() int
}

// UniformSource draws per-hour deposit counts uniformly from [Min, Max]
// using a seeded pseudo-random source. The research model drew from [1, 5].
//
// Thread-safety: safe for concurrent use via internal mutex, though the
// single-threaded driver never needs it.
type UniformSource struct {
	mu       sync.Mutex
	rng      *rand.Rand
	min, max int
}

// NewUniformSource creates a seeded uniform source over [min, max].
//
// Returns an invalid-argument error when min is negative or max < min.
func NewUniformSource(seed int64, min, max int) (*UniformSource, error) {
	if min < 0 {
		return nil, traffic.NewInvalidArgumentError("deposit minimum must be non-negative", map[string]string{
			"min": fmt.Sprintf("%d", min),
		})
	}
	if max < min {
		return nil, traffic.NewInvalidArgumentError("deposit maximum must be >= minimum", map[string]string{
			"min": fmt.Sprintf("%d", min),
			"max": fmt.Sprintf("%d", max),
		})
	}
	return &UniformSource{
		rng: rand.New(rand.NewSource(seed)),
		min: min,
		max: max,
	}, nil
}

// Next returns the next draw from the seeded sequence.
func (u *UniformSource) Next() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.min + u.rng.Intn(u.max-u.min+1)
}

// FixedSource returns predetermined per-hour deposit counts.
//
// Used by scenario runs, where the arrival sequence is part of the scenario
// definition, and by tests that need exact trajectories.
type FixedSource struct {
	counts []int
	idx    int
}

// NewFixedSource creates a source that returns counts in order.
//
// Panics when exhausted - a run asking for more hours than the scenario
// defined is a configuration error, caught fail-fast.
func NewFixedSource(counts ...int) *FixedSource {
	return &FixedSource{counts: counts}
}

// Next returns the next predetermined count.
func (f *FixedSource) Next() int {
	if f.idx >= len(f.counts) {
		panic("FixedSource: all deposit counts exhausted")
	}
	n := f.counts[f.idx]
	f.idx++
	return n
}

// Len returns the number of counts the source was created with.
func (f *FixedSource) Len() int {
	return len(f.counts)
}

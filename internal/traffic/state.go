package traffic

import (
	"fmt"
	"math"
)

// CategorySyntheticDeposit tags decoy records that imitate deposits. It is
// the only synthetic category the current model injects.
const CategorySyntheticDeposit = "synthetic_deposit"

// Config holds the construction parameters for a Simulation.
type Config struct {
	// InitialUsers is the anonymity-set size before any simulated arrival.
	// Must be non-negative.
	InitialUsers int

	// SyntheticRatio is the expected number of decoy transactions injected
	// per real deposit. Must be non-negative. Immutable after construction.
	SyntheticRatio float64
}

// Deposit is one entry in the append-only deposit log.
type Deposit struct {
	// Hour is the clock value at which the deposit was admitted.
	Hour int64

	// ID is an opaque identifier, locally unique within a run.
	ID string
}

// Synthetic is one entry in the append-only decoy log.
type Synthetic struct {
	Hour     int64
	Category string
}

// Simulation is the evolving traffic-model state: the anonymity set plus the
// deposit and synthetic logs, advanced one hour per Advance call.
//
// INVARIANTS:
//   - anonymitySet is monotonically non-decreasing
//   - the clock increases by exactly 1 per Advance call
//   - len(deposits) == anonymitySet - Config.InitialUsers (no eviction)
//   - both logs are append-only; entries are never removed or reordered
//
// Thread-safety model: none. The driver owns the Simulation exclusively for
// one run; concurrent callers must synchronize externally.
type Simulation struct {
	cfg          Config
	clock        *Clock
	anonymitySet int
	deposits     []Deposit
	synthetics   []Synthetic
	idGen        DepositIDGenerator
}

// Option configures a Simulation at construction.
type Option func(*Simulation)

// WithIDGenerator overrides the deposit identifier generator.
//
// Default: UUIDv7Generator. Use SeededGenerator for reproducible runs and
// FixedGenerator in tests.
func WithIDGenerator(g DepositIDGenerator) Option {
	return func(s *Simulation) {
		s.idGen = g
	}
}

// New constructs a Simulation from cfg.
//
// Returns an invalid-argument error if InitialUsers or SyntheticRatio is
// negative. A zero InitialUsers is legal for construction, but estimating
// linkability before the first deposit arrives fails (see package
// linkability).
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if cfg.InitialUsers < 0 {
		return nil, NewInvalidArgumentError("initial users must be non-negative", map[string]string{
			"initial_users": fmt.Sprintf("%d", cfg.InitialUsers),
		})
	}
	if cfg.SyntheticRatio < 0 {
		return nil, NewInvalidArgumentError("synthetic ratio must be non-negative", map[string]string{
			"synthetic_ratio": fmt.Sprintf("%g", cfg.SyntheticRatio),
		})
	}

	s := &Simulation{
		cfg:          cfg,
		clock:        NewClock(),
		anonymitySet: cfg.InitialUsers,
		deposits:     make([]Deposit, 0, 64),
		synthetics:   make([]Synthetic, 0, 64),
		idGen:        UUIDv7Generator{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Advance moves the simulation forward by exactly one hour.
//
// newDeposits controls arrival volume for the hour, not duration: a call
// with zero deposits still ticks the clock. Each arrival appends a deposit
// record stamped with the new hour and grows the anonymity set by one. The
// number of decoys injected is ceil(newDeposits * SyntheticRatio), so any
// non-zero arrival count with a non-zero ratio injects at least one decoy,
// and zero arrivals inject zero decoys regardless of ratio.
//
// A negative newDeposits is a caller contract violation and returns an
// invalid-argument error before any state is touched; a failed call leaves
// the Simulation exactly as it was.
func (s *Simulation) Advance(newDeposits int) error {
	if newDeposits < 0 {
		return NewInvalidArgumentError("new deposits must be non-negative", map[string]string{
			"new_deposits": fmt.Sprintf("%d", newDeposits),
		})
	}

	hour := s.clock.Tick()

	for i := 0; i < newDeposits; i++ {
		s.deposits = append(s.deposits, Deposit{
			Hour: hour,
			ID:   s.idGen.Generate(),
		})
		s.anonymitySet++
	}

	decoys := int(math.Ceil(float64(newDeposits) * s.cfg.SyntheticRatio))
	for i := 0; i < decoys; i++ {
		s.synthetics = append(s.synthetics, Synthetic{
			Hour:     hour,
			Category: CategorySyntheticDeposit,
		})
	}

	return nil
}

// CurrentHour returns the simulation clock's current hour.
func (s *Simulation) CurrentHour() int64 {
	return s.clock.Hour()
}

// AnonymitySetSize returns the cumulative count of distinct depositors
// admitted so far, including the initial users.
func (s *Simulation) AnonymitySetSize() int {
	return s.anonymitySet
}

// SyntheticRatio returns the configured decoys-per-deposit ratio.
func (s *Simulation) SyntheticRatio() float64 {
	return s.cfg.SyntheticRatio
}

// DepositCount returns the number of deposits admitted by Advance calls.
func (s *Simulation) DepositCount() int {
	return len(s.deposits)
}

// SyntheticCount returns the total number of decoy records injected so far.
func (s *Simulation) SyntheticCount() int {
	return len(s.synthetics)
}

// Deposits returns a copy of the deposit log in arrival order.
func (s *Simulation) Deposits() []Deposit {
	out := make([]Deposit, len(s.deposits))
	copy(out, s.deposits)
	return out
}

// Synthetics returns a copy of the decoy log in injection order.
func (s *Simulation) Synthetics() []Synthetic {
	out := make([]Synthetic, len(s.synthetics))
	copy(out, s.synthetics)
	return out
}

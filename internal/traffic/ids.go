package traffic

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// DepositIDGenerator generates opaque identifiers for deposit records.
//
// Identifiers only need to be locally unique within a run; they carry no
// cryptographic meaning. Implemented by UUIDv7Generator (production),
// SeededGenerator (reproducible runs), and FixedGenerator (tests).
type DepositIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 deposit identifiers.
//
// UUIDv7 embeds a timestamp in the most significant bits, making identifiers
// sortable by creation time, which keeps the deposit log readable when
// inspecting a run.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SeededGenerator generates reproducible 5-digit deposit identifiers drawn
// from a seeded pseudo-random source.
//
// The identifiers mimic the research model's id space: uniform integers in
// [10000, 99999]. Uniqueness within a run is not guaranteed by the draw
// itself, only overwhelmingly likely at realistic run lengths; the model
// requires identifiers to be opaque, not collision-free.
//
// Thread-safety: safe for concurrent use via internal mutex, though a
// single-writer driver never needs it.
type SeededGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededGenerator creates a generator whose output is fully determined
// by the seed. Two generators with the same seed produce the same identifier
// sequence.
func NewSeededGenerator(seed int64) *SeededGenerator {
	return &SeededGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns the next identifier from the seeded sequence.
func (g *SeededGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("%05d", 10000+g.rng.Intn(90000))
}

// FixedGenerator returns predetermined identifiers for testing.
//
// This enables deterministic test execution: tests provide a known sequence
// of identifiers and can assert exact deposit log contents.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns identifiers in order.
//
// Example:
//
//	gen := NewFixedGenerator("dep-1", "dep-2")
//	gen.Generate() // "dep-1"
//	gen.Generate() // "dep-2"
//	gen.Generate() // panic: all identifiers exhausted
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined identifier.
//
// Panics when all identifiers have been consumed. This is a fail-fast
// approach to catch test misconfiguration (the test admitted more deposits
// than it expected).
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all identifiers exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

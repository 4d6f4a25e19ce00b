package uuid7

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// Generator owns one mutable state cell and mints strictly increasing
// UUIDv7 values from it. The cell is updated with a compare-and-swap
// retry loop, so concurrent callers never block; a lost race just
// recomputes from the freshly published state.
type Generator struct {
	clock   Clock
	entropy io.Reader
	state   atomic.Pointer[state]
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock replaces the system wall clock. Intended for tests.
func WithClock(c Clock) Option {
	return func(g *Generator) {
		g.clock = c
	}
}

// WithEntropy replaces the CSPRNG. Intended for tests; production use
// must keep a cryptographically strong source.
func WithEntropy(r io.Reader) Option {
	return func(g *Generator) {
		g.entropy = r
	}
}

// NewGenerator creates an independent generator with its own zero state.
// The first Generate call reseeds away from the zero state, since any
// real clock reading is greater than zero.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		clock:   systemClock{},
		entropy: rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.state.Store(&state{})
	return g
}

// Generate mints the next identifier. Every identifier compares
// strictly greater than all prior outputs of the same Generator.
func (g *Generator) Generate() (UUID, error) {
	for {
		cur := g.state.Load()
		now := g.clock.NowMs()
		if now > maxTimestamp {
			return UUID{}, fmt.Errorf("%w: %d ms does not fit in 48 bits", ErrClock, now)
		}

		next, err := transition(*cur, now, g.entropy)
		if err != nil {
			return UUID{}, err
		}
		if g.state.CompareAndSwap(cur, &next) {
			return encode(next), nil
		}
	}
}

// GenerateString is Generate rendered in the canonical textual form.
func (g *Generator) GenerateString() (string, error) {
	u, err := g.Generate()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

var (
	defaultGen  *Generator
	defaultOnce sync.Once
)

// Default returns the shared process-wide generator. Code that needs
// isolated sequences (tests in particular) should call NewGenerator
// instead.
func Default() *Generator {
	defaultOnce.Do(func() {
		defaultGen = NewGenerator()
	})
	return defaultGen
}

// New mints an identifier from the shared default generator.
func New() (UUID, error) {
	return Default().Generate()
}

// NewString mints an identifier from the shared default generator in
// canonical textual form.
func NewString() (string, error) {
	return Default().GenerateString()
}

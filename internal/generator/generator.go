package generator

import "time"

// Generator defines the interface for ID generation, validation, and parsing.
type Generator interface {
	Generate() (string, error)
	GenerateBatch(count int) ([]string, error)
	Validate(id string) (bool, string) // (valid, reason)
	Parse(id string) (*ParseResult, error)
}

// ParseResult holds the fields embedded in an identifier.
type ParseResult struct {
	TimestampMs uint64    // embedded Unix epoch millisecond
	Datetime    time.Time // TimestampMs as a calendar time (UTC)
	CounterA    uint16    // high 12 counter bits (rand_a)
	CounterBHi  uint32    // middle 30 counter bits
	CounterBLo  uint32    // low 32 counter bits
	CounterHex  string    // 19-digit zero-padded hex of the 74-bit counter
}

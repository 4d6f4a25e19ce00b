package generator

import (
	"fmt"

	"github.com/franks42/uuidv7-go/internal/uuid7"
)

// UUIDv7Generator generates monotonic UUIDv7 IDs from one handle.
type UUIDv7Generator struct {
	handle *uuid7.Generator
}

// NewUUIDv7Generator creates a generator with an independent state cell.
func NewUUIDv7Generator() *UUIDv7Generator {
	return &UUIDv7Generator{handle: uuid7.NewGenerator()}
}

func (g *UUIDv7Generator) Generate() (string, error) {
	id, err := g.handle.GenerateString()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUIDv7: %w", err)
	}
	return id, nil
}

func (g *UUIDv7Generator) GenerateBatch(count int) ([]string, error) {
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id, err := g.Generate()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (g *UUIDv7Generator) Validate(id string) (bool, string) {
	if _, err := uuid7.Parse(id); err != nil {
		return false, err.Error()
	}
	return true, ""
}

func (g *UUIDv7Generator) Parse(id string) (*ParseResult, error) {
	parsed, err := uuid7.Parse(id)
	if err != nil {
		return nil, err
	}

	a, bHi, bLo := parsed.Counter()
	return &ParseResult{
		TimestampMs: parsed.Timestamp(),
		Datetime:    parsed.Time(),
		CounterA:    a,
		CounterBHi:  bHi,
		CounterBLo:  bLo,
		CounterHex:  parsed.CounterHex(),
	}, nil
}

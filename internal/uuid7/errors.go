package uuid7

import "errors"

var (
	// ErrFormat reports textual input that is not a canonical UUIDv7.
	ErrFormat = errors.New("uuid7: invalid format")

	// ErrClock reports a wall-clock reading that cannot be encoded in
	// the 48-bit timestamp field.
	ErrClock = errors.New("uuid7: clock reading out of range")

	// ErrEntropy reports a failed read from the random source. No
	// deterministic fallback is substituted.
	ErrEntropy = errors.New("uuid7: entropy source failed")
)

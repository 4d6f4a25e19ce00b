package uuid7

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"time"
)

// UUID is a 128-bit UUIDv7 value. The layout is
// [48-bit unix_ts_ms][4-bit ver=0111][12-bit counter_a][2-bit var=10][30+32-bit counter_b].
type UUID [16]byte

// encode packs a generator state into the canonical 128-bit layout,
// injecting the version nibble after the timestamp and the variant bits
// before counter_b. Version and variant never come from the entropy
// source.
func encode(s state) UUID {
	var u UUID

	u[0] = byte(s.ts >> 40)
	u[1] = byte(s.ts >> 32)
	u[2] = byte(s.ts >> 24)
	u[3] = byte(s.ts >> 16)
	u[4] = byte(s.ts >> 8)
	u[5] = byte(s.ts)

	u[6] = 0x70 | byte(s.a>>8)&0x0F
	u[7] = byte(s.a)

	b := uint64(s.bHi)<<32 | uint64(s.bLo)
	u[8] = 0x80 | byte(b>>56)&0x3F
	u[9] = byte(b >> 48)
	u[10] = byte(b >> 40)
	u[11] = byte(b >> 32)
	u[12] = byte(b >> 24)
	u[13] = byte(b >> 16)
	u[14] = byte(b >> 8)
	u[15] = byte(b)

	return u
}

// decode is the inverse of encode. It reads the embedded fields without
// validating version or variant; use Valid for that.
func decode(u UUID) state {
	return state{
		ts: uint64(u[0])<<40 | uint64(u[1])<<32 | uint64(u[2])<<24 |
			uint64(u[3])<<16 | uint64(u[4])<<8 | uint64(u[5]),
		a:   uint16(u[6]&0x0F)<<8 | uint16(u[7]),
		bHi: uint32(u[8]&0x3F)<<24 | uint32(u[9])<<16 | uint32(u[10])<<8 | uint32(u[11]),
		bLo: uint32(u[12])<<24 | uint32(u[13])<<16 | uint32(u[14])<<8 | uint32(u[15]),
	}
}

// String returns the canonical lowercase 8-4-4-4-12 textual form.
func (u UUID) String() string {
	var buf [36]byte
	hex.Encode(buf[:8], u[0:4])
	buf[8] = '-'
	hex.Encode(buf[9:13], u[4:6])
	buf[13] = '-'
	hex.Encode(buf[14:18], u[6:8])
	buf[18] = '-'
	hex.Encode(buf[19:23], u[8:10])
	buf[23] = '-'
	hex.Encode(buf[24:], u[10:16])
	return string(buf[:])
}

// Version returns the embedded version field (7 for values produced here).
func (u UUID) Version() int {
	return int(u[6] >> 4)
}

// Valid reports whether the version nibble is 7 and the variant prefix
// is the RFC 4122/9562 family bit pattern 10.
func (u UUID) Valid() bool {
	return u.Version() == 7 && u[8]&0xC0 == 0x80
}

// Parse decodes the canonical textual form with strict validation:
// length, hyphen placement, hex digits, version, and variant. Failures
// wrap ErrFormat. Hex digits are accepted in either case; output of
// String is always lowercase.
func Parse(s string) (UUID, error) {
	if len(s) != 36 {
		return UUID{}, fmt.Errorf("%w: length %d, want 36", ErrFormat, len(s))
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return UUID{}, fmt.Errorf("%w: misplaced hyphen in %q", ErrFormat, s)
	}

	raw, err := hex.DecodeString(s[0:8] + s[9:13] + s[14:18] + s[19:23] + s[24:36])
	if err != nil {
		return UUID{}, fmt.Errorf("%w: non-hex digit in %q", ErrFormat, s)
	}

	var u UUID
	copy(u[:], raw)

	if !u.Valid() {
		return UUID{}, fmt.Errorf("%w: version %d, variant byte %#02x", ErrFormat, u.Version(), u[8])
	}
	return u, nil
}

// FromBytes builds a UUID from a raw 16-byte value, with the same
// version/variant validation as Parse.
func FromBytes(b []byte) (UUID, error) {
	if len(b) != 16 {
		return UUID{}, fmt.Errorf("%w: %d bytes, want 16", ErrFormat, len(b))
	}
	var u UUID
	copy(u[:], b)
	if !u.Valid() {
		return UUID{}, fmt.Errorf("%w: version %d, variant byte %#02x", ErrFormat, u.Version(), u[8])
	}
	return u, nil
}

// Compare orders two UUIDs byte-wise. For values from one Generator this
// matches creation order.
func (u UUID) Compare(o UUID) int {
	return bytes.Compare(u[:], o[:])
}

// Timestamp returns the embedded Unix epoch millisecond.
func (u UUID) Timestamp() uint64 {
	return decode(u).ts
}

// Time returns the embedded timestamp as a calendar time in UTC.
func (u UUID) Time() time.Time {
	return time.UnixMilli(int64(decode(u).ts)).UTC()
}

// Counter returns the three counter fields in big-endian field order.
// Tuples compare in the same order as the identifiers they came from.
func (u UUID) Counter() (a uint16, bHi uint32, bLo uint32) {
	s := decode(u)
	return s.a, s.bHi, s.bLo
}

// CounterHex renders the 74-bit counter as a 19-digit zero-padded hex
// string: 3 digits of counter_a followed by 16 digits of the 62-bit
// counter_b. Fixed width keeps string order equal to numeric order.
func (u UUID) CounterHex() string {
	s := decode(u)
	return fmt.Sprintf("%03x%016x", s.a, uint64(s.bHi)<<32|uint64(s.bLo))
}

// CompositeKey is the sortable (timestamp, counter) surrogate for an
// identifier.
type CompositeKey struct {
	TimestampMs uint64 `json:"timestamp_ms"`
	CounterA    uint16 `json:"counter_a"`
	CounterBHi  uint32 `json:"counter_b_hi"`
	CounterBLo  uint32 `json:"counter_b_lo"`
}

// CompositeKey extracts the full sortable tuple.
func (u UUID) CompositeKey() CompositeKey {
	s := decode(u)
	return CompositeKey{
		TimestampMs: s.ts,
		CounterA:    s.a,
		CounterBHi:  s.bHi,
		CounterBLo:  s.bLo,
	}
}

// Compare orders composite keys lexicographically by field. The result
// always matches Compare on the identifiers the keys were extracted from.
func (k CompositeKey) Compare(o CompositeKey) int {
	switch {
	case k.TimestampMs != o.TimestampMs:
		return cmpU64(k.TimestampMs, o.TimestampMs)
	case k.CounterA != o.CounterA:
		return cmpU64(uint64(k.CounterA), uint64(o.CounterA))
	case k.CounterBHi != o.CounterBHi:
		return cmpU64(uint64(k.CounterBHi), uint64(o.CounterBHi))
	default:
		return cmpU64(uint64(k.CounterBLo), uint64(o.CounterBLo))
	}
}

func cmpU64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

package uuid7

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	maxTimestamp  = 1<<48 - 1
	maxCounterA   = 1<<12 - 1 // rand_a field
	maxCounterBHi = 1<<30 - 1
)

// state is the generator's mutable record: the last-used millisecond and
// the 74-bit monotonic counter split into its three encoded fields
// (12 + 30 + 32 bits, big-endian field order).
type state struct {
	ts  uint64 // last-used Unix epoch millisecond, 48-bit range
	a   uint16 // high 12 counter bits (rand_a)
	bHi uint32 // middle 30 counter bits
	bLo uint32 // low 32 counter bits
}

// transition computes the successor state for the wall-clock reading now.
// It is a pure function of (prev, now) and the bytes drawn from entropy,
// so callers may recompute it freely after a lost race.
//
// A reading ahead of the stored millisecond triggers a full 74-bit
// reseed. A reading at or behind the stored millisecond (including
// genuine clock rollback) keeps the stored millisecond and bumps the
// counter by a random step in [1, 2^31], carrying across the three
// fields. If the 74-bit counter would overflow, the stored millisecond
// is advanced by one and the counter reseeded, which keeps the output
// strictly increasing no matter what the clock reports.
func transition(prev state, now uint64, entropy io.Reader) (state, error) {
	if now > prev.ts {
		return reseed(now, entropy)
	}

	d, err := randomIncrement(entropy)
	if err != nil {
		return state{}, err
	}

	sumLo := uint64(prev.bLo) + d
	bLo := uint32(sumLo & 0xFFFFFFFF)
	sumHi := uint64(prev.bHi) + (sumLo >> 32)
	bHi := uint32(sumHi & maxCounterBHi)
	a := uint32(prev.a) + uint32(sumHi>>30)

	if a > maxCounterA {
		// Counter exhausted within this millisecond.
		return reseed(prev.ts+1, entropy)
	}

	return state{ts: prev.ts, a: uint16(a), bHi: bHi, bLo: bLo}, nil
}

// reseed draws 74 fresh random bits and splits them into the three
// counter fields at the given millisecond.
func reseed(ts uint64, entropy io.Reader) (state, error) {
	var buf [10]byte
	if _, err := io.ReadFull(entropy, buf[:]); err != nil {
		return state{}, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return state{
		ts:  ts,
		a:   binary.BigEndian.Uint16(buf[0:2]) & maxCounterA,
		bHi: binary.BigEndian.Uint32(buf[2:6]) & maxCounterBHi,
		bLo: binary.BigEndian.Uint32(buf[6:10]),
	}, nil
}

// randomIncrement draws a step uniformly distributed over [1, 2^31].
func randomIncrement(entropy io.Reader) (uint64, error) {
	var buf [4]byte
	if _, err := io.ReadFull(entropy, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return uint64(binary.BigEndian.Uint32(buf[:])&0x7FFFFFFF) + 1, nil
}

package uuid7

import "time"

// Clock supplies the current Unix time in whole milliseconds.
type Clock interface {
	NowMs() uint64
}

// systemClock reads the system wall clock.
type systemClock struct{}

func (systemClock) NowMs() uint64 {
	ms := time.Now().UnixMilli()
	if ms < 0 {
		return 0
	}
	return uint64(ms)
}

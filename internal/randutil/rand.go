package randutil

import "math/rand"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided
// int64. The helper centralises seed derivation so all call sites get
// reproducible sequences, and mixes the raw seed first so that nearby
// seeds (table 1, table 2, ...) land on unrelated states.
func New(seed int64) *rand.Rand {
	u := mix(uint64(seed))
	return rand.New(rand.NewSource(int64(u ^ goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

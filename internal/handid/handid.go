// Package handid generates hand identifiers: UUIDv7 values encoded as
// 26 characters of Crockford base32. The leading 48 bits are the
// generation time in milliseconds, so IDs sort lexicographically in
// deal order and make stable, filename-safe hand history names.
package handid

import (
	"crypto/rand"

	"github.com/coder/quartz"
)

// Crockford's base32, in ASCII order so encoded IDs sort as strings.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random tail of an ID. *math/rand.Rand
// satisfies it.
type RandSource interface {
	Intn(n int) int
}

// Generator produces hand IDs. The clock feeds the millisecond prefix;
// randSource fills the tail, falling back to crypto/rand when nil.
// Injecting both makes generated IDs fully reproducible in tests and
// seeded simulations.
type Generator struct {
	clock      quartz.Clock
	randSource RandSource
}

// NewGenerator creates a generator. A nil clock means wall time.
func NewGenerator(clock quartz.Clock, randSource RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, randSource: randSource}
}

// New generates one hand ID with wall time and a crypto/rand tail.
func New() string {
	return NewGenerator(nil, nil).New()
}

// New generates one hand ID.
func (g *Generator) New() string {
	var id [16]byte

	ms := g.clock.Now().UnixMilli()
	id[0] = byte(ms >> 40)
	id[1] = byte(ms >> 32)
	id[2] = byte(ms >> 24)
	id[3] = byte(ms >> 16)
	id[4] = byte(ms >> 8)
	id[5] = byte(ms)

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.randSource.Intn(256))
		}
	} else {
		if _, err := rand.Read(id[6:]); err != nil {
			panic("handid: reading random bytes failed: " + err.Error())
		}
	}

	// UUIDv7 version and variant bits.
	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return encodeBase32(id)
}

// encodeBase32 packs 128 bits into 26 characters of 5 bits each,
// big-endian from bit 0; the final character carries two zero pad
// bits.
func encodeBase32(data [16]byte) string {
	var out [26]byte
	for i := range out {
		bit := i * 5
		idx := bit / 8
		off := bit % 8

		var v byte
		if off <= 3 {
			v = (data[idx] >> (3 - off)) & 0x1f
		} else {
			v = (data[idx] << (off - 3)) & 0x1f
			if idx+1 < len(data) {
				v |= data[idx+1] >> (11 - off)
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

package acquisition

import (
	"math/rand"
	"time"
)

// Payload produces opaque binary chunks standing in for acquisition data.
// The content is meaningless; only size and write timing matter.
type Payload struct {
	rng *rand.Rand
}

// NewPayload creates a payload generator with a time-based seed.
func NewPayload() *Payload {
	return &Payload{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Chunk returns a buffer of n random bytes. Generation cannot fail.
func (p *Payload) Chunk(n int64) []byte {
	buf := make([]byte, n)
	p.rng.Read(buf)
	return buf
}

package card

import (
	"hash/fnv"
	"math/rand/v2"
)

const demoLabel = "DEMO DATA"

// demoRand returns a generator seeded by username so demo cards are stable.
func demoRand(username string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(username))
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

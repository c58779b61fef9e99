package ships

import "math/rand/v2"

// Rand is the randomness collaborator required by the random placer and
// generator. The host seeds it for reproducibility; the engine never
// seeds its own source.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// randAdapter lets *rand.Rand from math/rand/v2 satisfy [Rand] without
// every call site needing to know about the concrete type.
type randAdapter struct {
	r *rand.Rand
}

// NewRand wraps a *rand.Rand (typically rand.New(rand.NewPCG(seed1, seed2)))
// as a [Rand].
func NewRand(r *rand.Rand) Rand {
	return randAdapter{r}
}

func (a randAdapter) IntN(n int) int {
	return a.r.IntN(n)
}

func (a randAdapter) Shuffle(n int, swap func(i, j int)) {
	a.r.Shuffle(n, swap)
}

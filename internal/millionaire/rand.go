package millionaire

// Rand is the random source used for question selection, key shuffling and
// help payloads. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// shuffle is a Fisher–Yates shuffle driven by rng.
func shuffle[T any](rng Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

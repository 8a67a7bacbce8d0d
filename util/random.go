// Package util provides small helpers shared by the generator packages.
package util

import "math/rand"

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	alphanum  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	hexDigits = "0123456789ABCDEF"
)

// Chance returns true with probability p. Values of p at or below zero never
// fire, values at or above one always fire.
func Chance(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// Letters returns a random lowercase ASCII string of length n.
func Letters(r *rand.Rand, n int) string {
	return randomFrom(r, lowercase, n)
}

// AlphaNum returns a random alphanumeric ASCII string of length n.
func AlphaNum(r *rand.Rand, n int) string {
	return randomFrom(r, alphanum, n)
}

// Hex returns a random uppercase hexadecimal string of length n.
func Hex(r *rand.Rand, n int) string {
	return randomFrom(r, hexDigits, n)
}

func randomFrom(r *rand.Rand, alphabet string, n int) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(buf)
}

package util

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChanceBounds(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		assert.False(t, Chance(r, 0))
		assert.True(t, Chance(r, 1))
	}
}

func TestLettersLengthAndAlphabet(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	s := Letters(r, 32)
	assert.Len(t, s, 32)
	for _, c := range s {
		assert.True(t, c >= 'a' && c <= 'z', "unexpected rune %q", c)
	}
}

func TestHexAlphabet(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	s := Hex(r, 64)
	assert.Len(t, s, 64)
	for _, c := range s {
		assert.Contains(t, "0123456789ABCDEF", string(c))
	}
}

func TestZeroLength(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	assert.Empty(t, Letters(r, 0))
	assert.Empty(t, AlphaNum(r, -1))
}

package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	got := Normalize([]string{"  Chicken   BREAST ", "", "   ", "Rice", "ＥＧＧ"})
	assert.Equal(t, []string{"chicken breast", "rice", "egg"}, got)
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := [][]string{
		{"Flour", " MILK", "eggs  "},
		{"", "\t", "Red  Onion"},
		{"Crème Fraîche", "½ cup sugar"},
		nil,
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize([]string{" ", ""}))
}

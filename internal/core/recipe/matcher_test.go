package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchDirect(t *testing.T) {
	m := Match([]string{"chicken", "rice"}, []string{"chicken breast", "white rice", "soy sauce"})

	assert.Equal(t, 2, m.Count())
	assert.Equal(t, []string{"chicken", "rice"}, m.MatchedUser())
	assert.Equal(t, []string{"chicken breast", "white rice"}, m.MatchedRecipe())
	for _, p := range m.Pairs {
		assert.Equal(t, StrategyDirect, p.Strategy)
	}
}

func TestMatchWordFallback(t *testing.T) {
	m := Match([]string{"red onion"}, []string{"onions, chopped"})

	if assert.Equal(t, 1, m.Count()) {
		assert.Equal(t, StrategyWord, m.Pairs[0].Strategy)
		assert.Equal(t, "onions, chopped", m.Pairs[0].Recipe)
	}
}

func TestMatchConsumesRecipeIngredientOnce(t *testing.T) {
	m := Match([]string{"chicken", "chicken thigh"}, []string{"chicken"})
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, []string{"chicken"}, m.MatchedUser())
}

func TestMatchPrefersDirectOverEarlierWordHit(t *testing.T) {
	m := Match([]string{"green pepper"}, []string{"green onion", "green pepper"})
	if assert.Equal(t, 1, m.Count()) {
		assert.Equal(t, "green pepper", m.Pairs[0].Recipe)
		assert.Equal(t, StrategyDirect, m.Pairs[0].Strategy)
	}
}

func TestMatchNone(t *testing.T) {
	m := Match([]string{"caviar", "truffles"}, []string{"flour", "milk"})
	assert.Zero(t, m.Count())
	assert.Empty(t, m.MatchedRecipe())
}

func TestMatchIgnoresEmptyStrings(t *testing.T) {
	m := Match([]string{""}, []string{"flour"})
	assert.Zero(t, m.Count())
}

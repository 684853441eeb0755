package recipe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSelector(t *testing.T, raws ...RawRecipe) *Selector {
	t.Helper()
	engine := NewEngine(nil)
	corpus, report := NewCorpus(engine, raws)
	require.Equal(t, len(raws), report.Loaded)
	return NewSelector(engine, corpus)
}

func pancakesAndStirFry() []RawRecipe {
	return []RawRecipe{
		{ID: "1", Title: "Pancakes", Ingredients: IngredientList{"flour", "milk", "eggs", "sugar"}, EstimatedPounds: 1.5},
		{ID: "2", Title: "Chicken Stir Fry", Ingredients: IngredientList{"chicken", "rice", "onion", "carrots"}, EstimatedPounds: 2.0},
	}
}

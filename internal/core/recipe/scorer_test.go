package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredRecipe(t *testing.T, title string, ingredients ...string) (*Engine, *Recipe) {
	t.Helper()
	engine := NewEngine(nil)
	corpus, report := NewCorpus(engine, []RawRecipe{{ID: "x", Title: title, Ingredients: ingredients}})
	require.Equal(t, 1, report.Loaded)
	r, ok := corpus.Get("x")
	require.True(t, ok)
	return engine, &r
}

func TestScoreStirFry(t *testing.T) {
	engine, r := scoredRecipe(t, "Chicken Stir Fry", "chicken", "rice", "onion", "carrots")

	score := engine.Scorer.Score([]string{"chicken", "rice", "onion"}, r)

	assert.InDelta(t, 0.925, score, 1e-9)
	assert.Equal(t, score, r.Score)
	assert.Equal(t, "1.00", r.EstimatedPounds)
}

func TestScoreAppliesCookingModifier(t *testing.T) {
	engine, r := scoredRecipe(t, "Pancakes", "flour", "milk", "eggs", "sugar")
	require.Equal(t, "breakfast", r.CookingStyle)

	score := engine.Scorer.Score([]string{"flour", "milk"}, r)

	assert.InDelta(t, 0.85, score, 1e-9)
	assert.Equal(t, "0.45", r.EstimatedPounds)
}

func TestScoreClampsWeight(t *testing.T) {
	engine, r := scoredRecipe(t, "Big Roast", "5 pounds beef roast", "10 pounds potatoes")

	engine.Scorer.Score([]string{"beef", "potatoes"}, r)
	assert.Equal(t, "10.00", r.EstimatedPounds)

	engine, r = scoredRecipe(t, "Garlic Toast", "garlic", "bread")
	engine.Scorer.Score([]string{"garlic"}, r)
	assert.Equal(t, "0.25", r.EstimatedPounds)
}

func TestScoreNoMatchKeepsPounds(t *testing.T) {
	engine, r := scoredRecipe(t, "Pancakes", "flour", "milk")
	before := r.EstimatedPounds

	score := engine.Scorer.Score([]string{"caviar"}, r)

	assert.Zero(t, score)
	assert.Equal(t, before, r.EstimatedPounds)
}

func TestScoreBounds(t *testing.T) {
	queries := [][]string{
		{"chicken"},
		{"chicken", "rice", "onion", "carrots", "garlic", "lemon"},
		{"flour", "milk", "eggs", "sugar"},
		{"caviar", "truffles", "saffron"},
	}
	engine := NewEngine(nil)
	corpus, _ := NewCorpus(engine, append(pancakesAndStirFry(),
		RawRecipe{ID: "3", Title: "Lemon Garlic Soup", Ingredients: IngredientList{"2 cups chicken broth", "1 lemon", "4 garlic cloves"}},
	))

	for _, q := range queries {
		for _, r := range corpus.Recipes() {
			score := engine.Scorer.Score(q, &r)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
			assert.GreaterOrEqual(t, r.Pounds(), 0.25)
			assert.LessOrEqual(t, r.Pounds(), 10.0)
		}
	}
}

func TestScoreIneligible(t *testing.T) {
	engine := NewEngine(nil)
	r := &Recipe{ID: "empty", Title: "Nothing"}
	assert.Zero(t, engine.Scorer.Score([]string{"flour"}, r))
}

func TestModifierFallsBackToMealType(t *testing.T) {
	tables := DefaultTables()
	tables.CookingModifiers = append(tables.CookingModifiers, Modifier{Style: "dinner", Factor: 1.5})
	s := NewScorer(tables, NewWeightEstimator(tables))

	assert.Equal(t, 1.8, s.Modifier(&Recipe{CookingStyle: "pasta", MealType: MealDinner}))
	assert.Equal(t, 1.5, s.Modifier(&Recipe{MealType: MealDinner}))
	assert.Equal(t, 1.0, s.Modifier(&Recipe{MealType: MealLunch}))
}

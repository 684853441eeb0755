package recipe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIngredientList(t *testing.T) {
	got := ParseIngredientList(`['1 (3½–4-lb.) whole chicken', '2 tsp. kosher salt, divided', "1 cup rice"]`)
	assert.Equal(t, []string{"1 (3½–4-lb.) whole chicken", "2 tsp. kosher salt, divided", "1 cup rice"}, got)

	assert.Equal(t, []string{"flour", "milk"}, ParseIngredientList("flour, milk"))
	assert.Empty(t, ParseIngredientList("[]"))
	assert.Equal(t, []string{"baker's chocolate"}, ParseIngredientList(`["baker's chocolate"]`))
}

func TestLoadCorpusCleanedFormat(t *testing.T) {
	doc := `[
		{"recipeIndex": 1, "title": "Pancakes", "instructions": "Mix.", "cleanedIngredients": ["Flour", " Milk "], "estimatedPounds": 1.5, "estimatedTimeMinutes": 20},
		{"recipeIndex": "2", "title": "Beef Stew", "cleanedIngredients": "['beef', 'potato']", "estimatedPounds": "25"}
	]`

	corpus, report, err := LoadCorpus(NewEngine(nil), strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, LoadReport{Total: 2, Loaded: 2}, report)

	pancakes, ok := corpus.Get("1")
	require.True(t, ok)
	assert.Equal(t, []string{"flour", "milk"}, pancakes.Ingredients)
	assert.Equal(t, MealBreakfast, pancakes.MealType)
	assert.Equal(t, "1.50", pancakes.EstimatedPounds)
	assert.Equal(t, 20, pancakes.EstimatedTimeMinutes)

	stew, ok := corpus.Get("2")
	require.True(t, ok)
	assert.Equal(t, []string{"beef", "potato"}, stew.Ingredients)
	assert.Equal(t, MealDinner, stew.MealType)
	assert.Equal(t, "stew", stew.CookingStyle)
	assert.Equal(t, "10.00", stew.EstimatedPounds)
}

func TestLoadCorpusRawDatasetFormat(t *testing.T) {
	doc := `{"recipes": [
		{"Recipe Index": 7, "Title": "Tomato Soup", "Ingredients": "['2 cups tomatoes', '1 onion']",
		 "Cleaned_Ingredients": "['tomatoes', 'onion']", "Image_Name": "tomato-soup"}
	]}`

	corpus, report, err := LoadCorpus(NewEngine(nil), strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)

	r, ok := corpus.Get("7")
	require.True(t, ok)
	assert.Equal(t, "Tomato Soup", r.Title)
	assert.Equal(t, []string{"tomatoes", "onion"}, r.Ingredients)
	assert.Equal(t, "['2 cups tomatoes', '1 onion']", r.RawIngredients)
	assert.Equal(t, "tomato-soup", r.ImageName)
	assert.Equal(t, MealLunch, r.MealType)
	assert.Equal(t, "0.25", r.EstimatedPounds)
}

func TestLoadCorpusSkipsBadRecords(t *testing.T) {
	doc := `[
		{"recipeIndex": 1, "title": "Good", "cleanedIngredients": ["rice"]},
		{"recipeIndex": 2, "title": "", "cleanedIngredients": ["rice"]},
		{"recipeIndex": 3, "title": "Empty", "cleanedIngredients": ["  "]},
		{"recipeIndex": 1, "title": "Duplicate", "cleanedIngredients": ["rice"]},
		{"recipeIndex": {"nested": true}, "title": "Malformed"},
		"not an object",
		{"title": "No Id", "cleanedIngredients": ["beans"]}
	]`

	corpus, report, err := LoadCorpus(NewEngine(nil), strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 7, report.Total)
	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, 5, report.Skipped)
	assert.Equal(t, map[string]int{
		"missing_title":     1,
		"empty_ingredients": 1,
		"duplicate_id":      1,
		"malformed":         2,
	}, report.Reasons)

	recipes := corpus.Recipes()
	require.Len(t, recipes, 2)
	assert.Equal(t, "Good", recipes[0].Title)
	assert.NotEmpty(t, recipes[1].ID)
}

func TestLoadCorpusRejectsBadDocument(t *testing.T) {
	for _, doc := range []string{``, `42`, `{"recipes": 5}`, `[1, 2`} {
		_, _, err := LoadCorpus(NewEngine(nil), strings.NewReader(doc))
		assert.Error(t, err, doc)
	}
}

func TestNewCorpusPreservesOrder(t *testing.T) {
	corpus, report := NewCorpus(NewEngine(nil), pancakesAndStirFry())
	assert.Equal(t, 2, report.Loaded)
	assert.Zero(t, report.Skipped)
	assert.Equal(t, 2, corpus.Len())

	recipes := corpus.Recipes()
	assert.Equal(t, "Pancakes", recipes[0].Title)
	assert.Equal(t, "Chicken Stir Fry", recipes[1].Title)
	assert.Equal(t, "2.00", recipes[1].EstimatedPounds)
}

func TestCorpusWithoutEngineUsesDefaultTables(t *testing.T) {
	corpus, report := NewCorpus(nil, pancakesAndStirFry())
	assert.Equal(t, 2, report.Loaded)
	pancakes, ok := corpus.Get("1")
	require.True(t, ok)
	assert.Equal(t, MealBreakfast, pancakes.MealType)

	loaded, report, err := LoadCorpus(nil, strings.NewReader(`[{"recipeIndex": 3, "title": "Beef Stew", "cleanedIngredients": ["beef"]}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)
	stew, ok := loaded.Get("3")
	require.True(t, ok)
	assert.Equal(t, MealDinner, stew.MealType)
}

func TestLoadSampleCorpus(t *testing.T) {
	f, err := os.Open(filepath.Join("..", "..", "..", "data", "recipes.json"))
	require.NoError(t, err)
	defer f.Close()

	corpus, report, err := LoadCorpus(NewEngine(nil), f)
	require.NoError(t, err)
	assert.Equal(t, 12, report.Loaded)
	assert.Zero(t, report.Skipped)

	pancakes, ok := corpus.Get("1")
	require.True(t, ok)
	assert.Equal(t, MealBreakfast, pancakes.MealType)
	assert.Equal(t, []string{"flour", "buttermilk", "eggs", "sugar", "baking powder"}, pancakes.Ingredients)
	assert.Equal(t, "0.25", pancakes.EstimatedPounds)

	cookies, ok := corpus.Get("10")
	require.True(t, ok)
	assert.Equal(t, "dessert", cookies.CookingStyle)
	assert.Equal(t, "1.40", cookies.EstimatedPounds)

	lemonade, ok := corpus.Get("11")
	require.True(t, ok)
	assert.Equal(t, MealAny, lemonade.MealType)
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"leftover-chef/internal/api/router"
	"leftover-chef/internal/core/recipe"
	"leftover-chef/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := recipe.NewEngine(nil)
	corpus, _ := recipe.NewCorpus(engine, []recipe.RawRecipe{
		{ID: "1", Title: "Pancakes", Ingredients: recipe.IngredientList{"flour", "milk", "eggs", "sugar"}, EstimatedPounds: 1.5},
		{ID: "2", Title: "Chicken Stir Fry", Ingredients: recipe.IngredientList{"chicken", "rice", "onion", "carrots"}, EstimatedPounds: 2.0},
	})
	cfg := &config.Config{
		Server:      config.ServerConfig{MaxBodyBytes: 1 << 20},
		DedupWindow: time.Millisecond,
	}
	srv := httptest.NewServer(router.SetupRouter(cfg, router.Dependencies{
		Recipes: recipe.NewService(recipe.NewSelector(engine, corpus), nil),
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp()
	app.Writer = &out
	err := app.Run(context.Background(), append([]string{name}, args...))
	return out.String(), err
}

func TestMatchCommand(t *testing.T) {
	addr := newTestServer(t)

	out, err := run(t, "--addr", addr, "match", "--format", "json", "-i", "chicken,rice")
	require.NoError(t, err)

	var resp struct {
		Recipe struct {
			Title string `json:"title"`
		} `json:"recipe"`
		BestEffort bool `json:"bestEffort"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Chicken Stir Fry", resp.Recipe.Title)
	assert.False(t, resp.BestEffort)
}

func TestAlternativesCommandYAML(t *testing.T) {
	addr := newTestServer(t)

	out, err := run(t, "--addr", addr, "alternatives", "--limit", "1", "milk", "flour")
	require.NoError(t, err)

	var recipes []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, "Pancakes", recipes[0]["title"])
}

func TestSavedAndResetCommands(t *testing.T) {
	addr := newTestServer(t)

	_, err := run(t, "--addr", addr, "match", "flour")
	require.NoError(t, err)

	out, err := run(t, "--addr", addr, "saved", "-o", "json")
	require.NoError(t, err)
	var saved struct {
		Total float64 `json:"totalFoodSaved"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	assert.Greater(t, saved.Total, 0.0)

	out, err = run(t, "--addr", addr, "reset", "-o", "json")
	require.NoError(t, err)
	var stats recipe.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 0, stats.Served)
}

func TestCommandErrors(t *testing.T) {
	addr := newTestServer(t)

	_, err := run(t, "--addr", addr, "match")
	assert.ErrorContains(t, err, "at least one ingredient")

	_, err = run(t, "--addr", addr, "by-meal")
	assert.ErrorContains(t, err, "exactly one meal type")

	_, err = run(t, "--addr", addr, "by-meal", "brunch")
	assert.ErrorContains(t, err, "INVALID_INPUT")

	_, err = run(t, "--addr", addr, "match", "-o", "xml", "rice")
	assert.ErrorContains(t, err, "unknown output format")
}

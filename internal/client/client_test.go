package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"leftover-chef/internal/api/router"
	"leftover-chef/internal/core/recipe"
	"leftover-chef/internal/infrastructure/config"
	"leftover-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := recipe.NewEngine(nil)
	corpus, _ := recipe.NewCorpus(engine, []recipe.RawRecipe{
		{ID: "1", Title: "Pancakes", Ingredients: recipe.IngredientList{"flour", "milk", "eggs", "sugar"}, EstimatedPounds: 1.5},
		{ID: "2", Title: "Chicken Stir Fry", Ingredients: recipe.IngredientList{"chicken", "rice", "onion", "carrots"}, EstimatedPounds: 2.0},
	})
	cfg := &config.Config{
		App:         config.AppConfig{Version: "test"},
		Server:      config.ServerConfig{MaxBodyBytes: 1 << 20},
		DedupWindow: time.Millisecond,
	}
	r := router.SetupRouter(cfg, router.Dependencies{
		Recipes: recipe.NewService(recipe.NewSelector(engine, corpus), nil),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestClientRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	match, err := c.Match(ctx, []string{"chicken", "rice"}, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Chicken Stir Fry", match.Recipe.Title)
	assert.False(t, match.BestEffort)

	alt, err := c.Alternative(ctx, []string{"chicken", "rice"}, "")
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", alt.Recipe.Title)

	recipes, err := c.Alternatives(ctx, []string{"milk"}, "breakfast", 1)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Pancakes", recipes[0].Title)

	byMeal, err := c.ByMealType(ctx, "BREAKFAST")
	require.NoError(t, err)
	assert.Len(t, byMeal, 2)

	saved, err := c.FoodSaved(ctx)
	require.NoError(t, err)
	assert.InDelta(t, match.Recipe.Pounds()+alt.Recipe.Pounds(), saved, 1e-9)

	stats, err := c.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Served)
	assert.InDelta(t, saved, stats.TotalFoodSaved, 1e-9)

	stats, err = c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CorpusSize)

	cats, err := c.Categorize(ctx, []string{"garlic", "butter"})
	require.NoError(t, err)
	assert.Len(t, cats.Ingredients, 2)
}

func TestClientAPIError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Match(context.Background(), nil, "", "")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, common.ErrCodeInvalidInput, apiErr.Code)

	_, err = c.ByMealType(context.Background(), "brunch")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestClientRetriesGetOnBadGateway(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalFoodSaved": 1.25, "unit": "lb"}`))
	}))
	defer srv.Close()

	saved, err := New(srv.URL, time.Second).FoodSaved(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1.25, saved, 1e-9)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

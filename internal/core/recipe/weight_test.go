package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	e := NewWeightEstimator(DefaultTables())

	tests := []struct {
		ingredient string
		want       float64
	}{
		{"1/4 pound beef", 0.25},
		{"100 g sugar", 0.22},
		{"something unknown", 0.25},
		{"2 cups flour", 1.0},
		{"1 1/2 cups milk", 0.75},
		{"8 oz cheddar", 0.5},
		{"3 tbsp butter", 0.1875},
		{".5 lb ground pork", 0.5},
		{"1.5 pounds potatoes", 1.5},
		{"chicken breast", 0.5},
		{"2 garlic cloves", 0.0625},
		{"1 whole chicken", 4.0},
		{"1 large onion", 0.5},
		{"1/0 cup milk", 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.ingredient, func(t *testing.T) {
			assert.InDelta(t, tt.want, e.Estimate(tt.ingredient), 1e-9)
		})
	}
}

func TestEstimateTotal(t *testing.T) {
	e := NewWeightEstimator(DefaultTables())
	assert.InDelta(t, 1.0, e.Total([]string{"chicken", "rice", "onion"}), 1e-9)
	assert.Zero(t, e.Total(nil))
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2", 2, true},
		{"1.5", 1.5, true},
		{".25", 0.25, true},
		{"3/4", 0.75, true},
		{"2 1/2", 2.5, true},
		{"1/0", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseQuantity(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}

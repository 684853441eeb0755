package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want Category
	}{
		{"Green Apple", CategoryProduce},
		{"bell pepper", CategoryProduce},
		{"Whole Milk", CategoryDairy},
		{"eggs", CategoryDairy},
		{"sea salt", CategorySpices},
		{"Smoked Paprika", CategorySpices},
		{"chicken thigh", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.name))
		})
	}
}

func TestCategorizeAll(t *testing.T) {
	got := CategorizeAll([]string{"  sweet   POTATO ", "", "cheddar cheese", "rice"})
	require.Len(t, got, 3)

	assert.Equal(t, Categorized{Name: "sweet potato", Display: "Sweet Potato", Category: CategoryProduce}, got[0])
	assert.Equal(t, CategoryDairy, got[1].Category)
	assert.Equal(t, CategoryOther, got[2].Category)

	groups := GroupByCategory(got)
	assert.Equal(t, []string{"sweet potato"}, groups[CategoryProduce])
	assert.Equal(t, []string{"rice"}, groups[CategoryOther])
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" dairy ")
	require.NoError(t, err)
	assert.Equal(t, CategoryDairy, c)

	_, err = ParseCategory("meat")
	assert.Error(t, err)
}

package ingredient

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category 食材分類
type Category string

const (
	CategoryProduce Category = "PRODUCE"
	CategoryDairy   Category = "DAIRY"
	CategorySpices  Category = "SPICES"
	CategoryOther   Category = "OTHER"
)

// Categories 所有分類，依判斷順序排列
var Categories = []Category{CategoryProduce, CategoryDairy, CategorySpices, CategoryOther}

// 依序比對，第一個命中的分類勝出
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryProduce, []string{
		"apple", "banana", "orange", "tomato", "lettuce", "carrot", "potato", "onion", "garlic",
		"pepper", "broccoli", "spinach", "cucumber", "celery", "avocado", "berry", "fruit", "vegetable",
	}},
	{CategoryDairy, []string{"milk", "cheese", "yogurt", "butter", "cream", "egg"}},
	{CategorySpices, []string{
		"salt", "spice", "herb", "cinnamon", "oregano", "basil", "thyme", "cumin", "paprika", "curry",
	}},
}

// Categorized 分類結果
type Categorized struct {
	Name     string   `json:"name"`
	Display  string   `json:"display"`
	Category Category `json:"category"`
}

// ParseCategory 解析分類名稱（不分大小寫）
func ParseCategory(s string) (Category, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown ingredient category %q", s)
}

// Categorize 依名稱關鍵字判斷分類
func Categorize(name string) Category {
	lower := strings.ToLower(name)
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.category
			}
		}
	}
	return CategoryOther
}

// CategorizeAll 分類多個食材，略過空白項目
func CategorizeAll(names []string) []Categorized {
	title := cases.Title(language.English)
	out := make([]Categorized, 0, len(names))
	for _, name := range names {
		name = strings.Join(strings.Fields(name), " ")
		if name == "" {
			continue
		}
		out = append(out, Categorized{
			Name:     strings.ToLower(name),
			Display:  title.String(name),
			Category: Categorize(name),
		})
	}
	return out
}

// GroupByCategory 依分類分組
func GroupByCategory(items []Categorized) map[Category][]string {
	groups := make(map[Category][]string)
	for _, item := range items {
		groups[item.Category] = append(groups[item.Category], item.Name)
	}
	return groups
}

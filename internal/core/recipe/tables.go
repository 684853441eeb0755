package recipe

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// KeywordGroup 一組關鍵字對應一個標籤
type KeywordGroup struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// WeightEntry 關鍵字對應的預估重量（磅）
type WeightEntry struct {
	Keyword string  `yaml:"keyword"`
	Pounds  float64 `yaml:"pounds"`
}

// CategoryWeights 食材類別的預估重量表
type CategoryWeights struct {
	Category string        `yaml:"category"`
	Items    []WeightEntry `yaml:"items"`
}

// UnitConversion 計量單位換算（磅）與別名
type UnitConversion struct {
	Unit    string   `yaml:"unit"`
	Pounds  float64  `yaml:"pounds"`
	Aliases []string `yaml:"aliases"`
}

// Modifier 烹調方式的重量修正係數
type Modifier struct {
	Style  string  `yaml:"style"`
	Factor float64 `yaml:"factor"`
}

// Tables 比對引擎使用的靜態關鍵字表
// 全部使用有序切片，確保「第一個命中者勝出」的結果可重現
type Tables struct {
	MealKeywords     []KeywordGroup    `yaml:"meal_keywords"`
	CookingStyles    []KeywordGroup    `yaml:"cooking_styles"`
	CookingModifiers []Modifier        `yaml:"cooking_modifiers"`
	Units            []UnitConversion  `yaml:"units"`
	Categories       []CategoryWeights `yaml:"categories"`
	DefaultWeight    float64           `yaml:"default_weight"`
	MinPounds        float64           `yaml:"min_pounds"`
	MaxPounds        float64           `yaml:"max_pounds"`
}

// DefaultTables 內建關鍵字表
func DefaultTables() *Tables {
	return &Tables{
		MealKeywords: []KeywordGroup{
			{Label: string(MealBreakfast), Keywords: []string{"pancake", "egg", "waffle", "oatmeal", "breakfast", "omelet", "granola"}},
			{Label: string(MealLunch), Keywords: []string{"sandwich", "salad", "soup", "wrap", "burger"}},
			{Label: string(MealDinner), Keywords: []string{"roast", "steak", "pasta", "curry", "casserole", "stew"}},
		},
		CookingStyles: []KeywordGroup{
			{Label: "soup", Keywords: []string{"soup", "broth", "chowder"}},
			{Label: "stew", Keywords: []string{"stew", "braised", "cassoulet"}},
			{Label: "roast", Keywords: []string{"roast", "roasted"}},
			{Label: "baked", Keywords: []string{"baked", "bake"}},
			{Label: "fried", Keywords: []string{"fried", "sautéed", "pan-fried"}},
			{Label: "salad", Keywords: []string{"salad", "slaw"}},
			{Label: "cocktail", Keywords: []string{"cocktail", "drink", "beverage"}},
			{Label: "breakfast", Keywords: []string{"breakfast", "pancake", "waffle", "eggs"}},
			{Label: "dessert", Keywords: []string{"cake", "pie", "cookie", "dessert", "ice cream"}},
			{Label: "pasta", Keywords: []string{"pasta", "noodle", "spaghetti", "macaroni"}},
			{Label: "sandwich", Keywords: []string{"sandwich", "burger", "wrap"}},
		},
		CookingModifiers: []Modifier{
			{Style: "soup", Factor: 1.2},
			{Style: "stew", Factor: 1.1},
			{Style: "roast", Factor: 0.85},
			{Style: "baked", Factor: 0.9},
			{Style: "fried", Factor: 0.8},
			{Style: "salad", Factor: 1.0},
			{Style: "cocktail", Factor: 0.5},
			{Style: "dessert", Factor: 0.85},
			{Style: "pasta", Factor: 1.8},
			{Style: "sandwich", Factor: 1.0},
			{Style: "breakfast", Factor: 0.9},
		},
		Units: []UnitConversion{
			{Unit: "cup", Pounds: 0.5},
			{Unit: "tablespoon", Pounds: 0.0625, Aliases: []string{"tbsp"}},
			{Unit: "teaspoon", Pounds: 0.0208, Aliases: []string{"tsp"}},
			{Unit: "ounce", Pounds: 0.0625, Aliases: []string{"oz"}},
			{Unit: "pound", Pounds: 1.0, Aliases: []string{"lb"}},
			{Unit: "gram", Pounds: 0.0022, Aliases: []string{"g"}},
		},
		Categories: []CategoryWeights{
			{Category: "chicken", Items: []WeightEntry{
				{"whole", 4.0}, {"breast", 0.5}, {"thigh", 0.375}, {"wing", 0.25},
			}},
			{Category: "beef", Items: []WeightEntry{
				{"ground", 1.0}, {"steak", 0.75}, {"roast", 3.0},
			}},
			{Category: "pork", Items: []WeightEntry{
				{"chop", 0.5}, {"tenderloin", 1.0}, {"shoulder", 3.0},
			}},
			{Category: "vegetables", Items: []WeightEntry{
				{"onion", 0.5}, {"potato", 0.375}, {"carrot", 0.25}, {"squash", 1.5},
				{"tomato", 0.375}, {"pepper", 0.25}, {"garlic", 0.0625},
			}},
			{Category: "fruits", Items: []WeightEntry{
				{"apple", 0.375}, {"orange", 0.375}, {"lemon", 0.25}, {"banana", 0.375},
			}},
		},
		DefaultWeight: 0.25,
		MinPounds:     0.25,
		MaxPounds:     10.0,
	}
}

// LoadTables 讀取 YAML 覆寫檔；檔案中未出現的區塊沿用內建值
func LoadTables(path string) (*Tables, error) {
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file %q: %w", path, err)
	}

	var override Tables
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse tables file %q: %w", path, err)
	}

	tables.merge(&override)
	if err := tables.canonicalize(); err != nil {
		return nil, fmt.Errorf("invalid tables file %q: %w", path, err)
	}
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tables file %q: %w", path, err)
	}
	return tables, nil
}

func (t *Tables) merge(o *Tables) {
	if len(o.MealKeywords) > 0 {
		t.MealKeywords = o.MealKeywords
	}
	if len(o.CookingStyles) > 0 {
		t.CookingStyles = o.CookingStyles
	}
	if len(o.CookingModifiers) > 0 {
		t.CookingModifiers = o.CookingModifiers
	}
	if len(o.Units) > 0 {
		t.Units = o.Units
	}
	if len(o.Categories) > 0 {
		t.Categories = o.Categories
	}
	if o.DefaultWeight > 0 {
		t.DefaultWeight = o.DefaultWeight
	}
	if o.MinPounds > 0 {
		t.MinPounds = o.MinPounds
	}
	if o.MaxPounds > 0 {
		t.MaxPounds = o.MaxPounds
	}
}

// canonicalize 將餐別標籤轉為列舉值，並把所有關鍵字、烹調方式與單位轉為小寫
// 比對時只會把輸入文字轉小寫
func (t *Tables) canonicalize() error {
	for i, g := range t.MealKeywords {
		mt, err := ParseMealType(g.Label)
		if err != nil || mt == MealAny {
			return fmt.Errorf("meal keyword group has invalid label %q", g.Label)
		}
		t.MealKeywords[i].Label = string(mt)
		t.MealKeywords[i].Keywords = lowerAll(g.Keywords)
	}
	for i, g := range t.CookingStyles {
		t.CookingStyles[i].Label = lower(g.Label)
		t.CookingStyles[i].Keywords = lowerAll(g.Keywords)
	}
	for i, m := range t.CookingModifiers {
		t.CookingModifiers[i].Style = lower(m.Style)
	}
	for i, u := range t.Units {
		t.Units[i].Unit = lower(u.Unit)
		t.Units[i].Aliases = lowerAll(u.Aliases)
	}
	for i, c := range t.Categories {
		t.Categories[i].Category = lower(c.Category)
		for j, item := range c.Items {
			t.Categories[i].Items[j].Keyword = lower(item.Keyword)
		}
	}
	return nil
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func lowerAll(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = lower(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate 檢查表格內容
func (t *Tables) Validate() error {
	if t.MinPounds > t.MaxPounds {
		return fmt.Errorf("min_pounds %.2f exceeds max_pounds %.2f", t.MinPounds, t.MaxPounds)
	}
	for _, g := range t.MealKeywords {
		if mt, err := ParseMealType(g.Label); err != nil || mt == MealAny || string(mt) != g.Label {
			return fmt.Errorf("meal keyword group has invalid label %q", g.Label)
		}
	}
	for _, u := range t.Units {
		if u.Unit == "" || u.Pounds <= 0 {
			return fmt.Errorf("unit %q must have a positive conversion", u.Unit)
		}
	}
	for _, m := range t.CookingModifiers {
		if m.Factor <= 0 {
			return fmt.Errorf("cooking modifier %q must be positive", m.Style)
		}
	}
	return nil
}

// modifierFor 查詢烹調方式係數，未列出時回傳 1.0
func (t *Tables) modifierFor(style string) (float64, bool) {
	for _, m := range t.CookingModifiers {
		if m.Style == style {
			return m.Factor, true
		}
	}
	return 1.0, false
}

// clamp 將重量限制在 [MinPounds, MaxPounds]
func (t *Tables) clamp(v float64) float64 {
	if v < t.MinPounds {
		return t.MinPounds
	}
	if v > t.MaxPounds {
		return t.MaxPounds
	}
	return v
}

package recipe

import (
	"fmt"
	"strconv"
	"strings"
)

// MealType 餐別
type MealType string

const (
	MealBreakfast MealType = "BREAKFAST"
	MealLunch     MealType = "LUNCH"
	MealDinner    MealType = "DINNER"
	MealAny       MealType = "ANY"
)

// MealTypes 所有合法餐別
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealAny}

// ParseMealType 解析餐別字串（不分大小寫），空字串視為 ANY
func ParseMealType(s string) (MealType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return MealAny, nil
	}
	for _, mt := range MealTypes {
		if string(mt) == s {
			return mt, nil
		}
	}
	return MealAny, fmt.Errorf("unknown meal type %q", s)
}

// ParseMealTypeOrAny 解析餐別，無法辨識時回傳 ANY
func ParseMealTypeOrAny(s string) MealType {
	mt, err := ParseMealType(s)
	if err != nil {
		return MealAny
	}
	return mt
}

// Accepts 判斷此餐別的查詢是否接受某道食譜
func (m MealType) Accepts(recipeType MealType) bool {
	if m == "" || m == MealAny {
		return true
	}
	return recipeType == m || recipeType == MealAny
}

func (m MealType) String() string {
	return string(m)
}

// Recipe 食譜
// Score 與 EstimatedPounds 只對最近一次查詢有意義
type Recipe struct {
	ID                   string   `json:"recipeIndex"`
	Title                string   `json:"title"`
	Instructions         string   `json:"instructions"`
	RawIngredients       string   `json:"ingredients,omitempty"`
	Ingredients          []string `json:"cleanedIngredients"`
	MealType             MealType `json:"mealType"`
	CookingStyle         string   `json:"cookingStyle,omitempty"`
	EstimatedTimeMinutes int      `json:"estimatedTimeMinutes,omitempty"`
	ImageName            string   `json:"imageName,omitempty"`
	Score                float64  `json:"score"`
	EstimatedPounds      string   `json:"estimatedPounds"`
}

// Pounds 回傳估計重量（磅）
func (r *Recipe) Pounds() float64 {
	v, err := strconv.ParseFloat(r.EstimatedPounds, 64)
	if err != nil {
		return 0
	}
	return v
}

// Eligible 食材清單非空才可參與比對
func (r *Recipe) Eligible() bool {
	return len(r.Ingredients) > 0
}

// formatPounds 以兩位小數格式化重量
func formatPounds(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// MatchStrategy 配對策略
type MatchStrategy string

const (
	StrategyDirect MatchStrategy = "direct"
	StrategyWord   MatchStrategy = "word"
)

// MatchedPair 一組配對成功的食材
type MatchedPair struct {
	User     string        `json:"user"`
	Recipe   string        `json:"recipe"`
	Strategy MatchStrategy `json:"strategy"`
}

// MatchResult 食材配對結果
type MatchResult struct {
	Pairs []MatchedPair
}

// Count 配對數量
func (m MatchResult) Count() int {
	return len(m.Pairs)
}

// MatchedUser 配對成功的使用者食材
func (m MatchResult) MatchedUser() []string {
	out := make([]string, len(m.Pairs))
	for i, p := range m.Pairs {
		out[i] = p.User
	}
	return out
}

// MatchedRecipe 被消耗的食譜食材（依消耗順序）
func (m MatchResult) MatchedRecipe() []string {
	out := make([]string, len(m.Pairs))
	for i, p := range m.Pairs {
		out[i] = p.Recipe
	}
	return out
}

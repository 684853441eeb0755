package recipe

import "strings"

// Classifier 依標題關鍵字判斷餐別與烹調方式
type Classifier struct {
	meals  []KeywordGroup
	styles []KeywordGroup
}

// NewClassifier 創建分類器
func NewClassifier(tables *Tables) *Classifier {
	return &Classifier{
		meals:  tables.MealKeywords,
		styles: tables.CookingStyles,
	}
}

// Classify 依序比對早餐、午餐、晚餐關鍵字，第一個命中的群組勝出，皆未命中則為 ANY
func (c *Classifier) Classify(title string) MealType {
	if label, ok := firstHit(c.meals, title); ok {
		return MealType(label)
	}
	return MealAny
}

// CookingStyle 判斷標題所屬的烹調方式，未命中回傳空字串
func (c *Classifier) CookingStyle(title string) string {
	label, _ := firstHit(c.styles, title)
	return label
}

func firstHit(groups []KeywordGroup, text string) (string, bool) {
	text = strings.ToLower(text)
	for _, g := range groups {
		for _, kw := range g.Keywords {
			if strings.Contains(text, kw) {
				return g.Label, true
			}
		}
	}
	return "", false
}

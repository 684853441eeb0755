package recipe

import "strings"

const (
	matchWeight    = 0.7
	coverageWeight = 0.3
)

// Scorer 結合配對率、覆蓋率與烹調方式係數計算排名分數
type Scorer struct {
	tables    *Tables
	estimator *WeightEstimator
}

// NewScorer 創建評分器
func NewScorer(tables *Tables, estimator *WeightEstimator) *Scorer {
	return &Scorer{tables: tables, estimator: estimator}
}

// Score 計算分數並寫入食譜的 Score 與 EstimatedPounds
// 沒有任何配對時分數為 0，EstimatedPounds 保持不變
func (s *Scorer) Score(user []string, r *Recipe) float64 {
	r.Score = 0
	if !r.Eligible() || len(user) == 0 {
		return 0
	}

	m := Match(user, r.Ingredients)
	if m.Count() == 0 {
		return 0
	}

	matchRatio := float64(m.Count()) / float64(len(user))
	coverageRatio := float64(m.Count()) / float64(len(r.Ingredients))

	weight := s.estimator.Total(m.MatchedRecipe()) * s.Modifier(r)
	r.EstimatedPounds = formatPounds(s.tables.clamp(weight))

	r.Score = matchWeight*matchRatio + coverageWeight*coverageRatio
	return r.Score
}

// Modifier 烹調方式係數：先看標題推得的烹調方式，再看餐別名稱，皆未列出則為 1.0
func (s *Scorer) Modifier(r *Recipe) float64 {
	if r.CookingStyle != "" {
		if f, ok := s.tables.modifierFor(r.CookingStyle); ok {
			return f
		}
	}
	f, _ := s.tables.modifierFor(strings.ToLower(string(r.MealType)))
	return f
}

package recipe

import (
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"leftover-chef/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	opMatch        = "match"
	opAlternatives = "alternatives"
	opAlternative  = "alternative"
)

// Stats 輪替狀態快照
type Stats struct {
	CorpusSize     int     `json:"corpusSize"`
	Served         int     `json:"served"`
	Resets         int     `json:"resets"`
	LastServed     string  `json:"lastServed,omitempty"`
	TotalFoodSaved float64 `json:"totalFoodSaved"`
}

// Selector 食譜選擇器
// 持有唯讀語料、已供應 ID 集合、最近一次供應的 ID 與累計節省重量；
// 每個操作從篩選到累加都在同一把鎖內完成
type Selector struct {
	mu         sync.Mutex
	engine     *Engine
	corpus     *Corpus
	served     map[string]struct{}
	lastServed string
	totalSaved float64
	resets     int
}

// NewSelector 以指定語料建立選擇器
func NewSelector(engine *Engine, corpus *Corpus) *Selector {
	if engine == nil {
		engine = NewEngine(nil)
	}
	return &Selector{
		engine: engine,
		corpus: corpus,
		served: make(map[string]struct{}),
	}
}

// Match 挑出分數最高且尚未供應的食譜，標記為已供應並累加節省重量
// 沒有候選時做一次輪替重置（保留最近一次供應的 ID）再重試
func (s *Selector) Match(ingredients []string, mealType MealType) (result *Recipe, err error) {
	start := time.Now()
	defer func() { s.observe(opMatch, start, result, err) }()

	user, err := s.prepare(ingredients)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pool := s.rank(user, mealType, s.isServed)
	if len(pool) == 0 {
		s.rotate(mealType, true)
		pool = s.rank(user, mealType, s.isServed)
	}
	if len(pool) == 0 {
		return nil, common.ErrNoMatchFound
	}
	return s.serve(pool[0]), nil
}

// Alternatives 依分數回傳前 limit 道食譜，不改變輪替狀態
func (s *Selector) Alternatives(ingredients []string, mealType MealType, limit int) (result []Recipe, err error) {
	start := time.Now()
	defer func() {
		var top *Recipe
		if len(result) > 0 {
			top = &result[0]
		}
		s.observe(opAlternatives, start, top, err)
	}()

	if limit < 0 {
		return nil, common.ErrInvalidInput.WithMessage("limit 不可為負數")
	}
	user, err := s.prepare(ingredients)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pool := s.rank(user, mealType, nil)
	if limit < len(pool) {
		pool = pool[:limit]
	}
	out := make([]Recipe, len(pool))
	for i, r := range pool {
		out[i] = cloneRecipe(r)
	}
	return out, nil
}

// AlternativeRecipe 與 Match 相同，但即使經過輪替重置也不會回傳最近一次供應的食譜
func (s *Selector) AlternativeRecipe(ingredients []string) (result *Recipe, err error) {
	start := time.Now()
	defer func() { s.observe(opAlternative, start, result, err) }()

	user, err := s.prepare(ingredients)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	skip := func(id string) bool {
		return id == s.lastServed || s.isServed(id)
	}
	pool := s.rank(user, MealAny, skip)
	if len(pool) == 0 {
		s.rotate(MealAny, false)
		pool = s.rank(user, MealAny, skip)
	}
	if len(pool) == 0 {
		return nil, common.ErrNoMatchFound
	}
	return s.serve(pool[0]), nil
}

// RecipesByMealType 回傳指定餐別或 ANY 的食譜；ANY 代表不篩選
func (s *Selector) RecipesByMealType(mealType MealType) []Recipe {
	out := make([]Recipe, 0)
	if s.corpus == nil {
		return out
	}
	for _, r := range s.corpus.recipes {
		if mealType.Accepts(r.MealType) {
			out = append(out, cloneRecipe(r))
		}
	}
	return out
}

// TotalFoodSaved 累計節省重量（磅）
func (s *Selector) TotalFoodSaved() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalSaved
}

// Reset 清除輪替狀態，累計節省重量保留
func (s *Selector) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.served = make(map[string]struct{})
	s.lastServed = ""
	s.resets++
	rotationResets.Inc()
}

// Stats 回傳輪替狀態快照
func (s *Selector) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		CorpusSize:     s.corpus.Len(),
		Served:         len(s.served),
		Resets:         s.resets,
		LastServed:     s.lastServed,
		TotalFoodSaved: s.totalSaved,
	}
}

// Recipe 依 ID 取得食譜，不影響輪替
func (s *Selector) Recipe(id string) (Recipe, bool) {
	r, ok := s.corpus.Get(id)
	if !ok {
		return Recipe{}, false
	}
	return cloneRecipe(r), true
}

// prepare 驗證並正規化查詢食材
func (s *Selector) prepare(ingredients []string) ([]string, error) {
	user := Normalize(ingredients)
	if len(user) == 0 {
		return nil, common.ErrInvalidInput
	}
	if s.corpus.Len() == 0 {
		return nil, common.ErrNoRecipesAvailable
	}
	return user, nil
}

// rank 篩選、評分並依分數穩定排序；同分時維持語料順序
// 呼叫者必須持有鎖
func (s *Selector) rank(user []string, mealType MealType, skip func(id string) bool) []Recipe {
	pool := make([]Recipe, 0, len(s.corpus.recipes))
	for _, r := range s.corpus.recipes {
		if !r.Eligible() || !mealType.Accepts(r.MealType) {
			continue
		}
		if skip != nil && skip(r.ID) {
			continue
		}
		candidate := r
		s.engine.Scorer.Score(user, &candidate)
		pool = append(pool, candidate)
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})
	return pool
}

// rotate 清除符合餐別篩選的已供應 ID，並保留最近一次供應的 ID
// allowFull 時若最近一次供應的是篩選範圍內唯一的食譜，則完全清除
// 呼叫者必須持有鎖
func (s *Selector) rotate(mealType MealType, allowFull bool) {
	others := 0
	for _, r := range s.corpus.recipes {
		if !r.Eligible() || !mealType.Accepts(r.MealType) {
			continue
		}
		if r.ID != s.lastServed {
			others++
		}
		delete(s.served, r.ID)
	}

	if s.lastServed != "" && (others > 0 || !allowFull) {
		if _, inCorpus := s.corpus.index[s.lastServed]; inCorpus {
			s.served[s.lastServed] = struct{}{}
		}
	}

	s.resets++
	rotationResets.Inc()
	common.LogDebug("Rotation reset",
		zap.String("meal_type", string(mealType)),
		zap.Int("retained", len(s.served)),
	)
}

// serve 標記已供應並累加節省重量，呼叫者必須持有鎖
func (s *Selector) serve(r Recipe) *Recipe {
	s.served[r.ID] = struct{}{}
	s.lastServed = r.ID
	s.totalSaved += r.Pounds()
	foodSavedPounds.Set(s.totalSaved)

	out := cloneRecipe(r)
	return &out
}

func (s *Selector) isServed(id string) bool {
	_, ok := s.served[id]
	return ok
}

func (s *Selector) observe(op string, start time.Time, r *Recipe, err error) {
	duration := time.Since(start)
	selectionDuration.WithLabelValues(op).Observe(duration.Seconds())

	outcome := "ok"
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		outcome = "invalid_input"
	case errors.Is(err, common.ErrNoRecipesAvailable):
		outcome = "no_recipes"
	case errors.Is(err, common.ErrNoMatchFound):
		outcome = "no_match"
	case err != nil:
		outcome = "error"
	}
	selectionsTotal.WithLabelValues(op, outcome).Inc()

	var id string
	var score float64
	if r != nil {
		id, score = r.ID, r.Score
	}
	common.LogSelection(op, id, score, duration, err)
}

func cloneRecipe(r Recipe) Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	return r
}

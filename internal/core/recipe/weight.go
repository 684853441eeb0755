package recipe

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// WeightEstimator 由食材文字估算重量（磅）
type WeightEstimator struct {
	pattern    *regexp.Regexp
	canonical  map[string]string
	conversion map[string]float64
	categories []CategoryWeights
	fallback   float64
}

// NewWeightEstimator 依單位表建立數量+單位的正規表示式
func NewWeightEstimator(tables *Tables) *WeightEstimator {
	e := &WeightEstimator{
		canonical:  make(map[string]string),
		conversion: make(map[string]float64),
		categories: tables.Categories,
		fallback:   tables.DefaultWeight,
	}

	tokens := make([]string, 0, len(tables.Units)*2)
	for _, u := range tables.Units {
		e.conversion[u.Unit] = u.Pounds
		e.canonical[u.Unit] = u.Unit
		tokens = append(tokens, u.Unit)
		for _, alias := range u.Aliases {
			e.canonical[alias] = u.Unit
			tokens = append(tokens, alias)
		}
	}
	// 長的單位優先，避免 "g" 搶先匹配
	sort.SliceStable(tokens, func(i, j int) bool { return len(tokens[i]) > len(tokens[j]) })
	for i, tok := range tokens {
		tokens[i] = regexp.QuoteMeta(tok)
	}

	// 帶分數、小數、整數或分數，後接單位（可加 s）並以字界結束
	e.pattern = regexp.MustCompile(`(\d+\s+\d+/\d+|\d*\.\d+|\d+(?:/\d+)?)\s*(` + strings.Join(tokens, "|") + `)s?\b`)
	return e
}

// Estimate 估算單一食材重量，解析失敗時改用類別表或預設值，不會回傳錯誤
func (e *WeightEstimator) Estimate(ingredient string) float64 {
	text := strings.ToLower(ingredient)

	if w, ok := e.fromQuantity(text); ok {
		return w
	}
	if w, ok := e.fromCategory(text); ok {
		return w
	}
	return e.fallback
}

// Total 加總多個食材的重量
func (e *WeightEstimator) Total(ingredients []string) float64 {
	total := 0.0
	for _, ing := range ingredients {
		total += e.Estimate(ing)
	}
	return total
}

func (e *WeightEstimator) fromQuantity(text string) (float64, bool) {
	m := e.pattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	qty, ok := parseQuantity(m[1])
	if !ok {
		return 0, false
	}
	unit := e.canonical[m[2]]
	factor, ok := e.conversion[unit]
	if !ok {
		factor = 1.0
	}
	return qty * factor, true
}

func (e *WeightEstimator) fromCategory(text string) (float64, bool) {
	for _, c := range e.categories {
		for _, item := range c.Items {
			if strings.Contains(text, item.Keyword) {
				return item.Pounds, true
			}
		}
	}
	return 0, false
}

// parseQuantity 解析 "2"、"1.5"、"1/4"、"1 1/2"
func parseQuantity(s string) (float64, bool) {
	fields := strings.Fields(s)
	if len(fields) == 2 {
		whole, ok := parseQuantity(fields[0])
		if !ok {
			return 0, false
		}
		frac, ok := parseQuantity(fields[1])
		if !ok {
			return 0, false
		}
		return whole + frac, true
	}

	if num, den, found := strings.Cut(s, "/"); found {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

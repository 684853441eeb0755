package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"leftover-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// IngredientList 食材清單，可由 JSON 陣列或 "['a', 'b']" 形式的字串解析
type IngredientList []string

// UnmarshalJSON 實現 json.Unmarshaler
func (l *IngredientList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("ingredient list: %w", err)
		}
		*l = items
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("ingredient list: %w", err)
	}
	*l = ParseIngredientList(s)
	return nil
}

// ParseIngredientList 解析以中括號與引號包住的清單字串，引號內的逗號不會切開項目
func ParseIngredientList(s string) []string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}

	var (
		items []string
		cur   strings.Builder
		quote rune
	)
	flush := func() {
		item := strings.TrimSpace(cur.String())
		item = strings.Trim(item, `"'`)
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
		cur.Reset()
	}

	for _, ch := range s {
		switch {
		case quote == 0 && (ch == '\'' || ch == '"') && strings.TrimSpace(cur.String()) == "":
			quote = ch
			cur.WriteRune(ch)
		case quote != 0 && ch == quote:
			quote = 0
			cur.WriteRune(ch)
		case quote == 0 && ch == ',':
			flush()
		default:
			cur.WriteRune(ch)
		}
	}
	flush()
	return items
}

// RawRecipe 尚未正規化的食譜紀錄
type RawRecipe struct {
	ID                   string
	Title                string
	Instructions         string
	RawIngredients       string
	Ingredients          IngredientList
	EstimatedTimeMinutes int
	ImageName            string
	EstimatedPounds      float64
}

// 欄位名稱同時接受清理後的 camelCase 與原始資料集的欄位
var rawFieldAliases = map[string][]string{
	"id":           {"recipeIndex", "Recipe Index", "id"},
	"title":        {"title", "Title", "name"},
	"instructions": {"instructions", "Instructions"},
	"raw":          {"ingredients", "Ingredients"},
	"cleaned":      {"cleanedIngredients", "Cleaned_Ingredients"},
	"minutes":      {"estimatedTimeMinutes", "Estimated_Time_Minutes"},
	"image":        {"imageName", "Image_Name"},
	"pounds":       {"estimatedPounds", "Estimated_Pounds"},
}

// UnmarshalJSON 實現 json.Unmarshaler
func (r *RawRecipe) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	pick := func(key string) json.RawMessage {
		for _, name := range rawFieldAliases[key] {
			if v, ok := fields[name]; ok && string(v) != "null" {
				return v
			}
		}
		return nil
	}

	var err error
	if r.ID, err = scalarString(pick("id")); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	if r.Title, err = scalarString(pick("title")); err != nil {
		return fmt.Errorf("title: %w", err)
	}
	if r.Instructions, err = scalarString(pick("instructions")); err != nil {
		return fmt.Errorf("instructions: %w", err)
	}
	if r.ImageName, err = scalarString(pick("image")); err != nil {
		return fmt.Errorf("imageName: %w", err)
	}

	raw := pick("raw")
	cleaned := pick("cleaned")
	if raw != nil {
		if s, err := scalarString(raw); err == nil {
			r.RawIngredients = s
		} else {
			r.RawIngredients = string(raw)
		}
	}
	list := cleaned
	if list == nil {
		list = raw
	}
	if list != nil {
		if err := r.Ingredients.UnmarshalJSON(list); err != nil {
			return err
		}
	}

	if s, err := scalarString(pick("minutes")); err == nil && s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			r.EstimatedTimeMinutes = int(v)
		}
	}
	if s, err := scalarString(pick("pounds")); err == nil && s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			r.EstimatedPounds = v
		}
	}
	return nil
}

// scalarString 將 JSON 字串或數字轉為字串
func scalarString(v json.RawMessage) (string, error) {
	if v == nil {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("expected string or number, got %s", string(v))
}

// LoadReport 語料載入結果
type LoadReport struct {
	Total   int            `json:"total"`
	Loaded  int            `json:"loaded"`
	Skipped int            `json:"skipped"`
	Reasons map[string]int `json:"reasons,omitempty"`
}

func (r *LoadReport) skip(reason string) {
	r.Skipped++
	if r.Reasons == nil {
		r.Reasons = make(map[string]int)
	}
	r.Reasons[reason]++
}

// Corpus 載入後唯讀的食譜集合
type Corpus struct {
	recipes []Recipe
	index   map[string]int
}

// Len 食譜數量
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.recipes)
}

// Get 依 ID 取得食譜副本
func (c *Corpus) Get(id string) (Recipe, bool) {
	if c == nil {
		return Recipe{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Recipe{}, false
	}
	return c.recipes[i], true
}

// Recipes 回傳所有食譜副本
func (c *Corpus) Recipes() []Recipe {
	if c == nil {
		return nil
	}
	out := make([]Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// NewCorpus 正規化原始紀錄、判斷餐別；無效或重複的紀錄會被略過並計數
// engine 為 nil 時使用內建表格
func NewCorpus(engine *Engine, raws []RawRecipe) (*Corpus, LoadReport) {
	if engine == nil {
		engine = NewEngine(nil)
	}
	report := LoadReport{Total: len(raws)}
	c := &Corpus{
		recipes: make([]Recipe, 0, len(raws)),
		index:   make(map[string]int, len(raws)),
	}
	for _, raw := range raws {
		c.add(engine, raw, &report)
	}
	report.Loaded = len(c.recipes)
	return c, report
}

func (c *Corpus) add(engine *Engine, raw RawRecipe, report *LoadReport) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		report.skip("missing_title")
		return
	}
	ingredients := Normalize(raw.Ingredients)
	if len(ingredients) == 0 {
		report.skip("empty_ingredients")
		return
	}

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		id = common.GenerateUUID()
	}
	if _, dup := c.index[id]; dup {
		report.skip("duplicate_id")
		return
	}

	seed := raw.EstimatedPounds
	if seed <= 0 {
		seed = engine.Tables.MinPounds
	}

	c.index[id] = len(c.recipes)
	c.recipes = append(c.recipes, Recipe{
		ID:                   id,
		Title:                title,
		Instructions:         raw.Instructions,
		RawIngredients:       raw.RawIngredients,
		Ingredients:          ingredients,
		MealType:             engine.Classifier.Classify(title),
		CookingStyle:         engine.Classifier.CookingStyle(title),
		EstimatedTimeMinutes: raw.EstimatedTimeMinutes,
		ImageName:            raw.ImageName,
		EstimatedPounds:      formatPounds(engine.Tables.clamp(seed)),
	})
}

// LoadCorpus 讀取 JSON 語料（陣列或 {"recipes": [...]}），逐筆解析，單筆失敗不影響其他紀錄
func LoadCorpus(engine *Engine, r io.Reader) (*Corpus, LoadReport, error) {
	if engine == nil {
		engine = NewEngine(nil)
	}
	var top json.RawMessage
	if err := common.DecodeJSON(r, &top); err != nil {
		return nil, LoadReport{}, fmt.Errorf("failed to decode corpus: %w", err)
	}

	records, err := splitRecords(top)
	if err != nil {
		return nil, LoadReport{}, err
	}

	report := LoadReport{Total: len(records)}
	c := &Corpus{
		recipes: make([]Recipe, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for i, rec := range records {
		var raw RawRecipe
		if err := json.Unmarshal(rec, &raw); err != nil {
			common.LogDebug("Skipping malformed recipe record",
				zap.Int("position", i),
				zap.Error(err),
			)
			report.skip("malformed")
			continue
		}
		c.add(engine, raw, &report)
	}
	report.Loaded = len(c.recipes)
	return c, report, nil
}

func splitRecords(top json.RawMessage) ([]json.RawMessage, error) {
	top = bytes.TrimSpace(top)
	if len(top) == 0 {
		return nil, fmt.Errorf("empty corpus document")
	}

	var records []json.RawMessage
	switch top[0] {
	case '[':
		if err := json.Unmarshal(top, &records); err != nil {
			return nil, fmt.Errorf("failed to decode corpus array: %w", err)
		}
	case '{':
		var wrapper struct {
			Recipes []json.RawMessage `json:"recipes"`
		}
		if err := json.Unmarshal(top, &wrapper); err != nil {
			return nil, fmt.Errorf("failed to decode corpus object: %w", err)
		}
		records = wrapper.Recipes
	default:
		return nil, fmt.Errorf("corpus must be a JSON array or an object with a \"recipes\" key")
	}
	return records, nil
}

package recipe

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"leftover-chef/internal/core/cache"
	"leftover-chef/internal/pkg/common"

	"go.uber.org/zap"
)

const alternativesCachePrefix = "alternatives"

// Service 食譜服務，包裝選擇器並快取不影響輪替狀態的查詢
type Service struct {
	selector *Selector
	cache    cache.Store
}

// NewService 創建新的食譜服務；store 可為 nil
func NewService(selector *Selector, store cache.Store) *Service {
	return &Service{
		selector: selector,
		cache:    store,
	}
}

// Selector 回傳底層選擇器
func (s *Service) Selector() *Selector {
	return s.selector
}

// Match 推薦一道食譜
func (s *Service) Match(ctx context.Context, ingredients []string, mealType MealType) (*Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.selector.Match(ingredients, mealType)
}

// AlternativeRecipe 推薦一道不同於上一次的食譜
func (s *Service) AlternativeRecipe(ctx context.Context, ingredients []string) (*Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.selector.AlternativeRecipe(ingredients)
}

// Alternatives 回傳排名前 limit 的食譜；結果只取決於輸入，因此可以快取
func (s *Service) Alternatives(ctx context.Context, ingredients []string, mealType MealType, limit int) ([]Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := s.getCacheKey(Normalize(ingredients), mealType, limit)
	if cached, ok := s.getFromCache(ctx, key); ok {
		return cached, nil
	}

	recipes, err := s.selector.Alternatives(ingredients, mealType, limit)
	if err != nil {
		return nil, err
	}
	s.setToCache(ctx, key, recipes)
	return recipes, nil
}

// RecipesByMealType 依餐別列出食譜
func (s *Service) RecipesByMealType(mealType MealType) []Recipe {
	return s.selector.RecipesByMealType(mealType)
}

// Recipe 依 ID 取得食譜
func (s *Service) Recipe(id string) (Recipe, error) {
	r, ok := s.selector.Recipe(strings.TrimSpace(id))
	if !ok {
		return Recipe{}, common.ErrNotFound.WithMessage("recipe not found")
	}
	return r, nil
}

// TotalFoodSaved 累計節省重量
func (s *Service) TotalFoodSaved() float64 {
	return s.selector.TotalFoodSaved()
}

// ResetRotation 清除輪替狀態
func (s *Service) ResetRotation() {
	s.selector.Reset()
	common.LogInfo("Rotation state reset")
}

// Stats 輪替狀態
func (s *Service) Stats() Stats {
	return s.selector.Stats()
}

// getCacheKey 生成緩存鍵
func (s *Service) getCacheKey(ingredients []string, mealType MealType, limit int) string {
	parts := append([]string{string(mealType), strconv.Itoa(limit)}, ingredients...)
	return alternativesCachePrefix + ":" + common.HashKey(parts...)
}

// getFromCache 從緩存獲取數據
func (s *Service) getFromCache(ctx context.Context, key string) ([]Recipe, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("Failed to read alternatives cache", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var recipes []Recipe
	if err := common.ParseJSON(data, &recipes); err != nil {
		common.LogWarn("Discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return recipes, true
}

// setToCache 將數據存入緩存，失敗只記錄
func (s *Service) setToCache(ctx context.Context, key string, recipes []Recipe) {
	if s.cache == nil {
		return
	}
	data, err := common.ToJSON(recipes)
	if err != nil {
		common.LogWarn("Failed to encode alternatives", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		common.LogWarn("Failed to write alternatives cache", zap.String("key", key), zap.Error(err))
	}
}

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	recipeHandler "leftover-chef/internal/api/handlers/recipe"
	"leftover-chef/internal/core/ingredient"
	"leftover-chef/internal/core/recipe"
	"leftover-chef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

// APIError 服務端回傳的錯誤
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("leftover-chef: HTTP %d", e.Status)
	}
	return fmt.Sprintf("leftover-chef: %s (%d): %s", e.Code, e.Status, e.Message)
}

// FoodSaved 節省重量
type FoodSaved struct {
	Total     float64 `json:"totalFoodSaved"`
	FoodSaved float64 `json:"foodSaved"`
	Unit      string  `json:"unit"`
}

// CategorizeResult 食材分類結果
type CategorizeResult struct {
	Ingredients []ingredient.Categorized         `json:"ingredients"`
	Groups      map[ingredient.Category][]string `json:"groups"`
}

// Client leftover-chef API 客戶端
type Client struct {
	client *resty.Client
}

// New 創建客戶端
func New(baseURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// 只重試不改變輪替狀態的 GET
			if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
				return false
			}
			return err != nil || r.StatusCode() >= http.StatusBadGateway
		})

	return &Client{client: client}
}

// Match 依剩餘食材取得一道推薦食譜
func (c *Client) Match(ctx context.Context, ingredients []string, mealType, userID string) (*recipeHandler.MatchResponse, error) {
	var result recipeHandler.MatchResponse
	err := c.post(ctx, "/recipes", recipeHandler.MatchRequest{
		Ingredients: ingredients,
		MealType:    mealType,
		UserID:      userID,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Alternative 取得一道不同於上一次的食譜
func (c *Client) Alternative(ctx context.Context, ingredients []string, userID string) (*recipeHandler.MatchResponse, error) {
	var result recipeHandler.MatchResponse
	err := c.post(ctx, "/recipes/alternative", recipeHandler.AlternativeRequest{
		Ingredients: ingredients,
		UserID:      userID,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Alternatives 取得排名前 limit 的食譜
func (c *Client) Alternatives(ctx context.Context, ingredients []string, mealType string, limit int) ([]recipe.Recipe, error) {
	var result recipeHandler.AlternativesResponse
	err := c.post(ctx, "/recipes/alternatives", recipeHandler.AlternativesRequest{
		Ingredients: ingredients,
		MealType:    mealType,
		Limit:       &limit,
	}, &result)
	if err != nil {
		return nil, err
	}
	return result.Recipes, nil
}

// ByMealType 列出指定餐別的食譜
func (c *Client) ByMealType(ctx context.Context, mealType string) ([]recipe.Recipe, error) {
	var result recipeHandler.AlternativesResponse
	if err := c.get(ctx, "/recipes/mealtype/"+url.PathEscape(mealType), &result); err != nil {
		return nil, err
	}
	return result.Recipes, nil
}

// FoodSaved 全部使用者累計節省重量
func (c *Client) FoodSaved(ctx context.Context) (float64, error) {
	var result FoodSaved
	if err := c.get(ctx, "/recipes/saved", &result); err != nil {
		return 0, err
	}
	return result.Total, nil
}

// UserFoodSaved 指定使用者累計節省重量
func (c *Client) UserFoodSaved(ctx context.Context, userID string) (float64, error) {
	var result FoodSaved
	if err := c.get(ctx, "/users/"+url.PathEscape(userID)+"/saved", &result); err != nil {
		return 0, err
	}
	return result.FoodSaved, nil
}

// Reset 清除輪替狀態
func (c *Client) Reset(ctx context.Context) (*recipe.Stats, error) {
	var result recipe.Stats
	if err := c.post(ctx, "/recipes/rotation/reset", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats 輪替狀態
func (c *Client) Stats(ctx context.Context) (*recipe.Stats, error) {
	var result recipe.Stats
	if err := c.get(ctx, "/recipes/stats", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Categorize 將食材分類
func (c *Client) Categorize(ctx context.Context, ingredients []string) (*CategorizeResult, error) {
	var result CategorizeResult
	err := c.post(ctx, "/ingredients/categorize", map[string][]string{"ingredients": ingredients}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(out).
		SetError(&common.ErrorResponse{}).
		Get(apiPrefix + path)
	return c.check(path, resp, err)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	req := c.client.R().
		SetContext(ctx).
		SetResult(out).
		SetError(&common.ErrorResponse{})
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(apiPrefix + path)
	return c.check(path, resp, err)
}

// check 將傳輸錯誤與非 2xx 回應轉為 error
func (c *Client) check(path string, resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode()}
	if e, ok := resp.Error().(*common.ErrorResponse); ok && e != nil {
		apiErr.Code = e.Code
		apiErr.Message = e.Message
	}
	common.LogDebug("API request failed",
		zap.String("path", path),
		zap.Int("status", apiErr.Status),
		zap.String("code", apiErr.Code),
	)
	return apiErr
}

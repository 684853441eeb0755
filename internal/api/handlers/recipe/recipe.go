package recipe

import (
	"net/http"

	"leftover-chef/internal/api/handlers"
	"leftover-chef/internal/core/meallog"
	recipeService "leftover-chef/internal/core/recipe"
	"leftover-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 分數低於此值時回應會標記為 best effort
	BestEffortThreshold = 0.3
	defaultAlternatives = 5
	maxAlternatives     = 50
)

// MatchRequest 推薦食譜請求
type MatchRequest struct {
	Ingredients []string `json:"ingredients"`
	MealType    string   `json:"mealType,omitempty"`
	UserID      string   `json:"userId,omitempty"`
}

// MatchResponse 推薦結果
type MatchResponse struct {
	Recipe        *recipeService.Recipe `json:"recipe"`
	BestEffort    bool                  `json:"bestEffort"`
	MealLogQueued bool                  `json:"mealLogQueued,omitempty"`
}

// AlternativesRequest 候選清單請求
type AlternativesRequest struct {
	Ingredients []string `json:"ingredients"`
	MealType    string   `json:"mealType,omitempty"`
	Limit       *int     `json:"limit,omitempty"`
}

// AlternativesResponse 候選清單
type AlternativesResponse struct {
	Recipes []recipeService.Recipe `json:"recipes"`
	Count   int                    `json:"count"`
}

// AlternativeRequest 換一道食譜請求
type AlternativeRequest struct {
	Ingredients []string `json:"ingredients"`
	UserID      string   `json:"userId,omitempty"`
}

// MealLogRecorder 非同步寫入餐點紀錄
type MealLogRecorder interface {
	Record(entry meallog.Entry) error
}

// Handler 食譜處理程序
type Handler struct {
	service  *recipeService.Service
	recorder MealLogRecorder
	debug    bool
}

// NewHandler 創建新的食譜處理程序；recorder 可為 nil
func NewHandler(service *recipeService.Service, recorder MealLogRecorder, debug bool) *Handler {
	return &Handler{
		service:  service,
		recorder: recorder,
		debug:    debug,
	}
}

// HandleMatch 依剩餘食材推薦一道食譜
func (h *Handler) HandleMatch(c *gin.Context) {
	var req MatchRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	// 無法辨識的餐別視為 ANY
	mealType := recipeService.ParseMealTypeOrAny(req.MealType)

	r, err := h.service.Match(c.Request.Context(), req.Ingredients, mealType)
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	resp := MatchResponse{
		Recipe:     r,
		BestEffort: r.Score < BestEffortThreshold,
	}
	resp.MealLogQueued = h.recordMeal(req.UserID, req.Ingredients, r)

	c.JSON(http.StatusOK, resp)
}

// HandleAlternative 推薦一道不同於上一次的食譜
func (h *Handler) HandleAlternative(c *gin.Context) {
	var req AlternativeRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	r, err := h.service.AlternativeRecipe(c.Request.Context(), req.Ingredients)
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	resp := MatchResponse{
		Recipe:     r,
		BestEffort: r.Score < BestEffortThreshold,
	}
	resp.MealLogQueued = h.recordMeal(req.UserID, req.Ingredients, r)

	c.JSON(http.StatusOK, resp)
}

// HandleAlternatives 回傳依分數排序的候選食譜，不影響輪替
func (h *Handler) HandleAlternatives(c *gin.Context) {
	var req AlternativesRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	// 無法辨識的餐別視為 ANY
	mealType := recipeService.ParseMealTypeOrAny(req.MealType)

	limit := defaultAlternatives
	if req.Limit != nil {
		limit = *req.Limit
	}
	if limit > maxAlternatives {
		limit = maxAlternatives
	}

	recipes, err := h.service.Alternatives(c.Request.Context(), req.Ingredients, mealType, limit)
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, AlternativesResponse{Recipes: recipes, Count: len(recipes)})
}

// HandleByMealType 列出指定餐別可用的食譜
func (h *Handler) HandleByMealType(c *gin.Context) {
	mealType, err := recipeService.ParseMealType(c.Param("mealType"))
	if err != nil {
		handlers.RespondError(c, common.ErrInvalidInput.WithMessage(err.Error()), h.debug)
		return
	}

	recipes := h.service.RecipesByMealType(mealType)
	c.JSON(http.StatusOK, AlternativesResponse{Recipes: recipes, Count: len(recipes)})
}

// HandleGetRecipe 依 ID 取得單一食譜
func (h *Handler) HandleGetRecipe(c *gin.Context) {
	r, err := h.service.Recipe(c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, r)
}

// HandleFoodSaved 回傳累計節省重量
func (h *Handler) HandleFoodSaved(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"totalFoodSaved": h.service.TotalFoodSaved(),
		"unit":           "lb",
	})
}

// HandleResetRotation 清除輪替狀態
func (h *Handler) HandleResetRotation(c *gin.Context) {
	h.service.ResetRotation()
	c.JSON(http.StatusOK, h.service.Stats())
}

// HandleStats 輪替狀態
func (h *Handler) HandleStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Stats())
}

// recordMeal 有 userId 時將推薦結果排入餐點紀錄隊列
func (h *Handler) recordMeal(userID string, ingredients []string, r *recipeService.Recipe) bool {
	if userID == "" || h.recorder == nil {
		return false
	}

	matched := recipeService.Match(recipeService.Normalize(ingredients), r.Ingredients)
	entry := meallog.Entry{
		Username:         userID,
		RecipeID:         r.ID,
		RecipeName:       r.Title,
		MealType:         string(r.MealType),
		IngredientsSaved: matched.Count(),
		PoundsSaved:      r.Pounds(),
	}
	if err := h.recorder.Record(entry); err != nil {
		common.LogWarn("Meal log not recorded",
			zap.String("user", userID),
			zap.String("recipe_id", r.ID),
			zap.Error(err),
		)
		return false
	}
	return true
}

package meallog

import (
	"context"
	"net/http"
	"strconv"

	"leftover-chef/internal/api/handlers"
	"leftover-chef/internal/core/meallog"
	"leftover-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Store 餐點紀錄查詢
type Store interface {
	ListByUser(ctx context.Context, username string, limit int) ([]meallog.MealLog, error)
	UserFoodSaved(ctx context.Context, username string) (float64, error)
}

// Handler 餐點紀錄處理程序
type Handler struct {
	store Store
	debug bool
}

// NewHandler 創建處理程序
func NewHandler(store Store, debug bool) *Handler {
	return &Handler{store: store, debug: debug}
}

// HandleList 列出使用者的餐點紀錄，可用 ?limit= 限制筆數
func (h *Handler) HandleList(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			handlers.RespondError(c, common.NewValidationError("limit must be a non-negative integer"), h.debug)
			return
		}
		limit = n
	}

	logs, err := h.store.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":   userID,
		"mealLogs": logs,
		"count":    len(logs),
	})
}

// HandleFoodSaved 使用者累計節省重量
func (h *Handler) HandleFoodSaved(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}

	saved, err := h.store.UserFoodSaved(c.Request.Context(), userID)
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":    userID,
		"foodSaved": saved,
		"unit":      "lb",
	})
}

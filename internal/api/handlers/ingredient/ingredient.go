package ingredient

import (
	"net/http"

	"leftover-chef/internal/api/handlers"
	"leftover-chef/internal/core/ingredient"
	"leftover-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// CategorizeRequest 食材分類請求
type CategorizeRequest struct {
	Ingredients []string `json:"ingredients"`
}

// CategorizeResponse 分類結果
type CategorizeResponse struct {
	Ingredients []ingredient.Categorized         `json:"ingredients"`
	Groups      map[ingredient.Category][]string `json:"groups"`
}

// HandleCategorize 將食材分為蔬果、乳製品、香料與其他
// 可用 ?category= 只保留指定分類的食材
func HandleCategorize(c *gin.Context) {
	var filter ingredient.Category
	if raw := c.Query("category"); raw != "" {
		parsed, err := ingredient.ParseCategory(raw)
		if err != nil {
			handlers.RespondError(c, common.ErrInvalidInput.WithMessage(err.Error()), false)
			return
		}
		filter = parsed
	}

	var req CategorizeRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	items := ingredient.CategorizeAll(req.Ingredients)
	if len(items) == 0 {
		handlers.RespondError(c, common.ErrInvalidInput, false)
		return
	}
	if filter != "" {
		kept := make([]ingredient.Categorized, 0, len(items))
		for _, item := range items {
			if item.Category == filter {
				kept = append(kept, item)
			}
		}
		items = kept
	}

	c.JSON(http.StatusOK, CategorizeResponse{
		Ingredients: items,
		Groups:      ingredient.GroupByCategory(items),
	})
}

// HandleCategories 列出所有分類
func HandleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": ingredient.Categories})
}

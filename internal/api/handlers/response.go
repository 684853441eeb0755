package handlers

import (
	"errors"
	"net/http"
	"strings"

	"leftover-chef/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondError 依錯誤類型回傳對應狀態碼與統一的錯誤格式
func RespondError(c *gin.Context, err error, debug bool) {
	status := common.StatusOf(err)
	fields := []zap.Field{
		zap.String("request_id", requestid.Get(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		common.LogError("Request failed", fields...)
	} else {
		common.LogDebug("Request rejected", fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, common.ToResponse(err, debug))
}

// BindJSON 解析請求內容，失敗時回傳 400
func BindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.ErrorResponse{
				Code:    "REQUEST_TOO_LARGE",
				Message: "請求內容過大",
			})
			return false
		}
		RespondError(c, common.ErrInvalidRequest.WithErr(err), true)
		return false
	}
	return true
}

// UserID 取得並清理路徑中的使用者 ID
func UserID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("userId"))
	if id == "" {
		RespondError(c, common.ErrInvalidRequest.WithMessage("userId is required"), false)
		return "", false
	}
	return id, true
}

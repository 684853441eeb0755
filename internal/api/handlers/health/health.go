package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"leftover-chef/internal/core/queue"
	"leftover-chef/internal/core/recipe"
	"leftover-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Rotation  recipe.Stats           `json:"rotation"`
	Queue     *queue.Status          `json:"queue,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// Dependencies 健康檢查所需的元件；除 Stats 外皆可為 nil
type Dependencies struct {
	Version string
	Stats   func() recipe.Stats
	Queue   func() *queue.Status
	Cache   func() map[string]interface{}
	Ping    func(ctx context.Context) error
}

// Handler 健康檢查處理程序
type Handler struct {
	deps Dependencies
}

// NewHandler 創建處理程序
func NewHandler(deps Dependencies) *Handler {
	return &Handler{deps: deps}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.deps.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Rotation: h.deps.Stats(),
	}
	if h.deps.Queue != nil {
		response.Queue = h.deps.Queue()
	}
	if h.deps.Cache != nil {
		response.Cache = h.deps.Cache()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 語料已載入且資料庫可連線才算就緒
func (h *Handler) ReadinessCheck(c *gin.Context) {
	checks := gin.H{}
	ready := true

	if h.deps.Stats().CorpusSize == 0 {
		checks["corpus"] = "empty"
		ready = false
	} else {
		checks["corpus"] = "ok"
	}

	if h.deps.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.deps.Ping(ctx); err != nil {
			common.LogWarn("Database not ready", zap.Error(err))
			checks["database"] = "unavailable"
			ready = false
		} else {
			checks["database"] = "ok"
		}
	}

	if h.deps.Queue != nil && h.deps.Queue().Closed {
		checks["queue"] = "closed"
		ready = false
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

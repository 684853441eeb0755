package router

import (
	"context"
	"net/http"
	"time"

	"leftover-chef/internal/api/handlers/health"
	ingredientHandler "leftover-chef/internal/api/handlers/ingredient"
	meallogHandler "leftover-chef/internal/api/handlers/meallog"
	recipeHandler "leftover-chef/internal/api/handlers/recipe"
	"leftover-chef/internal/api/middleware"
	"leftover-chef/internal/core/cache"
	"leftover-chef/internal/core/queue"
	recipeService "leftover-chef/internal/core/recipe"
	"leftover-chef/internal/infrastructure/config"
	"leftover-chef/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// 單一請求的處理時限
const timeoutDuration = 30 * time.Second

// Dependencies 路由所需的服務；Cache、Queue、MealLogs、Recorder 可為 nil
type Dependencies struct {
	Recipes  *recipeService.Service
	Cache    cache.Store
	Queue    *queue.Manager
	MealLogs MealLogStore
	Recorder recipeHandler.MealLogRecorder
}

// MealLogStore 餐點紀錄儲存，供查詢與就緒檢查使用
type MealLogStore interface {
	meallogHandler.Store
	Ping(ctx context.Context) error
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	// 設置請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
		}
	})

	// 健康檢查路由
	healthDeps := health.Dependencies{
		Version: cfg.App.Version,
		Stats:   deps.Recipes.Stats,
	}
	if deps.Queue != nil {
		healthDeps.Queue = deps.Queue.Status
	}
	if deps.Cache != nil {
		healthDeps.Cache = deps.Cache.Stats
	}
	if deps.MealLogs != nil {
		healthDeps.Ping = deps.MealLogs.Ping
	}
	healthHandler := health.NewHandler(healthDeps)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window).Middleware())
	}
	dedup := middleware.NewDeduplicator(cfg.DedupWindow)

	recipes := recipeHandler.NewHandler(deps.Recipes, deps.Recorder, cfg.App.Debug)
	recipeGroup := api.Group("/recipes")
	{
		recipeGroup.POST("", recipes.HandleMatch)
		recipeGroup.POST("/alternatives", recipes.HandleAlternatives)
		recipeGroup.POST("/alternative", recipes.HandleAlternative)
		recipeGroup.GET("/mealtype/:mealType", recipes.HandleByMealType)
		recipeGroup.GET("/id/:id", recipes.HandleGetRecipe)
		recipeGroup.GET("/saved", recipes.HandleFoodSaved)
		recipeGroup.GET("/stats", recipes.HandleStats)
		recipeGroup.POST("/rotation/reset", dedup.Middleware(), recipes.HandleResetRotation)
	}

	ingredientGroup := api.Group("/ingredients")
	{
		ingredientGroup.POST("/categorize", ingredientHandler.HandleCategorize)
		ingredientGroup.GET("/categories", ingredientHandler.HandleCategories)
	}

	if deps.MealLogs != nil {
		mealLogs := meallogHandler.NewHandler(deps.MealLogs, cfg.App.Debug)
		userGroup := api.Group("/users/:userId")
		{
			userGroup.GET("/meallogs", mealLogs.HandleList)
			userGroup.GET("/saved", mealLogs.HandleFoodSaved)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ToResponse(common.ErrNotFound, false))
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", deps.Cache != nil),
		zap.Bool("meal_log_enabled", deps.MealLogs != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}

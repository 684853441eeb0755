package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leftover-chef/internal/api/router"
	"leftover-chef/internal/core/cache"
	"leftover-chef/internal/core/meallog"
	"leftover-chef/internal/core/queue"
	"leftover-chef/internal/core/recipe"
	"leftover-chef/internal/infrastructure/config"
	"leftover-chef/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("corpus_path", cfg.Corpus.Path),
		zap.String("tables_path", cfg.Corpus.TablesPath),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// 載入關鍵字表與語料
	tables, err := recipe.LoadTables(cfg.Corpus.TablesPath)
	if err != nil {
		common.LogFatal("Failed to load tables", zap.Error(err))
	}
	engine := recipe.NewEngine(tables)

	corpus, err := loadCorpus(engine, cfg.Corpus.Path)
	if err != nil {
		common.LogFatal("Failed to load recipe corpus", zap.String("path", cfg.Corpus.Path), zap.Error(err))
	}
	selector := recipe.NewSelector(engine, corpus)

	// 初始化快取；停用時為 nil
	store, err := cache.New(&cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	// 餐點紀錄資料庫與寫入隊列
	mealLogs, err := meallog.Open(&cfg.Database)
	if err != nil {
		common.LogFatal("Failed to open meal log database", zap.Error(err))
	}
	defer mealLogs.Close()

	writeQueue := queue.NewManager(&cfg.Queue)

	deps := router.Dependencies{
		Recipes:  recipe.NewService(selector, store),
		Cache:    store,
		Queue:    writeQueue,
		MealLogs: mealLogs,
		Recorder: meallog.NewRecorder(mealLogs, writeQueue),
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.SetupRouter(cfg, deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
			zap.Int("recipes", corpus.Len()),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	// 等待尚未寫入的餐點紀錄
	if err := writeQueue.Close(ctx); err != nil {
		common.LogError("Meal log queue did not drain", zap.Error(err))
	}

	common.LogInfo("Server exited", zap.Float64("total_food_saved", selector.TotalFoodSaved()))
}

// loadCorpus 讀取語料檔並記錄略過的紀錄
func loadCorpus(engine *recipe.Engine, path string) (*recipe.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	corpus, report, err := recipe.LoadCorpus(engine, f)
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.Int("total", report.Total),
		zap.Int("loaded", report.Loaded),
		zap.Int("skipped", report.Skipped),
	}
	for reason, n := range report.Reasons {
		fields = append(fields, zap.Int("skipped_"+reason, n))
	}
	if report.Loaded == 0 {
		common.LogWarn("Recipe corpus is empty; matching requests will fail", fields...)
	} else {
		common.LogInfo("Corpus loaded", fields...)
	}
	return corpus, nil
}

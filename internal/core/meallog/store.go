package meallog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"leftover-chef/internal/infrastructure/config"
	"leftover-chef/internal/pkg/common"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store 餐點紀錄與使用者累計的持久化
type Store struct {
	db *gorm.DB
}

// Open 依設定開啟資料庫並自動遷移
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	if cfg.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return NewStore(db)
}

// NewStore 以既有連線建立 Store
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&User{}, &MealLog{}); err != nil {
		return nil, fmt.Errorf("failed to migrate meal log tables: %w", err)
	}
	return &Store{db: db}, nil
}

// Save 寫入紀錄並在同一交易內累加使用者的節省重量；使用者不存在時自動建立
func (s *Store) Save(ctx context.Context, entry Entry) (*MealLog, error) {
	username := strings.TrimSpace(entry.Username)
	if username == "" {
		return nil, common.ErrInvalidRequest.WithMessage("username is required")
	}
	if entry.RecipeID == "" {
		return nil, common.ErrInvalidRequest.WithMessage("recipe id is required")
	}

	var log MealLog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := User{Username: username}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}

		if err := tx.Model(&User{}).
			Where("id = ?", user.ID).
			Update("food_saved", gorm.Expr("food_saved + ?", entry.PoundsSaved)).Error; err != nil {
			return fmt.Errorf("failed to update food saved: %w", err)
		}

		log = MealLog{
			UserID:           user.ID,
			RecipeID:         entry.RecipeID,
			RecipeName:       entry.RecipeName,
			MealType:         entry.MealType,
			IngredientsSaved: entry.IngredientsSaved,
			PoundsSaved:      entry.PoundsSaved,
		}
		if err := tx.Create(&log).Error; err != nil {
			return fmt.Errorf("failed to create meal log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// ListByUser 依時間由新到舊列出使用者的紀錄；未知使用者回傳空清單
func (s *Store) ListByUser(ctx context.Context, username string, limit int) ([]MealLog, error) {
	logs := make([]MealLog, 0)
	q := s.db.WithContext(ctx).
		Joins("JOIN users ON users.id = meal_logs.user_id").
		Where("users.username = ?", username).
		Order("meal_logs.created_at DESC").
		Order("meal_logs.id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list meal logs: %w", err)
	}
	return logs, nil
}

// GetUser 依名稱取得使用者
func (s *Store) GetUser(ctx context.Context, username string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound.WithMessage("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// UserFoodSaved 使用者累計節省重量
func (s *Store) UserFoodSaved(ctx context.Context, username string) (float64, error) {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		return 0, err
	}
	return user.FoodSaved, nil
}

// Ping 檢查資料庫連線
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 關閉資料庫連線
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package meallog

import (
	"context"

	"leftover-chef/internal/core/queue"
	"leftover-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// Recorder 透過寫入隊列非同步儲存餐點紀錄
type Recorder struct {
	store *Store
	queue *queue.Manager
}

// NewRecorder 創建紀錄器
func NewRecorder(store *Store, q *queue.Manager) *Recorder {
	return &Recorder{store: store, queue: q}
}

// Record 將紀錄排入隊列；隊列滿或已關閉時回傳錯誤
func (r *Recorder) Record(entry Entry) error {
	err := r.queue.Enqueue("meallog:"+entry.Username, func(ctx context.Context) error {
		log, err := r.store.Save(ctx, entry)
		if err != nil {
			return err
		}
		common.LogDebug("Meal log saved",
			zap.Uint("id", log.ID),
			zap.String("user", entry.Username),
			zap.String("recipe_id", entry.RecipeID),
			zap.Float64("pounds_saved", entry.PoundsSaved),
		)
		return nil
	})
	if err != nil {
		common.LogWarn("Failed to enqueue meal log",
			zap.String("user", entry.Username),
			zap.Error(err),
		)
	}
	return err
}

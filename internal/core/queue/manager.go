package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"leftover-chef/internal/infrastructure/config"
	"leftover-chef/internal/pkg/common"

	"go.uber.org/zap"
)

const jobTimeout = 10 * time.Second

// Job 背景工作
type Job func(ctx context.Context) error

// request 隊列請求
type request struct {
	name       string
	fn         Job
	enqueuedAt time.Time
}

// Status 隊列狀態
type Status struct {
	QueueLength    int  `json:"queue_length"`
	ProcessedCount int  `json:"processed_count"`
	FailedCount    int  `json:"failed_count"`
	MaxQueueSize   int  `json:"max_queue_size"`
	Workers        int  `json:"workers"`
	Closed         bool `json:"closed"`
}

// Manager 隊列管理器，以固定數量的 worker 依序執行背景寫入
type Manager struct {
	workers int
	maxSize int
	queue   chan *request

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	processed int64
	failed    int64
}

// NewManager 創建新的隊列管理器並啟動 worker
func NewManager(cfg *config.QueueConfig) *Manager {
	m := &Manager{
		workers: cfg.Workers,
		maxSize: cfg.MaxSize,
		queue:   make(chan *request, cfg.MaxSize),
	}

	for i := 0; i < m.workers; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}

	common.LogInfo("寫入隊列已啟動",
		zap.Int("workers", m.workers),
		zap.Int("max_queue_size", m.maxSize),
	)
	return m
}

// Enqueue 將工作加入隊列；隊列已滿或已關閉時立即回傳錯誤
func (m *Manager) Enqueue(name string, fn Job) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return common.ErrQueueClosed
	}

	select {
	case m.queue <- &request{name: name, fn: fn, enqueuedAt: time.Now()}:
		common.LogDebug("Job enqueued",
			zap.String("job", name),
			zap.Int("queue_length", len(m.queue)),
		)
		return nil
	default:
		common.LogWarn("Queue full, dropping job",
			zap.String("job", name),
			zap.Int("max_queue_size", m.maxSize),
		)
		return common.ErrQueueFull
	}
}

func (m *Manager) worker(id int) {
	defer m.wg.Done()

	for req := range m.queue {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		err := req.fn(ctx)
		cancel()

		if err != nil {
			atomic.AddInt64(&m.failed, 1)
			common.LogError("Job failed",
				zap.String("job", req.name),
				zap.Int("worker", id),
				zap.Error(err),
			)
			continue
		}

		atomic.AddInt64(&m.processed, 1)
		common.LogDebug("Job processed",
			zap.String("job", req.name),
			zap.Int("worker", id),
			zap.Duration("wait", time.Since(req.enqueuedAt)),
		)
	}
}

// Status 獲取隊列狀態
func (m *Manager) Status() *Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return &Status{
		QueueLength:    len(m.queue),
		ProcessedCount: int(atomic.LoadInt64(&m.processed)),
		FailedCount:    int(atomic.LoadInt64(&m.failed)),
		MaxQueueSize:   m.maxSize,
		Workers:        m.workers,
		Closed:         m.closed,
	}
}

// Close 停止接收新工作，等待已排入的工作完成或 ctx 結束
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		close(m.queue)
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		common.LogInfo("寫入隊列已關閉",
			zap.Int64("processed", atomic.LoadInt64(&m.processed)),
			zap.Int64("failed", atomic.LoadInt64(&m.failed)),
		)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

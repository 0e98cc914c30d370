package workers

import (
	"context"
	"sync"
	"time"

	"eventhire_backend/internal/events"
	"eventhire_backend/internal/logger"
	"eventhire_backend/internal/metrics"
	"eventhire_backend/internal/models"
	"eventhire_backend/internal/repositories"

	"gorm.io/gorm"
)

// OutboxWorker читает ожидающие события из outbox и публикует их.
type OutboxWorker struct {
	db         *gorm.DB
	repo       repositories.OutboxRepository
	publisher  events.Publisher
	interval   time.Duration
	batchSize  int
	maxRetries int
	wg         sync.WaitGroup
}

func NewOutboxWorker(db *gorm.DB, repo repositories.OutboxRepository, publisher events.Publisher) *OutboxWorker {
	return &OutboxWorker{
		db:         db,
		repo:       repo,
		publisher:  publisher,
		interval:   time.Second,
		batchSize:  100,
		maxRetries: 5,
	}
}

func (w *OutboxWorker) WithInterval(interval time.Duration) *OutboxWorker {
	if interval > 0 {
		w.interval = interval
	}
	return w
}

func (w *OutboxWorker) WithBatchSize(batchSize int) *OutboxWorker {
	if batchSize > 0 {
		w.batchSize = batchSize
	}
	return w
}

func (w *OutboxWorker) WithMaxRetries(maxRetries int) *OutboxWorker {
	if maxRetries > 0 {
		w.maxRetries = maxRetries
	}
	return w
}

// Start запускает цикл опроса в отдельной горутине. Wait дожидается его остановки.
func (w *OutboxWorker) Start(ctx context.Context) {
	logger.Info("Starting outbox worker",
		"interval", w.interval.String(),
		"batch_size", w.batchSize,
		"max_retries", w.maxRetries,
	)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("Outbox worker stopped")
				return
			case <-ticker.C:
				w.ProcessBatch(ctx)
			}
		}
	}()
}

func (w *OutboxWorker) Wait() {
	w.wg.Wait()
}

// ProcessBatch публикует одну пачку событий и возвращает число отправленных.
func (w *OutboxWorker) ProcessBatch(ctx context.Context) int {
	db := w.db.WithContext(ctx)

	pending, err := w.repo.FetchPending(db, w.batchSize, time.Now().UTC())
	if err != nil {
		logger.WorkerLog("outbox", "fetch_pending", err)
		return 0
	}

	sent := 0
	for i := range pending {
		event := &pending[i]
		if err := w.publisher.Publish(ctx, event.RoutingKey, event.Payload); err != nil {
			w.handleFailure(db, event, err)
			continue
		}

		if err := w.repo.MarkSent(db, event.ID); err != nil {
			logger.WorkerLog("outbox", "mark_sent", err, "event_id", event.ID)
			continue
		}
		metrics.RecordOutbox("sent")
		sent++
	}

	if len(pending) > 0 {
		logger.WorkerLog("outbox", "process_batch", nil, "fetched", len(pending), "sent", sent)
	}
	return sent
}

func (w *OutboxWorker) handleFailure(db *gorm.DB, event *models.OutboxEvent, cause error) {
	logger.WorkerLog("outbox", "publish", cause,
		"event_id", event.ID,
		"routing_key", event.RoutingKey,
		"retry_count", event.RetryCount,
	)

	if err := w.repo.MarkFailed(db, event, cause, w.maxRetries, time.Now().UTC()); err != nil {
		logger.WorkerLog("outbox", "mark_failed", err, "event_id", event.ID)
		return
	}

	if event.RetryCount+1 >= w.maxRetries {
		metrics.RecordOutbox("failed")
	} else {
		metrics.RecordOutbox("retry")
	}
}

package workers

import (
	"context"
	"sync"
	"time"

	"eventhire_backend/internal/logger"
)

// SessionPurger удаляет просроченные сессии.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type SessionWorker struct {
	purger   SessionPurger
	interval time.Duration
	wg       sync.WaitGroup
}

func NewSessionWorker(purger SessionPurger, interval time.Duration) *SessionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionWorker{purger: purger, interval: interval}
}

// Start запускает очистку просроченных сессий. Wait дожидается ее остановки.
func (w *SessionWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.purgeExpiredSessions(ctx)
	}()
}

func (w *SessionWorker) Wait() {
	w.wg.Wait()
}

func (w *SessionWorker) purgeExpiredSessions(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session worker stopped")
			return
		case <-ticker.C:
			removed, err := w.purger.PurgeExpired(ctx)
			if err != nil {
				logger.WorkerLog("session", "purge_expired", err)
			} else if removed > 0 {
				logger.Info("Purged expired sessions", "count", removed)
			}
		}
	}
}

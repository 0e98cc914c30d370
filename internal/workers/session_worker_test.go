package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingPurger struct {
	calls atomic.Int32
}

func (p *countingPurger) PurgeExpired(context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, nil
}

func TestSessionWorker_PurgesOnTick(t *testing.T) {
	purger := &countingPurger{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	NewSessionWorker(purger, 5*time.Millisecond).Start(ctx)

	assert.Eventually(t, func() bool { return purger.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

type slowPurger struct {
	started  chan struct{}
	inFlight atomic.Int32
	delay    time.Duration
}

func (p *slowPurger) PurgeExpired(context.Context) (int64, error) {
	p.inFlight.Add(1)
	defer p.inFlight.Add(-1)

	select {
	case p.started <- struct{}{}:
	default:
	}
	time.Sleep(p.delay)
	return 0, nil
}

func TestSessionWorker_WaitBlocksUntilPurgeFinishes(t *testing.T) {
	purger := &slowPurger{started: make(chan struct{}, 1), delay: 50 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())

	w := NewSessionWorker(purger, 5*time.Millisecond)
	w.Start(ctx)

	select {
	case <-purger.started:
	case <-time.After(2 * time.Second):
		t.Fatal("purge did not start")
	}

	cancel()
	w.Wait()
	assert.Zero(t, purger.inFlight.Load(), "no purge runs after Wait returns")
}

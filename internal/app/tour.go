package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/logger"
)

// Selector is the part of the scene the tour drives.
type Selector interface {
	SelectedIndex() int
	SetSelectedIndex(i int)
}

// Tour advances the selection on a ticker from its own goroutine.
type Tour struct {
	interval time.Duration
	n        int
	sel      Selector

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTour creates a stopped tour over n bodies. A non-positive interval
// falls back to two seconds when the tour is toggled on.
func NewTour(interval time.Duration, n int, sel Selector) *Tour {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Tour{interval: interval, n: n, sel: sel}
}

// Running reports whether the tour goroutine is active.
func (t *Tour) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Start launches the tour. It is a no-op when already running.
func (t *Tour) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return
	}

	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})
	go t.run(ctx, t.done)

	logger.Info("selection tour started", zap.Duration("interval", t.interval))
}

// Stop halts the tour and waits for its goroutine.
func (t *Tour) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	logger.Info("selection tour stopped")
}

// Toggle starts a stopped tour or stops a running one.
func (t *Tour) Toggle(ctx context.Context) {
	if t.Running() {
		t.Stop()
		return
	}
	t.Start(ctx)
}

func (t *Tour) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.sel.SetSelectedIndex(Cycle(t.sel.SelectedIndex(), 1, t.n))
		}
	}
}

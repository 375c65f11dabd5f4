package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCycle(t *testing.T) {
	tests := []struct {
		i, delta, n, want int
	}{
		{0, 1, 10, 1},
		{9, 1, 10, 0},
		{0, -1, 10, 9},
		{5, -1, 10, 4},
		{-3, 1, 10, 8},
		{3, 1, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Cycle(tt.i, tt.delta, tt.n), "Cycle(%d, %d, %d)", tt.i, tt.delta, tt.n)
	}
}

type selector struct {
	v atomic.Int32
}

func (s *selector) SelectedIndex() int     { return int(s.v.Load()) }
func (s *selector) SetSelectedIndex(i int) { s.v.Store(int32(i)) }

func TestTourAdvances(t *testing.T) {
	sel := &selector{}
	tour := NewTour(5*time.Millisecond, 3, sel)

	tour.Start(context.Background())
	assert.True(t, tour.Running())

	assert.Eventually(t, func() bool { return sel.SelectedIndex() != 0 }, time.Second, time.Millisecond)

	tour.Stop()
	assert.False(t, tour.Running())

	stopped := sel.SelectedIndex()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, sel.SelectedIndex())
	assert.Less(t, stopped, 3)
}

func TestTourToggleAndContext(t *testing.T) {
	sel := &selector{}
	tour := NewTour(0, 10, sel)
	assert.Equal(t, 2*time.Second, tour.interval)

	ctx, cancel := context.WithCancel(context.Background())
	tour.Toggle(ctx)
	assert.True(t, tour.Running())
	tour.Toggle(ctx)
	assert.False(t, tour.Running())

	tour.Start(ctx)
	cancel()
	// Stop still returns once the goroutine has seen the cancellation.
	tour.Stop()
	tour.Stop()
}

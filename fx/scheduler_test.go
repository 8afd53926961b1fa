package fx_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/blockblast/fx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countdown finishes after a number of ticks.
type countdown struct {
	ticks   int
	updates int
	total   float64
	then    fx.Effect
}

func (c *countdown) Update(frame *fx.Frame) bool {
	c.updates++
	c.total += frame.DeltaTime
	if c.updates < c.ticks {
		return false
	}
	if c.then != nil {
		frame.Commands.Spawn(c.then)
	}
	return true
}

func TestScheduler(t *testing.T) {
	t.Run("effects are dropped once finished", func(t *testing.T) {
		s := fx.NewScheduler()
		short := &countdown{ticks: 1}
		long := &countdown{ticks: 3}
		s.Add(short)
		s.Add(long)

		s.Once(0.1)
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, []fx.Effect{long}, s.Active())

		s.Once(0.1)
		s.Once(0.1)
		assert.Zero(t, s.Len())
		assert.Equal(t, 1, short.updates)
		assert.Equal(t, 3, long.updates)
		assert.InDelta(t, 0.3, long.total, 1e-9)
	})

	t.Run("spawned effects start next tick", func(t *testing.T) {
		s := fx.NewScheduler()
		next := &countdown{ticks: 1}
		s.Add(&countdown{ticks: 1, then: next})

		s.Once(0.1)
		assert.Zero(t, next.updates)
		assert.Equal(t, 1, s.Len())

		s.Once(0.1)
		assert.Equal(t, 1, next.updates)
		assert.Zero(t, s.Len())
	})

	t.Run("cancel", func(t *testing.T) {
		s := fx.NewScheduler()
		keep := &countdown{ticks: 5}
		drop := &countdown{ticks: 5}
		s.Add(keep)
		s.Add(drop)

		n := s.Cancel(func(e fx.Effect) bool { return e == drop })
		assert.Equal(t, 1, n)
		assert.Equal(t, []fx.Effect{keep}, s.Active())

		stats := s.GetStats()
		require.Len(t, stats.Kinds, 1)
		assert.Equal(t, 1, stats.Kinds[0].Active)
	})

	t.Run("stats per kind", func(t *testing.T) {
		s := fx.NewScheduler()
		var offset fx.Vec
		s.Add(&countdown{ticks: 2})
		s.Add(&countdown{ticks: 1})
		s.Add(fx.NewReturn(&offset, fx.Vec{X: 1}, nil))

		s.Once(0.1)
		s.Once(0.1)

		stats := s.GetStats()
		assert.Equal(t, int64(3), stats.TotalStarted)
		assert.Equal(t, int64(2), stats.TotalCompleted)
		assert.Equal(t, 1, stats.ActiveCount)
		require.Len(t, stats.Kinds, 2)

		assert.Equal(t, "countdown", stats.Kinds[0].Name)
		assert.Equal(t, int64(2), stats.Kinds[0].Started)
		assert.Equal(t, int64(3), stats.Kinds[0].Updates)
		assert.Equal(t, "Tween", stats.Kinds[1].Name)
		assert.Equal(t, 1, stats.Kinds[1].Active)
		assert.LessOrEqual(t, stats.Kinds[0].MinDuration, stats.Kinds[0].MaxDuration)
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		s := fx.NewScheduler()
		c := &countdown{ticks: 1 << 30}
		s.Add(c)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			s.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		assert.Positive(t, s.GetStats().Kinds[0].Updates)
	})
}

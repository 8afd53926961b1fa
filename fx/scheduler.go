// Package fx runs cosmetic timed effects: camera shake, pieces sliding back
// to the tray, line bursts and the staged reveal of a seeded board. Effects
// are advanced by elapsed time and dropped once finished. Nothing here
// touches game state.
package fx

import (
	"context"
	"reflect"
	"slices"
	"sync"
	"time"
)

// Effect is one running animation.
type Effect interface {
	// Update advances the effect by frame.DeltaTime seconds and reports
	// whether it has finished. It must not call the scheduler; follow-up
	// work goes through frame.Commands.
	Update(frame *Frame) bool
}

// SchedulerStats provides statistics about effect execution.
type SchedulerStats struct {
	ActiveCount    int
	TotalStarted   int64
	TotalCompleted int64
	Kinds          []KindStats
}

// KindStats provides execution statistics for one effect type.
type KindStats struct {
	Name          string
	Started       int64
	Completed     int64
	Active        int
	Updates       int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

type kindStatsInternal struct {
	name          string
	started       int64
	completed     int64
	active        int
	updates       int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

type running struct {
	effect Effect
	stats  *kindStatsInternal
}

// Scheduler owns the running effects. It is safe for concurrent use.
type Scheduler struct {
	mu     sync.Mutex
	active []running
	kinds  map[string]*kindStatsInternal
	order  []string
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		kinds: make(map[string]*kindStatsInternal),
	}
}

func kindName(e Effect) string {
	t := reflect.TypeOf(e)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Add starts an effect. It is first updated on the next tick.
func (s *Scheduler) Add(e Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := kindName(e)
	stats, ok := s.kinds[name]
	if !ok {
		stats = &kindStatsInternal{
			name:        name,
			minDuration: time.Duration(1<<63 - 1),
		}
		s.kinds[name] = stats
		s.order = append(s.order, name)
	}
	stats.started++
	stats.active++

	s.active = append(s.active, running{effect: e, stats: stats})
}

// Once advances every running effect by dt seconds and drops the finished
// ones.
func (s *Scheduler) Once(dt float64) {
	frame := newFrame(dt)

	s.mu.Lock()
	kept := s.active[:0]
	for _, r := range s.active {
		start := time.Now()
		done := r.effect.Update(frame)
		duration := time.Since(start)

		stats := r.stats
		stats.updates++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}

		if done {
			stats.completed++
			stats.active--
			continue
		}
		kept = append(kept, r)
	}
	clear(s.active[len(kept):])
	s.active = kept
	s.mu.Unlock()

	frame.Commands.Flush(s)
}

// Run advances effects at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Active returns the running effects in start order.
func (s *Scheduler) Active() []Effect {
	s.mu.Lock()
	defer s.mu.Unlock()

	effects := make([]Effect, len(s.active))
	for i, r := range s.active {
		effects[i] = r.effect
	}
	return effects
}

// Len returns the number of running effects.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Cancel drops every running effect matching fn without finishing it.
func (s *Scheduler) Cancel(fn func(Effect) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.active)
	s.active = slices.DeleteFunc(s.active, func(r running) bool {
		if fn(r.effect) {
			r.stats.active--
			return true
		}
		return false
	})
	return n - len(s.active)
}

// GetStats returns statistics about effect execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &SchedulerStats{
		ActiveCount: len(s.active),
		Kinds:       make([]KindStats, len(s.order)),
	}

	for i, name := range s.order {
		internal := s.kinds[name]
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.updates > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.updates)
		} else {
			minDuration = 0
		}

		stats.Kinds[i] = KindStats{
			Name:          internal.name,
			Started:       internal.started,
			Completed:     internal.completed,
			Active:        internal.active,
			Updates:       internal.updates,
			MinDuration:   minDuration,
			MaxDuration:   internal.maxDuration,
			AvgDuration:   avgDuration,
			LastDuration:  internal.lastDuration,
			TotalDuration: internal.totalDuration,
		}
		stats.TotalStarted += internal.started
		stats.TotalCompleted += internal.completed
	}

	return stats
}

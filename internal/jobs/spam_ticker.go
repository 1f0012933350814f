package jobs

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Per-tick increment bounds, inclusive.
const (
	MinSpamStep = 5
	MaxSpamStep = 20
)

// SpamTicker animates the "spam emails sent today" number on the landing page.
// The value starts at a fixed figure and grows by a random step every interval.
type SpamTicker struct {
	count    atomic.Int64
	interval time.Duration
	step     func() int64
	logger   *zap.Logger
}

// NewSpamTicker creates a ticker starting at start.
func NewSpamTicker(start int64, interval time.Duration, logger *zap.Logger) *SpamTicker {
	if interval <= 0 {
		interval = time.Second
	}
	t := &SpamTicker{
		interval: interval,
		step:     randomStep,
		logger:   logger,
	}
	t.count.Store(start)
	return t
}

func randomStep() int64 {
	return MinSpamStep + rand.Int64N(MaxSpamStep-MinSpamStep+1)
}

// Count returns the current value.
func (t *SpamTicker) Count() int64 {
	return t.count.Load()
}

// Tick advances the value once and returns it.
func (t *SpamTicker) Tick() int64 {
	return t.count.Add(t.step())
}

// Start advances the value every interval until ctx is cancelled.
func (t *SpamTicker) Start(ctx context.Context) {
	t.logger.Info("Spam ticker started",
		zap.Int64("start", t.Count()),
		zap.Duration("interval", t.interval))

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Spam ticker stopped", zap.Int64("count", t.Count()))
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}

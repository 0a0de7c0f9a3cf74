package engine

import (
	"context"
	"log"
	"time"
)

// StepFunc advances the game by dt; returning false stops the loop
type StepFunc func(dt time.Duration) bool

// ClockScheduler drives a StepFunc on a fixed real-time tick
// Keeps a deadline chain for drift correction and resynchronizes when
// it falls more than two ticks behind instead of bursting to catch up
type ClockScheduler struct {
	tickInterval time.Duration
	step         StepFunc
	logger       *log.Logger

	ticks uint64
}

// NewClockScheduler creates a scheduler ticking step every tickInterval
func NewClockScheduler(tickInterval time.Duration, step StepFunc, logger *log.Logger) *ClockScheduler {
	if tickInterval <= 0 {
		tickInterval = 16 * time.Millisecond
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ClockScheduler{
		tickInterval: tickInterval,
		step:         step,
		logger:       logger,
	}
}

// Run blocks until step returns false or ctx is cancelled
// Returns ctx.Err() on cancellation, nil on normal completion
func (cs *ClockScheduler) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	last := time.Now()
	deadline := last.Add(cs.tickInterval)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		now := time.Now()
		if !now.Before(deadline) {
			dt := now.Sub(last)
			last = now

			if !cs.step(dt) {
				return nil
			}
			cs.ticks++

			deadline = deadline.Add(cs.tickInterval)
			if maxBehind := cs.tickInterval * 2; now.Sub(deadline) > maxBehind {
				cs.logger.Printf("clock: %v behind, resyncing", now.Sub(deadline))
				deadline = now.Add(cs.tickInterval)
			}
		}

		sleep := time.Until(deadline)
		if sleep <= 0 {
			continue
		}
		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Ticks returns the number of completed steps
func (cs *ClockScheduler) Ticks() uint64 {
	return cs.ticks
}

// RunFixed steps with a constant dt without sleeping, up to maxSteps
// Returns the number of steps taken; used for headless simulation and tests
func RunFixed(step StepFunc, dt time.Duration, maxSteps int) int {
	for i := 0; i < maxSteps; i++ {
		if !step(dt) {
			return i + 1
		}
	}
	return maxSteps
}

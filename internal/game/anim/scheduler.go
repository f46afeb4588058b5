// Package anim provides the timing collaborators the board hands its timed
// effects to. Nothing here blocks: a scheduler only decides when the step and
// completion callbacks run.
package anim

import (
	"time"

	"github.com/rs/zerolog"
)

// StepFunc receives animation progress in [0, 1].
type StepFunc func(t float64)

// Immediate runs every schedule to completion inside the call. Used by tests
// and the headless runner.
type Immediate struct{}

// ScheduleOverDuration calls onStep(1) and then onComplete before returning.
func (Immediate) ScheduleOverDuration(_ time.Duration, onStep func(t float64), onComplete func()) {
	if onStep != nil {
		onStep(1)
	}
	if onComplete != nil {
		onComplete()
	}
}

type job struct {
	duration   time.Duration
	elapsed    time.Duration
	onStep     func(t float64)
	onComplete func()
}

// Ticker runs schedules against a clock advanced by the caller, usually once
// per frame. Callbacks run on the goroutine that calls Advance.
type Ticker struct {
	jobs    []*job
	pending []*job
	logger  zerolog.Logger
}

// NewTicker creates an idle ticker.
func NewTicker(logger zerolog.Logger) *Ticker {
	return &Ticker{logger: logger.With().Str("component", "Ticker").Logger()}
}

// ScheduleOverDuration queues a job. It starts on the next Advance, so a job
// scheduled from inside a callback never runs in the same frame.
func (t *Ticker) ScheduleOverDuration(d time.Duration, onStep func(t float64), onComplete func()) {
	t.pending = append(t.pending, &job{duration: d, onStep: onStep, onComplete: onComplete})
}

// Pending returns the number of jobs not yet completed.
func (t *Ticker) Pending() int { return len(t.jobs) + len(t.pending) }

// Advance moves the clock forward by dt, stepping every running job and
// completing those whose duration has elapsed, in scheduling order.
func (t *Ticker) Advance(dt time.Duration) {
	t.jobs = append(t.jobs, t.pending...)
	t.pending = nil
	if len(t.jobs) == 0 {
		return
	}

	var keep []*job
	completed := 0
	for _, j := range t.jobs {
		j.elapsed += dt
		progress := 1.0
		if j.duration > 0 && j.elapsed < j.duration {
			progress = float64(j.elapsed) / float64(j.duration)
		}
		if j.onStep != nil {
			j.onStep(progress)
		}
		if progress < 1 {
			keep = append(keep, j)
			continue
		}
		completed++
		if j.onComplete != nil {
			j.onComplete()
		}
	}
	t.jobs = keep

	if completed > 0 {
		t.logger.Trace().
			Int("completed", completed).
			Int("pending", t.Pending()).
			Msg("Scheduled jobs completed")
	}
}

// Flush advances until nothing is pending. Jobs that keep scheduling new
// jobs are cut off after maxRounds advances.
func (t *Ticker) Flush(step time.Duration, maxRounds int) {
	for i := 0; i < maxRounds && t.Pending() > 0; i++ {
		t.Advance(step)
	}
}

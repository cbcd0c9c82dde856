// Package schedule owns the recurring cadences that fire accrual jobs.
package schedule

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pterm/pterm"
	"github.com/robfig/cron/v3"
)

// RunLayout renders a next-run instant for the operator,
// e.g. "Thursday, January 11, 2024 8:00:00 AM EST".
const RunLayout = "Monday, January 2, 2006 3:04:05 PM MST"

// Scheduler wraps a cron runner pinned to one timezone. Cadence expressions
// use the standard five fields (minute, hour, day-of-month, month,
// day-of-week); day-of-month and day-of-week are OR'd when both are
// restricted. Matching follows local wall clock, so a firing hour stays the
// same on both sides of a DST transition.
type Scheduler struct {
	cron *cron.Cron
	loc  *time.Location
}

func New(timezone string) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		loc:  loc,
	}, nil
}

func (s *Scheduler) Location() *time.Location {
	return s.loc
}

// Register adds a recurring handler. Fires of the same registration never
// overlap: when a handler is still running as its next fire arrives, that
// fire is skipped with a warning. After each completed fire the next
// occurrence is recomputed and displayed.
func (s *Scheduler) Register(name, expr string, handler func()) error {
	var running atomic.Bool

	_, err := s.cron.AddFunc(expr, func() {
		if !running.CompareAndSwap(false, true) {
			pterm.Warning.Printf("%s is still running, skipping this fire\n", name)
			return
		}
		defer running.Store(false)

		pterm.Info.Printf("Running %s\n", name)
		handler()

		next, err := s.Next(expr, time.Now())
		if err == nil {
			pterm.Info.Println("Next run:")
			pterm.Info.Printf("   %s\n", next.Format(RunLayout))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}

// Next computes the soonest occurrence of expr strictly after now,
// evaluated in the scheduler's timezone.
func (s *Scheduler) Next(expr string, now time.Time) (time.Time, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return sched.Next(now.In(s.loc)), nil
}

// Start begins firing registrations on their cadences. It does not block.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling new fires; the returned context is done once every
// in-flight handler has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

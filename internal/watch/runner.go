package watch

import (
	"context"
	"time"

	"organizer/internal/log"
	"organizer/internal/organize"
)

// Runner ties a Watcher to the organize engine: after activity in the
// watched directory has settled for the configured interval, it runs one
// organizing pass.
type Runner struct {
	engine    *organize.Engine
	watcher   *Watcher
	directory string
	interval  time.Duration
}

// NewRunner creates a runner for directory.
func NewRunner(engine *organize.Engine, directory string, interval time.Duration) (*Runner, error) {
	watcher, err := New(directory)
	if err != nil {
		return nil, err
	}
	return &Runner{
		engine:    engine,
		watcher:   watcher,
		directory: directory,
		interval:  interval,
	}, nil
}

// Run blocks until ctx is cancelled or the watcher fails. An initial pass
// runs immediately so files already present are organized without waiting
// for an event. Failures inside a pass are logged and do not stop the
// runner; only a setup failure (the directory disappearing) does.
func (r *Runner) Run(ctx context.Context) error {
	// Start watching before the initial pass so files arriving during the
	// pass are not missed, and so every exit path stops the watcher.
	if err := r.watcher.Start(); err != nil {
		return err
	}
	defer r.watcher.Stop()

	report, err := r.engine.OrganizeDirectory(r.directory)
	if err != nil {
		return err
	}
	if report.Failed {
		log.Warn("Organizing pass finished with %d failures", report.FailureCount())
	}

	timer := time.NewTimer(r.interval)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case _, ok := <-r.watcher.Events():
			if !ok {
				return nil
			}
			// Restart the quiet period on every event.
			if pending && !timer.Stop() {
				<-timer.C
			}
			pending = true
			timer.Reset(r.interval)

		case <-timer.C:
			pending = false
			report, err := r.engine.OrganizeDirectory(r.directory)
			if err != nil {
				return err
			}
			if report.Failed {
				log.Warn("Organizing pass finished with %d failures", report.FailureCount())
			}

		case <-ctx.Done():
			return nil
		}
	}
}

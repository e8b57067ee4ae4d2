package screen

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Task runs a step function immediately and then once per interval until it
// is stopped. Start and Stop may be called from any goroutine; a stopped task
// can be started again.
type Task struct {
	name     string
	interval time.Duration
	step     func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTask returns a stopped task. A non-positive interval is treated as one
// millisecond.
func NewTask(name string, interval time.Duration, step func(ctx context.Context)) *Task {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Task{name: name, interval: interval, step: step}
}

// Name returns the task name used in logs and error reports.
func (t *Task) Name() string {
	return t.name
}

// Interval returns the step interval.
func (t *Task) Interval() time.Duration {
	return t.interval
}

// Start launches the task loop on g, or on a new goroutine when g is nil.
// It reports false if the task was already running.
func (t *Task) Start(ctx context.Context, g *errgroup.Group) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel, t.done = cancel, done

	loop := func() error {
		defer func() {
			// The parent context may end the loop without Stop.
			t.mu.Lock()
			if t.done == done {
				t.cancel, t.done = nil, nil
			}
			t.mu.Unlock()
			cancel()
			close(done)
		}()
		t.run(ctx)
		return nil
	}
	if g != nil {
		g.Go(loop)
	} else {
		go loop()
	}
	return true
}

// Stop cancels the task and waits for the loop to exit. Stopping a task that
// is not running is a no-op.
func (t *Task) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the task loop has been started and not stopped.
func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

func (t *Task) run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return
		}
		t.step(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

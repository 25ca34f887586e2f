package player

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/chimara/pkg/domain"
)

// Loop runs posted tasks one at a time, in order, on the goroutine that calls Run.
// A task that blocks (a prompt waiting for the user, a session shutting down)
// holds the loop until it returns.
type Loop struct {
	mu       sync.Mutex
	queue    []func(context.Context)
	stopped  bool
	started  bool
	wake     chan struct{}
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop that is not yet running.
func NewLoop() *Loop {
	return &Loop{
		wake:   make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Run dispatches tasks until Stop is called or ctx is done.
// It returns nil after Stop and ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return errors.New("loop already running")
	}
	l.started = true
	l.mu.Unlock()

	defer close(l.done)
	defer l.Stop()

	for {
		select {
		case <-l.stopCh:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}

		for {
			task, ok := l.next()
			if !ok {
				break
			}
			task(ctx)

			select {
			case <-l.stopCh:
				return nil
			default:
			}
		}
	}
}

func (l *Loop) next() (func(context.Context), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	task := l.queue[0]
	l.queue = l.queue[1:]
	return task, true
}

// Post queues fn without waiting for it. It never blocks, so it is safe to
// call from observers that run while a task holds the loop.
func (l *Loop) Post(fn func(context.Context)) error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return domain.ErrLoopStopped
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Call runs fn on the loop and waits for its result.
// It must not be called from a task, which would wait on itself.
func (l *Loop) Call(ctx context.Context, fn func(context.Context) error) error {
	result := make(chan error, 1)
	if err := l.Post(func(ctx context.Context) {
		result <- fn(ctx)
	}); err != nil {
		return err
	}

	select {
	case err := <-result:
		return err
	case <-l.done:
		select {
		case err := <-result:
			return err
		default:
			return domain.ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop ends Run after the current task. Queued tasks are discarded.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
		close(l.stopCh)
	})
}

// Done is closed when Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

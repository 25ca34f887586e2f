package ports

import (
	"context"

	"github.com/aretw0/chimara/pkg/domain"
)

// Interpreter runs interactive-fiction sessions, one at a time.
type Interpreter interface {
	// Run starts a session for the launch request.
	// Returns domain.ErrSessionRunning if a session is still running.
	Run(ctx context.Context, launch domain.Launch) error

	// Stop requests the running session to end. It does not wait.
	Stop()

	// Wait blocks until no session is running or the context is done.
	Wait(ctx context.Context) error

	// Running reports whether a session is active.
	Running() bool

	// FeedLine sends a line of input to the running session as if typed by the player.
	FeedLine(text string) error

	// Metadata returns the display information of the current session.
	Metadata() domain.Metadata

	// Observe registers a callback for session events.
	// Callbacks may be invoked from any goroutine.
	Observe(fn func(domain.SessionEvent))
}

// Session is the part of an Interpreter needed to guard it against replacement.
type Session interface {
	Running() bool
	Stop()
	Wait(ctx context.Context) error
}

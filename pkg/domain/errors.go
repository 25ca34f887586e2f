package domain

import "errors"

// ErrSessionRunning is returned when a session is started while another one is still running.
var ErrSessionRunning = errors.New("a session is already running")

// ErrNotRunning is returned when an operation needs a running session and there is none.
var ErrNotRunning = errors.New("no session is running")

// ErrInterpreterNotFound is returned when the program for an interpreter cannot be located.
var ErrInterpreterNotFound = errors.New("interpreter not found")

// ErrUnsupportedInterpreter is returned when an interpreter cannot run a given format.
var ErrUnsupportedInterpreter = errors.New("format not supported by interpreter")

// ErrUnknownKey is returned for preference keys outside the fixed key set.
var ErrUnknownKey = errors.New("unknown preference key")

// ErrInvalidValue is returned when a preference value does not match its kind.
var ErrInvalidValue = errors.New("invalid preference value")

// ErrUnknownAction is returned when no handler is registered for an event.
var ErrUnknownAction = errors.New("unknown action")

// ErrLoopStopped is returned when work is posted to an event loop that has stopped.
var ErrLoopStopped = errors.New("event loop stopped")

// ErrResourceMissing is returned when an installed data file cannot be found.
var ErrResourceMissing = errors.New("resource file missing")

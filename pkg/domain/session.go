package domain

// SessionState describes whether an interpreter session is active.
type SessionState int

const (
	NotRunning SessionState = iota
	Running
)

func (s SessionState) String() string {
	if s == Running {
		return "running"
	}
	return "not running"
}

// StateOf maps the boolean reported by an interpreter to a SessionState.
func StateOf(running bool) SessionState {
	if running {
		return Running
	}
	return NotRunning
}

// Decision is the outcome of asking whether a new game may replace the current session.
type Decision int

const (
	Cancel Decision = iota
	Proceed
)

func (d Decision) String() string {
	if d == Proceed {
		return "proceed"
	}
	return "cancel"
}

package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// AppName is used as the suffix of every window title.
const AppName = "Chimara"

// Metadata is the display information a session reports while it runs.
type Metadata struct {
	ProgramName string
	StoryName   string
}

// Title formats the window title for the metadata.
func (m Metadata) Title() string {
	switch {
	case m.ProgramName == "":
		return AppName
	case m.StoryName == "":
		return fmt.Sprintf("%s - %s", m.ProgramName, AppName)
	default:
		return fmt.Sprintf("%s - %s - %s", m.ProgramName, m.StoryName, AppName)
	}
}

// StoryName derives a story name from a game file path.
func StoryName(gamePath string) string {
	base := filepath.Base(gamePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SessionEventType defines the category of a session event.
type SessionEventType string

const (
	EventStarted  SessionEventType = "started"
	EventMetadata SessionEventType = "metadata"
	EventStopped  SessionEventType = "stopped"
)

// SessionEvent is emitted by an interpreter when its state or metadata changes.
type SessionEvent struct {
	Type     SessionEventType
	Metadata Metadata
	// Err carries the exit error of a session that stopped abnormally.
	Err error
}

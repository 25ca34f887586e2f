// Package testutils provides in-memory stand-ins for the player's ports.
package testutils

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/aretw0/chimara/pkg/domain"
	"github.com/aretw0/chimara/pkg/ports"
)

// FakeInterpreter records launches and input lines instead of running a game.
// Stop ends the session immediately unless HoldOnStop is set, in which case
// the session ends when Finish is called.
type FakeInterpreter struct {
	mu        sync.Mutex
	running   bool
	done      chan struct{}
	metadata  domain.Metadata
	observers []func(domain.SessionEvent)

	// RunErr is returned by the next Run calls when set.
	RunErr error
	// HoldOnStop keeps the session running after Stop until Finish.
	HoldOnStop bool

	Launches  []domain.Launch
	Lines     []string
	StopCalls int
	WaitCalls int
}

// NewFakeInterpreter returns an idle fake.
func NewFakeInterpreter() *FakeInterpreter {
	return &FakeInterpreter{}
}

func (f *FakeInterpreter) Run(ctx context.Context, launch domain.Launch) error {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return domain.ErrSessionRunning
	}
	if f.RunErr != nil {
		err := f.RunErr
		f.mu.Unlock()
		return err
	}
	f.running = true
	f.done = make(chan struct{})
	f.Launches = append(f.Launches, launch)
	f.metadata = domain.Metadata{ProgramName: launch.Interpreter.String(), StoryName: domain.StoryName(launch.GamePath)}
	f.mu.Unlock()

	f.emit(domain.SessionEvent{Type: domain.EventStarted, Metadata: f.Metadata()})
	return nil
}

// Start marks a session as running without recording a launch.
func (f *FakeInterpreter) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = true
	f.done = make(chan struct{})
}

func (f *FakeInterpreter) Stop() {
	f.mu.Lock()
	f.StopCalls++
	hold := f.HoldOnStop
	f.mu.Unlock()
	if !hold {
		f.Finish()
	}
}

// Finish ends the session as if the game had exited.
func (f *FakeInterpreter) Finish() {
	f.mu.Lock()
	if !f.running {
		f.mu.Unlock()
		return
	}
	f.running = false
	close(f.done)
	f.metadata = domain.Metadata{}
	f.mu.Unlock()

	f.emit(domain.SessionEvent{Type: domain.EventStopped})
}

func (f *FakeInterpreter) Wait(ctx context.Context) error {
	f.mu.Lock()
	f.WaitCalls++
	running, done := f.running, f.done
	f.mu.Unlock()
	if !running {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *FakeInterpreter) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *FakeInterpreter) FeedLine(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.running {
		return domain.ErrNotRunning
	}
	f.Lines = append(f.Lines, text)
	return nil
}

func (f *FakeInterpreter) Metadata() domain.Metadata {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.metadata
}

func (f *FakeInterpreter) Observe(fn func(domain.SessionEvent)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observers = append(f.observers, fn)
}

// SetMetadata changes the metadata and notifies observers.
func (f *FakeInterpreter) SetMetadata(md domain.Metadata) {
	f.mu.Lock()
	f.metadata = md
	f.mu.Unlock()
	f.emit(domain.SessionEvent{Type: domain.EventMetadata, Metadata: md})
}

// Snapshot returns copies of the recorded launches and lines.
func (f *FakeInterpreter) Snapshot() ([]domain.Launch, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Launch(nil), f.Launches...), append([]string(nil), f.Lines...)
}

func (f *FakeInterpreter) emit(ev domain.SessionEvent) {
	f.mu.Lock()
	observers := slices.Clone(f.observers)
	f.mu.Unlock()
	for _, fn := range observers {
		fn(ev)
	}
}

// ErrNoAnswer is returned by a ScriptedPrompter that ran out of answers.
var ErrNoAnswer = errors.New("no scripted answer")

// ScriptedPrompter answers confirmations from a fixed script.
type ScriptedPrompter struct {
	mu      sync.Mutex
	Answers []bool
	Err     error
	Prompts []ports.Prompt
	// OnConfirm runs while the prompt is "open", before the answer is returned.
	OnConfirm func()
}

func (p *ScriptedPrompter) Confirm(ctx context.Context, prompt ports.Prompt) (bool, error) {
	p.mu.Lock()
	p.Prompts = append(p.Prompts, prompt)
	hook := p.OnConfirm
	p.mu.Unlock()
	if hook != nil {
		hook()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return false, p.Err
	}
	if len(p.Answers) == 0 {
		return false, ErrNoAnswer
	}
	ans := p.Answers[0]
	p.Answers = p.Answers[1:]
	return ans, nil
}

// PromptCount returns how many times Confirm was called.
func (p *ScriptedPrompter) PromptCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Prompts)
}

// FakeChooser returns a fixed choice and records the start directories it was given.
type FakeChooser struct {
	mu        sync.Mutex
	Path      string
	Dir       string
	Cancelled bool
	Err       error
	StartDirs []string
}

func (c *FakeChooser) ChooseFile(ctx context.Context, title, startDir string) (string, string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.StartDirs = append(c.StartDirs, startDir)
	if c.Err != nil {
		return "", "", false, c.Err
	}
	if c.Cancelled {
		return "", startDir, false, nil
	}
	return c.Path, c.Dir, true, nil
}

// FakeNotifier collects error messages.
type FakeNotifier struct {
	mu       sync.Mutex
	Messages []string
}

func (n *FakeNotifier) Error(ctx context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, message)
}

// All returns a copy of the collected messages.
func (n *FakeNotifier) All() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.Messages...)
}

// FakeView records what the player shows.
type FakeView struct {
	mu          sync.Mutex
	Title       string
	Titles      []string
	Toolbar     bool
	Preferences []ports.PreferenceView
	About       []string
	HelpShown   int
}

func (v *FakeView) SetTitle(title string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Title = title
	v.Titles = append(v.Titles, title)
}

func (v *FakeView) SetToolbarVisible(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Toolbar = visible
}

func (v *FakeView) ShowPreferences(entries []ports.PreferenceView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Preferences = entries
}

func (v *FakeView) ShowAbout(version string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.About = append(v.About, version)
}

func (v *FakeView) ShowHelp() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.HelpShown++
}

// CurrentTitle returns the last title set.
func (v *FakeView) CurrentTitle() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.Title
}

// ToolbarVisible returns the toolbar state.
func (v *FakeView) ToolbarVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.Toolbar
}

package player

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/chimara/internal/suggest"
	"github.com/aretw0/chimara/pkg/domain"
)

// Event is the kind of user interaction that triggers an action.
type Event string

const (
	EventActivate      Event = "activate"
	EventToggled       Event = "toggled"
	EventItemActivated Event = "item-activated"
)

// Source names the control an event comes from.
type Source string

const (
	SourceOpen          Source = "open"
	SourceRecent        Source = "recent"
	SourceStop          Source = "stop"
	SourceUndo          Source = "undo"
	SourceSave          Source = "save"
	SourceRestore       Source = "restore"
	SourceRestart       Source = "restart"
	SourceQuit          Source = "quit"
	SourceToolbar       Source = "toolbar"
	SourcePreferences   Source = "preferences"
	SourceSetPreference Source = "set-preference"
	SourceHelp          Source = "help"
	SourceAbout         Source = "about"
	SourceExit          Source = "exit"
)

// Binding identifies an action by the event and the control that raised it.
type Binding struct {
	Event  Event
	Source Source
}

func (b Binding) String() string {
	return fmt.Sprintf("%s:%s", b.Source, b.Event)
}

// Handler performs an action. It runs on the player's loop.
type Handler func(ctx context.Context, args []string) error

// actionTable builds the action table. Every binding is registered here
// explicitly; nothing is looked up by name at run time.
func (p *Player) actionTable() map[Binding]Handler {
	return map[Binding]Handler{
		{EventActivate, SourceOpen}:          p.onOpen,
		{EventItemActivated, SourceRecent}:   p.onRecent,
		{EventActivate, SourceStop}:          p.onStop,
		{EventActivate, SourceUndo}:          p.forward("undo"),
		{EventActivate, SourceSave}:          p.forward("save"),
		{EventActivate, SourceRestore}:       p.forward("restore"),
		{EventActivate, SourceRestart}:       p.forward("restart"),
		{EventActivate, SourceQuit}:          p.forward("quit"),
		{EventToggled, SourceToolbar}:        p.onToolbar,
		{EventActivate, SourcePreferences}:   p.onPreferences,
		{EventActivate, SourceSetPreference}: p.onSetPreference,
		{EventActivate, SourceHelp}:          p.onHelp,
		{EventActivate, SourceAbout}:         p.onAbout,
		{EventActivate, SourceExit}:          p.onExit,
	}
}

// forward types a command into the running game.
func (p *Player) forward(line string) Handler {
	return func(ctx context.Context, args []string) error {
		return p.interp.FeedLine(line)
	}
}

// Bindings lists the registered bindings, sorted by source.
func (p *Player) Bindings() []Binding {
	out := make([]Binding, 0, len(p.actions))
	for b := range p.actions {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source == out[j].Source {
			return out[i].Event < out[j].Event
		}
		return out[i].Source < out[j].Source
	})
	return out
}

// BindingFor returns the binding registered for source, whatever its event.
func (p *Player) BindingFor(source Source) (Binding, error) {
	for b := range p.actions {
		if b.Source == source {
			return b, nil
		}
	}
	return Binding{}, p.unknown(string(source))
}

func (p *Player) unknown(name string) error {
	names := make([]string, 0, len(p.actions))
	for b := range p.actions {
		names = append(names, string(b.Source))
	}
	return fmt.Errorf("%w %q%s", domain.ErrUnknownAction, strings.TrimSpace(name), suggest.Hint(name, names))
}

func (p *Player) dispatch(ctx context.Context, b Binding, args []string) error {
	handler, ok := p.actions[b]
	if !ok {
		return p.unknown(string(b.Source))
	}
	p.logger.Debug("Dispatching action", "action", b.String(), "args", args)
	return handler(ctx, args)
}

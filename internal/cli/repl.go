package cli

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/chimara/internal/presentation/tui"
	"github.com/aretw0/chimara/pkg/domain"
	"github.com/aretw0/chimara/pkg/player"
	"github.com/aretw0/chimara/pkg/recent"
)

// CommandPrefix marks a line as a player command rather than game input.
// Doubling it sends the rest of the line to the game verbatim.
const CommandPrefix = ":"

const idleWarning = "No game is running. Type :open to start one, :help for commands."

// exitTimeout bounds how long shutdown waits for a running game.
var exitTimeout = 10 * time.Second

var commandAliases = map[string]player.Source{
	"prefs": player.SourcePreferences,
	"set":   player.SourceSetPreference,
	"q":     player.SourceExit,
}

// REPL reads lines from the terminal and turns them into player actions
// or game input.
type REPL struct {
	player  *player.Player
	console *tui.Console
	lines   *tui.LineSource
	recent  *recent.Tracker
	running func() bool
	logger  *slog.Logger

	// MaxInput bounds a line sent to the game; zero means no bound.
	MaxInput int
}

// NewREPL wires a REPL. running reports whether a game is in progress and
// decides whether the command prompt is shown.
func NewREPL(p *player.Player, console *tui.Console, lines *tui.LineSource, tracker *recent.Tracker, running func() bool, logger *slog.Logger) *REPL {
	return &REPL{
		player:   p,
		console:  console,
		lines:    lines,
		recent:   tracker,
		running:  running,
		logger:   logger,
		MaxInput: DefaultMaxInput,
	}
}

// Run reads until the player loop stops, input ends or ctx is cancelled.
// Ending input or a signal triggers the exit action so that a running game
// is shut down cleanly.
func (r *REPL) Run(ctx context.Context) error {
	for {
		select {
		case <-r.player.Loop().Done():
			return nil
		default:
		}

		if !r.running() {
			r.console.Prompt()
		}
		line, err := r.lines.ReadLine(ctx)
		if err != nil {
			r.logger.Debug("Input ended", "err", err)
			r.exit()
			return handleExecutionError(err)
		}
		r.Handle(ctx, line)
	}
}

func (r *REPL) exit() {
	ctx, cancel := context.WithTimeout(context.Background(), exitTimeout)
	defer cancel()
	err := r.player.Activate(ctx, player.SourceExit)
	if err != nil && !errors.Is(err, domain.ErrLoopStopped) {
		r.console.Warn(err.Error())
	}
}

// Handle processes one line of input.
func (r *REPL) Handle(ctx context.Context, line string) {
	switch {
	case strings.HasPrefix(line, CommandPrefix+CommandPrefix):
		r.input(ctx, strings.TrimPrefix(line, CommandPrefix))
	case strings.HasPrefix(line, CommandPrefix):
		r.command(ctx, strings.Fields(strings.TrimPrefix(line, CommandPrefix)))
	default:
		r.input(ctx, line)
	}
}

func (r *REPL) input(ctx context.Context, line string) {
	line, err := SanitizeLine(line, r.MaxInput)
	if err != nil {
		r.report(err)
		return
	}
	err = r.player.Input(ctx, line)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotRunning):
		if strings.TrimSpace(line) != "" {
			r.console.Warn(idleWarning)
		}
	default:
		r.report(err)
	}
}

func (r *REPL) command(ctx context.Context, fields []string) {
	if len(fields) == 0 {
		return
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	source := player.Source(name)
	if alias, ok := commandAliases[name]; ok {
		source = alias
	}
	if source == player.SourceRecent && len(args) == 0 {
		r.listRecent(ctx)
		return
	}

	r.report(r.player.Activate(ctx, source, args...))
}

func (r *REPL) listRecent(ctx context.Context) {
	entries, err := r.recent.List(ctx)
	if err != nil {
		r.report(err)
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, recent.DisplayName(e.URI))
	}
	r.console.ShowRecent(names)
}

func (r *REPL) report(err error) {
	if err == nil || errors.Is(err, domain.ErrLoopStopped) {
		return
	}
	r.logger.Debug("Command failed", "err", err)
	r.console.Warn(err.Error())
}

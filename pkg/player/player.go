package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/chimara/internal/logging"
	"github.com/aretw0/chimara/pkg/domain"
	"github.com/aretw0/chimara/pkg/guard"
	"github.com/aretw0/chimara/pkg/ports"
	"github.com/aretw0/chimara/pkg/prefs"
	"github.com/aretw0/chimara/pkg/recent"
	"github.com/aretw0/chimara/pkg/resource"
)

// Surface groups the user-facing ports the player drives.
type Surface struct {
	Prompter ports.Prompter
	Chooser  ports.FileChooser
	Notifier ports.Notifier
	View     ports.View
}

// Player is the controller of the application window. All of its state is
// touched only from tasks running on its Loop.
type Player struct {
	loop    *Loop
	interp  ports.Interpreter
	prefs   *prefs.Store
	recent  *recent.Tracker
	ui      Surface
	logger  *slog.Logger
	version string
	actions map[Binding]Handler

	toolbar bool
}

// Option configures the Player.
type Option func(*Player)

// WithLogger configures a logger for the Player.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		p.logger = logger
	}
}

// WithVersion sets the version shown by the about action.
func WithVersion(v string) Option {
	return func(p *Player) {
		p.version = v
	}
}

// New builds the player. The toolbar takes its initial visibility from the
// preferences, once; the title starts as the bare application name.
func New(interp ports.Interpreter, store *prefs.Store, tracker *recent.Tracker, ui Surface, opts ...Option) *Player {
	p := &Player{
		loop:    NewLoop(),
		interp:  interp,
		prefs:   store,
		recent:  tracker,
		ui:      ui,
		logger:  logging.NewNop(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(p)
	}
	p.actions = p.actionTable()

	store.BindBool(prefs.ShowToolbarDefault, func(visible bool) {
		p.toolbar = visible
		ui.View.SetToolbarVisible(visible)
	})
	ui.View.SetTitle(domain.Metadata{}.Title())

	interp.Observe(func(ev domain.SessionEvent) {
		// Observers may run on any goroutine; hop onto the loop.
		_ = p.loop.Post(func(ctx context.Context) {
			p.onSessionEvent(ctx, ev)
		})
	})
	return p
}

// Loop returns the loop the player's handlers run on.
func (p *Player) Loop() *Loop {
	return p.loop
}

// Run dispatches actions until the exit action runs or ctx is done.
func (p *Player) Run(ctx context.Context) error {
	return p.loop.Run(ctx)
}

// Do runs the action bound to b on the loop and waits for it.
func (p *Player) Do(ctx context.Context, b Binding, args ...string) error {
	return p.loop.Call(ctx, func(ctx context.Context) error {
		return p.dispatch(ctx, b, args)
	})
}

// Activate runs the action of source, whatever event it is bound to.
func (p *Player) Activate(ctx context.Context, source Source, args ...string) error {
	b, err := p.BindingFor(source)
	if err != nil {
		return err
	}
	return p.Do(ctx, b, args...)
}

// Input types a line into the running game.
func (p *Player) Input(ctx context.Context, line string) error {
	return p.loop.Call(ctx, func(ctx context.Context) error {
		return p.interp.FeedLine(line)
	})
}

// Load starts a game named on the command line. Unlike the open action it
// neither asks for confirmation nor remembers the game: it is meant for
// startup, when nothing is running yet. A failure is reported to the user
// and returned; the player stays usable with no game loaded.
func (p *Player) Load(ctx context.Context, gamePath string, graphics domain.Optional[string]) error {
	return p.loop.Call(ctx, func(ctx context.Context) error {
		if err := p.start(ctx, gamePath, graphics); err != nil {
			p.ui.Notifier.Error(ctx, openFailure(gamePath, err))
			return err
		}
		return nil
	})
}

func openFailure(name string, err error) string {
	return fmt.Sprintf("Could not open game file %s: %s", name, err)
}

// start builds the launch request from preferences and runs it.
// With no explicit graphics file the companion resolver is consulted.
func (p *Player) start(ctx context.Context, gamePath string, graphics domain.Optional[string]) error {
	if !graphics.IsSome() {
		graphics = resource.ResolveCompanion(gamePath, p.prefs.Path(prefs.ResourcePath))
	}

	format := domain.DetectFormat(gamePath)
	launch := domain.Launch{
		GamePath:     gamePath,
		GraphicsFile: graphics,
		Format:       format,
		Interpreter:  p.prefs.Interpreter(format),
		Options:      p.prefs.Options(),
	}

	p.logger.Info("Starting game", "game", gamePath, "format", format, "interpreter", launch.Interpreter)
	return p.interp.Run(ctx, launch)
}

// replace runs the guard and, when allowed, opens gamePath. It reports
// failures to the user and returns whether the game started.
func (p *Player) replace(ctx context.Context, gamePath, displayName string) (bool, error) {
	decision, err := guard.ConfirmReplace(ctx, p.interp, p.ui.Prompter)
	if err != nil {
		return false, err
	}
	if decision == domain.Cancel {
		return false, nil
	}
	return p.open(ctx, gamePath, displayName), nil
}

func (p *Player) open(ctx context.Context, gamePath, displayName string) bool {
	if err := p.start(ctx, gamePath, domain.None[string]()); err != nil {
		p.logger.Warn("Game failed to start", "game", gamePath, "err", err)
		p.ui.Notifier.Error(ctx, openFailure(displayName, err))
		return false
	}
	p.remember(ctx, gamePath)
	return true
}

func (p *Player) remember(ctx context.Context, gamePath string) {
	uri, err := recent.URIFromPath(gamePath)
	if err == nil {
		err = p.recent.Record(ctx, uri)
	}
	if err != nil {
		p.logger.Warn("Could not record recent game", "game", gamePath, "err", err)
	}
}

// onOpen asks for a game file, or takes it from args, and opens it.
func (p *Player) onOpen(ctx context.Context, args []string) error {
	decision, err := guard.ConfirmReplace(ctx, p.interp, p.ui.Prompter)
	if err != nil {
		return err
	}
	if decision == domain.Cancel {
		return nil
	}

	var path, dir string
	if len(args) > 0 {
		path = args[0]
		dir = filepath.Dir(path)
	} else {
		start := p.prefs.Path(prefs.LastOpenPath).OrElse(".")
		var ok bool
		path, dir, ok, err = p.ui.Chooser.ChooseFile(ctx, "Open Game", start)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	if !p.open(ctx, path, path) {
		return nil
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if err := p.prefs.Set(ctx, prefs.LastOpenPath, dir); err != nil {
		p.logger.Warn("Could not remember the game directory", "dir", dir, "err", err)
	}
	return nil
}

// onRecent opens a game from the recent list, given its URI or its
// one-based position in the list.
func (p *Player) onRecent(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: recent needs a game", domain.ErrInvalidValue)
	}

	uri := args[0]
	if n, err := strconv.Atoi(uri); err == nil {
		entries, err := p.recent.List(ctx)
		if err != nil {
			return err
		}
		if n < 1 || n > len(entries) {
			return fmt.Errorf("%w: no recent game number %d", domain.ErrInvalidValue, n)
		}
		uri = entries[n-1].URI
	}

	path, err := recent.PathFromURI(uri)
	if err != nil {
		p.ui.Notifier.Error(ctx, openFailure(recent.DisplayName(uri), err))
		return nil
	}
	_, err = p.replace(ctx, path, recent.DisplayName(uri))
	return err
}

func (p *Player) onStop(ctx context.Context, args []string) error {
	p.interp.Stop()
	return nil
}

// onToolbar changes the toolbar of this window only; the stored default is
// not touched.
func (p *Player) onToolbar(ctx context.Context, args []string) error {
	visible := !p.toolbar
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "on", "show", "true":
			visible = true
		case "off", "hide", "false":
			visible = false
		default:
			return fmt.Errorf("%w: toolbar expects on or off, got %q", domain.ErrInvalidValue, args[0])
		}
	}
	p.toolbar = visible
	p.ui.View.SetToolbarVisible(visible)
	return nil
}

// ToolbarVisible reports the toolbar state of the window.
func (p *Player) ToolbarVisible() bool {
	return p.toolbar
}

func (p *Player) onPreferences(ctx context.Context, args []string) error {
	p.ui.View.ShowPreferences(p.prefs.Entries())
	return nil
}

// onSetPreference is the only path by which preferences are written.
// With a single argument the key is reset to its default.
func (p *Player) onSetPreference(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: set needs a key", domain.ErrInvalidValue)
	}
	key, err := prefs.ParseKey(args[0])
	if err != nil {
		return err
	}

	if len(args) == 1 {
		err = p.prefs.Unset(ctx, key)
	} else {
		err = p.prefs.Set(ctx, key, strings.Join(args[1:], " "))
	}
	if err != nil {
		return err
	}
	p.ui.View.ShowPreferences(p.prefs.Entries())
	return nil
}

func (p *Player) onHelp(ctx context.Context, args []string) error {
	p.ui.View.ShowHelp()
	return nil
}

func (p *Player) onAbout(ctx context.Context, args []string) error {
	p.ui.View.ShowAbout(p.version)
	return nil
}

// onExit ends a running game, waits for it and stops the loop.
func (p *Player) onExit(ctx context.Context, args []string) error {
	defer p.loop.Stop()
	if !p.interp.Running() {
		return nil
	}
	p.interp.Stop()
	if err := p.interp.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed waiting for the game to end: %w", err)
	}
	return nil
}

// onSessionEvent keeps the title in step with the interpreter. The title is
// read back from the interpreter so that late events cannot show a stale one.
func (p *Player) onSessionEvent(ctx context.Context, ev domain.SessionEvent) {
	if ev.Err != nil {
		p.logger.Warn("Game ended with an error", "err", ev.Err)
	}
	p.ui.View.SetTitle(p.interp.Metadata().Title())
}

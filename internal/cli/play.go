package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/chimara"
	"github.com/aretw0/chimara/internal/config"
	"github.com/aretw0/chimara/internal/logging"
	"github.com/aretw0/chimara/internal/presentation/tui"
	"github.com/aretw0/chimara/pkg/adapters/process"
	"github.com/aretw0/chimara/pkg/domain"
	"github.com/aretw0/chimara/pkg/player"
	"github.com/aretw0/chimara/pkg/prefs"
)

// Play runs the interactive player until the user exits.
func Play(opts Options) error {
	cfg, err := opts.Resolve()
	if err != nil {
		return err
	}
	logger := logging.ForDebug(cfg.Debug)

	// Install data is required; a debug build falls back to the source tree.
	helpPath, err := cfg.DataFile(config.HelpFile)
	if err != nil {
		return err
	}
	help, err := os.ReadFile(helpPath)
	if err != nil {
		return fmt.Errorf("failed to read help: %w", err)
	}
	stylePath, err := cfg.DataFile(config.StyleFile)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	stores, err := OpenStores(sigCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stores.Close(); cerr != nil {
			logger.Warn("Failed to close stores", "err", cerr)
		}
	}()

	registry, err := process.LoadRegistry(cfg.InterpretersPath())
	if err != nil {
		return err
	}

	out := opts.output()
	interp := process.New(
		process.WithRegistry(registry),
		process.WithPTY(cfg.PTY),
		process.WithOutput(out),
		process.WithLogger(logger),
	)

	lines := tui.NewLineSource(opts.input())
	store := stores.Prefs
	console := tui.NewConsole(out, lines,
		tui.WithHelp(string(help)),
		tui.WithRenderer(tui.NewRenderer(func() tui.RenderStyle {
			return tui.RenderStyle{
				Path:  store.Path(prefs.StyleFile).OrElse(stylePath),
				Width: store.Int(prefs.WrapWidth),
			}
		})),
	)

	tui.PrintBanner(out, chimara.Version)

	p := player.New(interp, store, stores.Recent, player.Surface{
		Prompter: console,
		Chooser:  console,
		Notifier: console,
		View:     console,
	}, player.WithLogger(logger), player.WithVersion(chimara.Version))

	// The loop outlives the signal context so that the exit action can
	// still run after an interrupt.
	loopErr := make(chan error, 1)
	go func() {
		loopErr <- p.Run(context.Background())
	}()

	if opts.GamePath != "" {
		graphics := domain.None[string]()
		if opts.ResourcePath != "" {
			graphics = domain.Some(opts.ResourcePath)
		}
		// A failed load has already been reported; the player carries on empty.
		if err := p.Load(sigCtx, opts.GamePath, graphics); err != nil {
			logger.Debug("Startup game not loaded", "game", opts.GamePath, "err", err)
		}
	}

	repl := NewREPL(p, console, lines, stores.Recent, interp.Running, logger)
	repl.MaxInput = cfg.MaxInput
	replErr := repl.Run(sigCtx)

	p.Loop().Stop()
	if err := <-loopErr; err != nil {
		logger.Debug("Player loop ended", "err", err)
	}
	if sig := sigCtx.Signal(); sig != nil {
		logger.Debug("Interrupted", "signal", sig)
	}
	return replErr
}

package process

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/chimara/internal/logging"
	"github.com/aretw0/chimara/pkg/domain"
	"github.com/creack/pty"
	"golang.org/x/term"
)

// GraphicsEnv names the environment variable that carries the companion
// resource file to the interpreter.
const GraphicsEnv = "CHIMARA_GRAPHICS_FILE"

// DefaultGracePeriod is how long a stopped interpreter may take to exit before it is killed.
const DefaultGracePeriod = 2 * time.Second

// Interpreter runs games in an external interpreter program, one session at a time.
// It implements ports.Interpreter.
type Interpreter struct {
	registry Registry
	usePTY   bool
	output   io.Writer
	errOut   io.Writer
	grace    time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	session   *session
	metadata  domain.Metadata
	observers []func(domain.SessionEvent)
}

type session struct {
	cmd      *exec.Cmd
	input    io.WriteCloser
	pty      *os.File
	copied   chan struct{}
	done     chan struct{}
	stopping bool
}

// Option configures the Interpreter.
type Option func(*Interpreter)

// WithRegistry sets the interpreter programs.
func WithRegistry(reg Registry) Option {
	return func(i *Interpreter) {
		i.registry = reg
	}
}

// WithPTY runs the interpreter attached to a pseudo-terminal instead of pipes.
// Interpreters that check isatty behave as they would in a real terminal.
func WithPTY(enabled bool) Option {
	return func(i *Interpreter) {
		i.usePTY = enabled
	}
}

// WithOutput sets where the game's output goes. Defaults to Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.output = w
	}
}

// WithErrorOutput sets where the interpreter's diagnostics go. Defaults to Stderr.
// Ignored in PTY mode, where both streams share the terminal.
func WithErrorOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.errOut = w
	}
}

// WithGracePeriod sets how long Stop waits before killing the interpreter.
func WithGracePeriod(d time.Duration) Option {
	return func(i *Interpreter) {
		i.grace = d
	}
}

// WithLogger configures a logger for the Interpreter.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

// New creates an idle Interpreter.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		registry: DefaultRegistry(),
		output:   os.Stdout,
		errOut:   os.Stderr,
		grace:    DefaultGracePeriod,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run starts the interpreter for launch and returns once the program is running.
// The session outlives ctx; use Stop to end it.
func (i *Interpreter) Run(ctx context.Context, launch domain.Launch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	i.mu.Lock()
	if i.session != nil {
		i.mu.Unlock()
		return domain.ErrSessionRunning
	}

	path, entry, err := i.registry.Resolve(launch.Interpreter)
	if err != nil {
		i.mu.Unlock()
		return err
	}

	args := append(append([]string{}, entry.Args...), BuildArgs(launch)...)
	cmd := exec.Command(path, args...)
	cmd.Env = cmd.Environ()
	for k, v := range entry.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	if gfx, ok := launch.GraphicsFile.Get(); ok {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", GraphicsEnv, gfx))
	}

	s, err := i.start(cmd)
	if err != nil {
		i.mu.Unlock()
		return fmt.Errorf("failed to start %s: %w", launch.Interpreter, err)
	}

	i.session = s
	i.metadata = domain.Metadata{
		ProgramName: launch.Interpreter.String(),
		StoryName:   domain.StoryName(launch.GamePath),
	}
	md := i.metadata
	i.mu.Unlock()

	i.logger.Info("Interpreter started", "program", path, "args", args, "pid", cmd.Process.Pid, "pty", i.usePTY)
	i.emit(domain.SessionEvent{Type: domain.EventStarted, Metadata: md})
	go i.reap(s)
	return nil
}

func (i *Interpreter) start(cmd *exec.Cmd) (*session, error) {
	s := &session{cmd: cmd, done: make(chan struct{})}

	if i.usePTY {
		f, err := pty.Start(cmd)
		if err != nil {
			return nil, err
		}
		if term.IsTerminal(int(os.Stdin.Fd())) {
			_ = pty.InheritSize(os.Stdin, f)
		}
		s.pty = f
		s.input = f
		s.copied = make(chan struct{})
		go func() {
			_, _ = io.Copy(i.output, f)
			close(s.copied)
		}()
		return s, nil
	}

	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = i.output
	cmd.Stderr = i.errOut
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	s.input = in
	return s, nil
}

// reap waits for the program to exit and releases the session.
func (i *Interpreter) reap(s *session) {
	err := s.cmd.Wait()

	if s.pty != nil {
		// Let the copier drain what the game wrote before it exited.
		select {
		case <-s.copied:
		case <-time.After(i.grace):
		}
		_ = s.pty.Close()
	} else {
		_ = s.input.Close()
	}

	i.mu.Lock()
	requested := s.stopping
	i.session = nil
	i.metadata = domain.Metadata{}
	close(s.done)
	i.mu.Unlock()

	if requested {
		err = nil
	}
	if err != nil {
		i.logger.Warn("Interpreter exited abnormally", "err", err)
	} else {
		i.logger.Info("Interpreter exited")
	}
	i.emit(domain.SessionEvent{Type: domain.EventStopped, Err: err})
}

// Stop asks the interpreter to exit and kills it if it is still running
// after the grace period. It returns immediately; use Wait to block.
func (i *Interpreter) Stop() {
	i.mu.Lock()
	s := i.session
	if s == nil || s.stopping {
		i.mu.Unlock()
		return
	}
	s.stopping = true
	i.mu.Unlock()

	i.logger.Debug("Stopping interpreter", "pid", s.cmd.Process.Pid)

	// Best-effort: interrupt first so the interpreter can restore the terminal.
	_ = s.cmd.Process.Signal(os.Interrupt)
	if s.pty == nil {
		// End of input makes line-oriented interpreters quit as well.
		_ = s.input.Close()
	}

	time.AfterFunc(i.grace, func() {
		select {
		case <-s.done:
		default:
			i.logger.Warn("Interpreter did not exit, killing it", "pid", s.cmd.Process.Pid)
			_ = s.cmd.Process.Kill()
		}
	})
}

// Wait blocks until the current session, if any, has ended.
func (i *Interpreter) Wait(ctx context.Context) error {
	i.mu.Lock()
	s := i.session
	i.mu.Unlock()
	if s == nil {
		return nil
	}

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Running reports whether a session is active.
func (i *Interpreter) Running() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.session != nil
}

// FeedLine types a line into the game.
func (i *Interpreter) FeedLine(text string) error {
	i.mu.Lock()
	s := i.session
	if s == nil || s.stopping {
		i.mu.Unlock()
		return domain.ErrNotRunning
	}
	input := s.input
	i.mu.Unlock()

	// The write may block on a game that stops reading; the lock is not held
	// so that Stop can still end the session.
	if _, err := io.WriteString(input, text+"\n"); err != nil {
		return fmt.Errorf("failed to send input: %w", err)
	}
	return nil
}

// Metadata returns the program and story names of the current session.
func (i *Interpreter) Metadata() domain.Metadata {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.metadata
}

// Observe registers fn for session events. Events are delivered from the
// goroutine that caused them, never while the Interpreter holds its lock.
func (i *Interpreter) Observe(fn func(domain.SessionEvent)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.observers = append(i.observers, fn)
}

func (i *Interpreter) emit(ev domain.SessionEvent) {
	i.mu.Lock()
	observers := slices.Clone(i.observers)
	i.mu.Unlock()

	for _, fn := range observers {
		fn(ev)
	}
}

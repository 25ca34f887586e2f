package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/chimara/internal/logging"
	"github.com/aretw0/chimara/internal/presentation/tui"
	"github.com/aretw0/chimara/internal/testutils"
	"github.com/aretw0/chimara/pkg/adapters/memory"
	"github.com/aretw0/chimara/pkg/player"
	"github.com/aretw0/chimara/pkg/prefs"
	"github.com/aretw0/chimara/pkg/recent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedBuffer is written from the REPL and the player loop at once.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type replFixture struct {
	repl    *REPL
	player  *player.Player
	interp  *testutils.FakeInterpreter
	recents *memory.RecentStore
	out     *lockedBuffer
}

func newREPL(t *testing.T, input string) *replFixture {
	t.Helper()
	ctx := context.Background()

	store, err := prefs.Open(ctx, memory.NewSettingsStore())
	require.NoError(t, err)

	f := &replFixture{
		interp:  testutils.NewFakeInterpreter(),
		recents: memory.NewRecentStore(),
		out:     &lockedBuffer{},
	}
	tracker := recent.New(f.recents)
	lines := tui.NewLineSource(strings.NewReader(input))
	console := tui.NewConsole(f.out, lines, tui.WithHelp("# Commands"))

	f.player = player.New(f.interp, store, tracker, player.Surface{
		Prompter: console,
		Chooser:  console,
		Notifier: console,
		View:     console,
	}, player.WithVersion("9.9.9"))
	f.repl = NewREPL(f.player, console, lines, tracker, f.interp.Running, logging.NewNop())

	go func() { _ = f.player.Run(context.Background()) }()
	t.Cleanup(func() {
		f.player.Loop().Stop()
		<-f.player.Loop().Done()
	})
	return f
}

func (f *replFixture) run(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.repl.Run(ctx))
}

func TestREPL_CommandsAndAliases(t *testing.T) {
	f := newREPL(t, ":about\n:prefs\n:set wrap-width 72\n:exit\n")
	f.run(t)

	out := f.out.String()
	assert.Contains(t, out, "9.9.9")
	assert.Contains(t, out, "wrap-width")
	assert.Contains(t, out, "72")

	select {
	case <-f.player.Loop().Done():
	default:
		t.Fatal("exit should stop the player loop")
	}
}

func TestREPL_UnknownCommandSuggests(t *testing.T) {
	f := newREPL(t, ":abuot\n")
	f.run(t)

	assert.Contains(t, f.out.String(), "about")
}

func TestREPL_InputWithoutGameWarns(t *testing.T) {
	f := newREPL(t, "look\n\n")
	f.run(t)

	out := f.out.String()
	assert.Equal(t, 1, strings.Count(out, idleWarning), "blank lines are not warned about")
}

func TestREPL_ForwardsInputToGame(t *testing.T) {
	f := newREPL(t, ":open /games/zork.z5\nlook\n::colon\n:save\n")
	f.run(t)

	launches, lines := f.interp.Snapshot()
	require.Len(t, launches, 1)
	assert.Equal(t, "/games/zork.z5", launches[0].GamePath)
	assert.Equal(t, []string{"look", ":colon", "save"}, lines)
	assert.Equal(t, 1, f.interp.StopCalls, "end of input stops the running game")
}

func TestREPL_RecentListAndIndex(t *testing.T) {
	f := newREPL(t, ":recent\n")
	require.NoError(t, f.recents.Touch(context.Background(), "file:///games/zork.z5", time.Unix(10, 0)))
	f.run(t)

	assert.Contains(t, f.out.String(), "zork.z5")
}

func TestREPL_EmptyRecent(t *testing.T) {
	f := newREPL(t, ":recent\n")
	f.run(t)

	assert.Contains(t, f.out.String(), "No recent games.")
}

func TestREPL_CancelledContextExits(t *testing.T) {
	f := newREPL(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Cancellation counts as an interruption, not a failure.
	assert.NoError(t, f.repl.Run(ctx))
}

func TestREPL_SanitizesGameInput(t *testing.T) {
	f := newREPL(t, ":open /games/zork.z5\nx\x07yz\n"+strings.Repeat("a", 20)+"\n")
	f.repl.MaxInput = 10
	f.run(t)

	_, lines := f.interp.Snapshot()
	assert.Equal(t, []string{"xyz"}, lines)
	assert.Contains(t, f.out.String(), "input exceeds maximum allowed size")
}

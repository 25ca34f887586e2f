package player_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/chimara/internal/testutils"
	"github.com/aretw0/chimara/pkg/adapters/memory"
	"github.com/aretw0/chimara/pkg/domain"
	"github.com/aretw0/chimara/pkg/player"
	"github.com/aretw0/chimara/pkg/prefs"
	"github.com/aretw0/chimara/pkg/recent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	player   *player.Player
	interp   *testutils.FakeInterpreter
	prompter *testutils.ScriptedPrompter
	chooser  *testutils.FakeChooser
	notifier *testutils.FakeNotifier
	view     *testutils.FakeView
	settings *memory.SettingsStore
	recents  *memory.RecentStore
	prefs    *prefs.Store
}

func newFixture(t *testing.T, seed map[string]string) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		interp:   testutils.NewFakeInterpreter(),
		prompter: &testutils.ScriptedPrompter{},
		chooser:  &testutils.FakeChooser{},
		notifier: &testutils.FakeNotifier{},
		view:     &testutils.FakeView{},
		settings: memory.NewSettingsStore(),
		recents:  memory.NewRecentStore(),
	}
	for k, v := range seed {
		require.NoError(t, f.settings.Set(ctx, k, v))
	}

	store, err := prefs.Open(ctx, f.settings)
	require.NoError(t, err)
	f.prefs = store

	f.player = player.New(f.interp, store, recent.New(f.recents), player.Surface{
		Prompter: f.prompter,
		Chooser:  f.chooser,
		Notifier: f.notifier,
		View:     f.view,
	}, player.WithVersion("1.2.3"))

	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = f.player.Run(runCtx) }()
	t.Cleanup(func() {
		cancel()
		<-f.player.Loop().Done()
	})
	return f
}

func (f *fixture) activate(t *testing.T, source player.Source, args ...string) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return f.player.Activate(ctx, source, args...)
}

func (f *fixture) recentURIs(t *testing.T) []string {
	t.Helper()
	entries, err := f.recents.List(context.Background())
	require.NoError(t, err)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.URI
	}
	return out
}

func TestNew_InitialView(t *testing.T) {
	f := newFixture(t, map[string]string{"state.show-toolbar-default": "false"})

	assert.False(t, f.view.ToolbarVisible())
	assert.Equal(t, "Chimara", f.view.CurrentTitle())

	f = newFixture(t, nil)
	assert.True(t, f.view.ToolbarVisible())
}

func TestOpen_NothingRunning(t *testing.T) {
	f := newFixture(t, nil)
	f.chooser.Path = "/games/zork.z5"
	f.chooser.Dir = "/games"

	require.NoError(t, f.activate(t, player.SourceOpen))

	assert.Zero(t, f.prompter.PromptCount(), "no confirmation when nothing is running")
	assert.Equal(t, []string{"."}, f.chooser.StartDirs)

	launches, _ := f.interp.Snapshot()
	require.Len(t, launches, 1)
	assert.Equal(t, "/games/zork.z5", launches[0].GamePath)
	assert.Equal(t, domain.FormatZ5, launches[0].Format)
	assert.Equal(t, domain.InterpreterFrotz, launches[0].Interpreter)
	assert.True(t, launches[0].Options.IgnoreErrors)
	assert.False(t, launches[0].GraphicsFile.IsSome())

	assert.Equal(t, "/games", f.prefs.Path(prefs.LastOpenPath).OrElse(""))
	assert.Equal(t, []string{"file:///games/zork.z5"}, f.recentURIs(t))

	// The chooser starts where the last game was found.
	f.interp.Finish()
	f.chooser.Path = "/games/anchor.z8"
	require.NoError(t, f.activate(t, player.SourceOpen))
	assert.Equal(t, []string{".", "/games"}, f.chooser.StartDirs)
	assert.Equal(t, []string{"file:///games/anchor.z8", "file:///games/zork.z5"}, f.recentURIs(t))
}

func TestOpen_DeclinedKeepsSession(t *testing.T) {
	f := newFixture(t, nil)
	f.interp.Start()
	f.prompter.Answers = []bool{false}
	f.chooser.Path = "/games/zork.z5"

	require.NoError(t, f.activate(t, player.SourceOpen))

	assert.Equal(t, 1, f.prompter.PromptCount())
	assert.Empty(t, f.chooser.StartDirs, "chooser must not open after a refusal")
	assert.True(t, f.interp.Running())
	assert.Zero(t, f.interp.StopCalls)
	launches, _ := f.interp.Snapshot()
	assert.Empty(t, launches)
}

func TestOpen_AffirmedReplacesSession(t *testing.T) {
	f := newFixture(t, nil)
	f.interp.Start()
	f.prompter.Answers = []bool{true}
	f.chooser.Path = "/games/zork.z5"
	f.chooser.Dir = "/games"

	require.NoError(t, f.activate(t, player.SourceOpen))

	assert.Equal(t, 1, f.interp.StopCalls)
	assert.True(t, f.interp.Running())
	launches, _ := f.interp.Snapshot()
	require.Len(t, launches, 1)
}

func TestOpen_ChooserCancelled(t *testing.T) {
	f := newFixture(t, nil)
	f.chooser.Cancelled = true

	require.NoError(t, f.activate(t, player.SourceOpen))

	launches, _ := f.interp.Snapshot()
	assert.Empty(t, launches)
	assert.False(t, f.prefs.Path(prefs.LastOpenPath).IsSome())
	assert.Empty(t, f.recentURIs(t))
}

func TestOpen_FailureIsReported(t *testing.T) {
	f := newFixture(t, nil)
	f.interp.RunErr = errors.New("no appropriate Frotz interpreter was found")
	f.chooser.Path = "/games/zork.z5"
	f.chooser.Dir = "/games"

	require.NoError(t, f.activate(t, player.SourceOpen))

	assert.Equal(t, []string{"Could not open game file /games/zork.z5: no appropriate Frotz interpreter was found"}, f.notifier.All())
	assert.False(t, f.interp.Running())
	assert.Empty(t, f.recentURIs(t), "failed opens are not recorded")
	assert.False(t, f.prefs.Path(prefs.LastOpenPath).IsSome())
}

func TestOpen_ExplicitPathAndCompanion(t *testing.T) {
	dir := t.TempDir()
	game := filepath.Join(dir, "story.ulx")
	require.NoError(t, os.WriteFile(game, []byte("glulx"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "story.blb"), []byte("blorb"), 0644))

	f := newFixture(t, map[string]string{"preferences.interpreter-glulx": "git"})
	require.NoError(t, f.activate(t, player.SourceOpen, game))

	assert.Empty(t, f.chooser.StartDirs)
	launches, _ := f.interp.Snapshot()
	require.Len(t, launches, 1)
	assert.Equal(t, domain.InterpreterGit, launches[0].Interpreter)
	gfx, ok := launches[0].GraphicsFile.Get()
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "story.blb"), gfx)
	assert.Equal(t, dir, f.prefs.Path(prefs.LastOpenPath).OrElse(""))
}

func TestRecent_ByIndexAndURI(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.recents.Touch(ctx, "file:///games/old.z5", time.Unix(10, 0)))
	require.NoError(t, f.recents.Touch(ctx, "file:///games/new.z8", time.Unix(20, 0)))

	require.NoError(t, f.activate(t, player.SourceRecent, "2"))
	launches, _ := f.interp.Snapshot()
	require.Len(t, launches, 1)
	assert.Equal(t, "/games/old.z5", launches[0].GamePath)
	assert.Equal(t, "file:///games/old.z5", f.recentURIs(t)[0])
	assert.False(t, f.prefs.Path(prefs.LastOpenPath).IsSome(), "recent opens leave the chooser directory alone")

	f.interp.Finish()
	require.NoError(t, f.activate(t, player.SourceRecent, "file:///games/new.z8"))
	launches, _ = f.interp.Snapshot()
	require.Len(t, launches, 2)

	assert.ErrorIs(t, f.activate(t, player.SourceRecent, "9"), domain.ErrInvalidValue)
	assert.ErrorIs(t, f.activate(t, player.SourceRecent), domain.ErrInvalidValue)
}

func TestRecent_FailureUsesDisplayName(t *testing.T) {
	f := newFixture(t, nil)
	f.interp.RunErr = errors.New("boom")

	require.NoError(t, f.activate(t, player.SourceRecent, "file:///games/zork.z5"))
	assert.Equal(t, []string{"Could not open game file zork.z5: boom"}, f.notifier.All())
}

func TestForwardedCommands(t *testing.T) {
	f := newFixture(t, nil)

	assert.ErrorIs(t, f.activate(t, player.SourceSave), domain.ErrNotRunning)

	f.interp.Start()
	for _, src := range []player.Source{player.SourceUndo, player.SourceSave, player.SourceRestore, player.SourceRestart, player.SourceQuit} {
		require.NoError(t, f.activate(t, src))
	}
	_, lines := f.interp.Snapshot()
	assert.Equal(t, []string{"undo", "save", "restore", "restart", "quit"}, lines)
}

func TestStop(t *testing.T) {
	f := newFixture(t, nil)
	f.interp.Start()

	require.NoError(t, f.activate(t, player.SourceStop))
	assert.False(t, f.interp.Running())
}

func TestToolbar_DoesNotWriteBack(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.activate(t, player.SourceToolbar))
	assert.False(t, f.view.ToolbarVisible())
	require.NoError(t, f.activate(t, player.SourceToolbar, "on"))
	assert.True(t, f.view.ToolbarVisible())
	require.NoError(t, f.activate(t, player.SourceToolbar, "off"))
	assert.False(t, f.view.ToolbarVisible())
	assert.ErrorIs(t, f.activate(t, player.SourceToolbar, "sideways"), domain.ErrInvalidValue)

	values, err := f.settings.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestSetPreference(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.activate(t, player.SourceSetPreference, "wrap-width", "100"))
	val, err := f.settings.Get(context.Background(), "preferences.wrap-width")
	require.NoError(t, err)
	assert.Equal(t, "100", val)
	assert.NotEmpty(t, f.view.Preferences)

	require.NoError(t, f.activate(t, player.SourceSetPreference, "wrap-width"))
	assert.Equal(t, 80, f.prefs.Int(prefs.WrapWidth))

	assert.ErrorIs(t, f.activate(t, player.SourceSetPreference, "wrap-widht", "3"), domain.ErrUnknownKey)
	assert.ErrorIs(t, f.activate(t, player.SourceSetPreference), domain.ErrInvalidValue)
}

func TestInformationalActions(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.activate(t, player.SourcePreferences))
	assert.Len(t, f.view.Preferences, len(prefs.Specs()))
	require.NoError(t, f.activate(t, player.SourceAbout))
	assert.Equal(t, []string{"1.2.3"}, f.view.About)
	require.NoError(t, f.activate(t, player.SourceHelp))
	assert.Equal(t, 1, f.view.HelpShown)
}

func TestUnknownAction(t *testing.T) {
	f := newFixture(t, nil)

	err := f.activate(t, "opn")
	assert.ErrorIs(t, err, domain.ErrUnknownAction)
	assert.Contains(t, err.Error(), `did you mean "open"`)

	err = f.player.Do(context.Background(), player.Binding{Event: player.EventToggled, Source: player.SourceOpen})
	assert.ErrorIs(t, err, domain.ErrUnknownAction)
}

func TestBindings(t *testing.T) {
	f := newFixture(t, nil)
	bindings := f.player.Bindings()

	assert.Contains(t, bindings, player.Binding{Event: player.EventItemActivated, Source: player.SourceRecent})
	assert.Contains(t, bindings, player.Binding{Event: player.EventToggled, Source: player.SourceToolbar})
	assert.Len(t, bindings, 14)
}

func TestTitleFollowsSession(t *testing.T) {
	f := newFixture(t, nil)
	f.chooser.Path = "/games/zork.z5"
	f.chooser.Dir = "/games"

	require.NoError(t, f.activate(t, player.SourceOpen))
	assert.Eventually(t, func() bool {
		return f.view.CurrentTitle() == "Frotz - zork - Chimara"
	}, time.Second, 5*time.Millisecond)

	f.interp.SetMetadata(domain.Metadata{ProgramName: "Frotz", StoryName: "Zork I"})
	assert.Eventually(t, func() bool {
		return f.view.CurrentTitle() == "Frotz - Zork I - Chimara"
	}, time.Second, 5*time.Millisecond)

	f.interp.Finish()
	assert.Eventually(t, func() bool {
		return f.view.CurrentTitle() == "Chimara"
	}, time.Second, 5*time.Millisecond)
}

func TestLoad(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.player.Load(context.Background(), "/games/zork.z5", domain.Some("/res/zork.blb")))
	launches, _ := f.interp.Snapshot()
	require.Len(t, launches, 1)
	assert.Equal(t, "/res/zork.blb", launches[0].GraphicsFile.OrElse(""))
	assert.Empty(t, f.recentURIs(t))

	f.interp.Finish()
	f.interp.RunErr = errors.New("boom")
	err := f.player.Load(context.Background(), "/games/bad.z5", domain.None[string]())
	assert.Error(t, err)
	assert.Equal(t, []string{"Could not open game file /games/bad.z5: boom"}, f.notifier.All())
}

func TestExit_StopsSessionAndLoop(t *testing.T) {
	f := newFixture(t, nil)
	f.interp.Start()

	require.NoError(t, f.activate(t, player.SourceExit))
	assert.False(t, f.interp.Running())

	select {
	case <-f.player.Loop().Done():
	case <-time.After(time.Second):
		t.Fatal("loop still running after exit")
	}
	assert.ErrorIs(t, f.activate(t, player.SourceAbout), domain.ErrLoopStopped)
}

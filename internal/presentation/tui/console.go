package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/chimara/pkg/domain"
	"github.com/aretw0/chimara/pkg/ports"
	"github.com/muesli/termenv"
)

// Console is the terminal surface of the player: it asks questions, picks
// files and shows messages on one output, reading answers from a LineSource.
type Console struct {
	w      io.Writer
	out    *termenv.Output
	lines  *LineSource
	render func(string) (string, error)
	help   string

	mu      sync.Mutex
	toolbar bool
	title   string
}

// ConsoleOption configures the Console.
type ConsoleOption func(*Console)

// WithRenderer sets the markdown renderer used for help, about and preferences.
func WithRenderer(render func(string) (string, error)) ConsoleOption {
	return func(c *Console) {
		c.render = render
	}
}

// WithHelp sets the markdown shown by ShowHelp.
func WithHelp(markdown string) ConsoleOption {
	return func(c *Console) {
		c.help = markdown
	}
}

// NewConsole creates a console writing to w.
func NewConsole(w io.Writer, lines *LineSource, opts ...ConsoleOption) *Console {
	c := &Console{
		w:     w,
		out:   termenv.NewOutput(w),
		lines: lines,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Confirm asks p and accepts "y", "yes" or the affirmative label.
func (c *Console) Confirm(ctx context.Context, p ports.Prompt) (bool, error) {
	fmt.Fprintln(c.w, c.out.String(p.Message).Foreground(c.out.Color("#fbbf24")).Bold())
	if p.Detail != "" {
		fmt.Fprintln(c.w, p.Detail)
	}
	affirm := p.Affirm
	if affirm == "" {
		affirm = "yes"
	}
	fmt.Fprintf(c.w, "[%s/cancel] ", strings.ToLower(affirm))

	answer, err := c.lines.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	answer = strings.TrimSpace(answer)
	switch {
	case strings.EqualFold(answer, "y"), strings.EqualFold(answer, "yes"), strings.EqualFold(answer, affirm):
		return true, nil
	}
	return false, nil
}

// ChooseFile asks for a game file. Typing a directory moves there; typing
// the number of a listed game picks it; an empty line cancels.
func (c *Console) ChooseFile(ctx context.Context, title, startDir string) (string, string, bool, error) {
	dir := startDir
	for {
		games := listGames(dir)
		fmt.Fprintln(c.w, c.out.String(fmt.Sprintf("%s (%s)", title, dir)).Bold())
		for i, g := range games {
			fmt.Fprintf(c.w, "  %2d. %s\n", i+1, g)
		}
		fmt.Fprint(c.w, "File (empty to cancel): ")

		answer, err := c.lines.ReadLine(ctx)
		if err != nil {
			return "", dir, false, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return "", dir, false, nil
		}

		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(games) {
			answer = games[n-1]
		}
		path := expandHome(answer)
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}

		info, err := os.Stat(path)
		switch {
		case err != nil:
			c.Warn(fmt.Sprintf("%s: no such file", path))
		case info.IsDir():
			dir = path
		default:
			return path, filepath.Dir(path), true, nil
		}
	}
}

func listGames(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var games []string
	for _, e := range entries {
		if !e.IsDir() && domain.IsGameFile(e.Name()) {
			games = append(games, e.Name())
		}
	}
	sort.Strings(games)
	return games
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Error reports a failure.
func (c *Console) Error(ctx context.Context, message string) {
	fmt.Fprintln(c.w, c.out.String(message).Foreground(c.out.Color("#f87171")).Bold())
}

// Warn reports a problem that needs no acknowledgement.
func (c *Console) Warn(message string) {
	fmt.Fprintln(c.w, c.out.String(message).Foreground(c.out.Color("#fbbf24")))
}

// Info prints a system message.
func (c *Console) Info(message string) {
	fmt.Fprintf(c.w, ">>> %s\n", message)
}

// SetTitle updates the terminal title and prints it when it changes.
func (c *Console) SetTitle(title string) {
	c.mu.Lock()
	changed := title != c.title
	c.title = title
	c.mu.Unlock()

	if !changed {
		return
	}
	if c.out.Profile != termenv.Ascii {
		c.out.SetWindowTitle(title)
	}
	fmt.Fprintln(c.w, c.out.String("== "+title+" ==").Faint())
}

// Title returns the current title.
func (c *Console) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title
}

// Toolbar lists the commands of the toolbar.
const Toolbar = ":open  :recent  :stop  :undo  :save  :restore  :restart  :quit  :prefs  :help  :exit"

// SetToolbarVisible shows or hides the command bar.
func (c *Console) SetToolbarVisible(visible bool) {
	c.mu.Lock()
	c.toolbar = visible
	c.mu.Unlock()
	if visible {
		c.ShowToolbar()
	}
}

// ShowToolbar prints the command bar if it is visible.
func (c *Console) ShowToolbar() {
	c.mu.Lock()
	visible := c.toolbar
	c.mu.Unlock()
	if visible {
		fmt.Fprintln(c.w, c.out.String(Toolbar).Reverse())
	}
}

// ToolbarVisible reports whether the command bar is shown.
func (c *Console) ToolbarVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toolbar
}

// ShowPreferences prints the preference table.
func (c *Console) ShowPreferences(entries []ports.PreferenceView) {
	var b strings.Builder
	b.WriteString("# Preferences\n\n| Key | Value | Default | Description |\n|---|---|---|---|\n")
	for _, e := range entries {
		val := e.Value
		if !e.Set {
			val = "_" + orDash(e.Value) + "_"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", e.Key, val, orDash(e.Default), e.Description)
	}
	b.WriteString("\nChange a value with `:set KEY VALUE`; `:set KEY` restores the default.\n")
	c.markdown(b.String())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// ShowAbout prints the about box.
func (c *Console) ShowAbout(version string) {
	c.markdown(fmt.Sprintf("# %s %s\n\nA player for interactive fiction.\n\nGames run in Frotz, Nitfol, Glulxe or Git.\n", domain.AppName, version))
}

// ShowHelp prints the help text.
func (c *Console) ShowHelp() {
	c.markdown(c.help)
}

// ShowRecent prints the recent games, numbered for :recent N.
func (c *Console) ShowRecent(names []string) {
	if len(names) == 0 {
		c.Info("No recent games.")
		return
	}
	var b strings.Builder
	b.WriteString("# Recent games\n\n")
	for i, n := range names {
		fmt.Fprintf(&b, "%d. %s\n", i+1, n)
	}
	c.markdown(b.String())
}

// Prompt prints the command prompt.
func (c *Console) Prompt() {
	fmt.Fprint(c.w, "> ")
}

func (c *Console) markdown(md string) {
	if c.render != nil {
		if rendered, err := c.render(md); err == nil {
			fmt.Fprint(c.w, rendered)
			return
		}
	}
	fmt.Fprintln(c.w, strings.TrimSpace(md))
}

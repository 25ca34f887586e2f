package ports

import "context"

// Prompt is a blocking confirmation question.
type Prompt struct {
	Message string
	Detail  string
	// Affirm labels the affirmative choice, e.g. "Open".
	Affirm string
}

// Prompter asks the user to confirm an action.
type Prompter interface {
	// Confirm returns true only for an explicit affirmative answer.
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// Notifier reports errors to the user.
type Notifier interface {
	Error(ctx context.Context, message string)
}

// FileChooser asks the user for a game file.
type FileChooser interface {
	// ChooseFile returns the chosen path and the directory the chooser ended in.
	// ok is false when the user cancelled.
	ChooseFile(ctx context.Context, title, startDir string) (path, dir string, ok bool, err error)
}

// PreferenceView is one row of the preferences window.
type PreferenceView struct {
	Key         string
	Value       string
	Default     string
	Set         bool
	Description string
}

// View is the window surface the player controls.
type View interface {
	SetTitle(title string)
	SetToolbarVisible(visible bool)
	ShowPreferences(entries []PreferenceView)
	ShowAbout(version string)
	ShowHelp()
}

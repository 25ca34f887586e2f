/*
Package ports defines the driven ports (interfaces) of the Chimara player.

These interfaces decouple the player controller from the interpreter program,
the settings backend, the recent-files service and the terminal surface, so
that each can be swapped for files, Redis, or in-memory fakes.

# Key Interfaces

  - Interpreter: runs one session of a story file and reports its metadata.
  - SettingsBackend: flat key/value persistence for preferences.
  - RecentStore: a recency-ordered list of opened game URIs.
  - Prompter, Notifier, FileChooser and View: the user-facing surface.
*/
package ports

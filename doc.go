/*
Package chimara is a terminal player for interactive fiction.

It drives an external interpreter program (Frotz, Nitfol, Glulxe or Git) as a
child process and wraps it in a small application shell: a command prompt for
opening games, a recent-games list, persistent preferences and a window title
that follows the running story.

# Layout

The player is built the hexagonal way. The core lives under pkg:

  - pkg/domain: game formats, interpreters, session events and sentinel errors.
  - pkg/ports: the interfaces the core depends on (interpreter, settings,
    recent list, prompts and the view).
  - pkg/guard, pkg/resource, pkg/prefs, pkg/recent: the session guard, the
    companion resource resolver, the preference store and the recent tracker.
  - pkg/player: the event loop and the action table that ties them together.

Adapters implement the ports: pkg/adapters/process runs interpreters,
pkg/adapters/file and pkg/adapters/redis persist settings and the recent list,
and pkg/adapters/memory backs the tests.

# Usage

	chimara [game-file [resource-file]]

Lines typed at the prompt go to the running game. Lines starting with ':'
are player commands, for example ":open", ":recent 2" or ":set wrap-width 72".
*/
package chimara

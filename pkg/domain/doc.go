/*
Package domain contains the core models of the Chimara player.

It describes what the player knows about a game session without any I/O: the
session lifecycle, the game formats and interpreters that can run them, the
metadata an interpreter reports while running, and the optional values used
at the settings boundary. Adapters and the player controller depend on this
package; it depends on nothing but the standard library.

# Key Entities

  - SessionState: whether an interpreter session is Running or NotRunning.
  - Decision: the outcome of asking to replace a running session.
  - Format and Interpreter: what kind of story file a game is and which program runs it.
  - Launch: everything an interpreter needs to start a session.
  - Metadata: program and story names reported by a session, used for the window title.
  - Optional: a Some/None sum type for values that may be absent.
*/
package domain

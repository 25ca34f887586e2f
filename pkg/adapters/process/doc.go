// Package process runs interactive-fiction interpreters as child processes.
//
// Which program implements each interpreter is described by a Registry,
// loaded from interpreters.yaml. Input reaches the game through FeedLine;
// output is copied to the configured writer. With WithPTY the program gets a
// pseudo-terminal, otherwise plain pipes.
package process

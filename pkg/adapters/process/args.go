package process

import (
	"fmt"

	"github.com/aretw0/chimara/pkg/domain"
)

// BuildArgs returns the command-line arguments for a launch, game file last.
// Only the Z-machine interpreters take options; Glulx interpreters get the game alone.
func BuildArgs(launch domain.Launch) []string {
	var args []string
	opts := launch.Options

	switch launch.Interpreter {
	case domain.InterpreterFrotz:
		if opts.Piracy {
			args = append(args, "-P")
		}
		if opts.Tandy {
			args = append(args, "-t")
		}
		if opts.ExpandAbbreviations {
			args = append(args, "-x")
		}
		if opts.IgnoreErrors {
			args = append(args, "-i")
		}
		if opts.InterpreterNumber != 0 {
			args = append(args, fmt.Sprintf("-I%d", opts.InterpreterNumber))
		}
		if seed, ok := opts.RandomSeed.Get(); ok {
			args = append(args, fmt.Sprintf("-s%d", seed))
		}
	case domain.InterpreterNitfol:
		if opts.Piracy {
			args = append(args, "-pirate")
		}
		if opts.Tandy {
			args = append(args, "-tandy")
		}
		if !opts.ExpandAbbreviations {
			args = append(args, "-no-expand")
		}
		if opts.IgnoreErrors {
			args = append(args, "-ignore")
		}
		if !opts.TypoCorrection {
			args = append(args, "-no-spell")
		}
		if opts.InterpreterNumber != 0 {
			args = append(args, fmt.Sprintf("-terpnum%d", opts.InterpreterNumber))
		}
		if seed, ok := opts.RandomSeed.Get(); ok {
			args = append(args, fmt.Sprintf("-random%d", seed))
		}
	}

	return append(args, launch.GamePath)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/chimara/internal/cli"
	"github.com/aretw0/chimara/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chimara [game-file [resource-file]]",
	Short: "Chimara is a terminal player for interactive fiction",
	Long: `Chimara plays Z-code and Glulx games through an external interpreter
(frotz, nitfol, glulxe or git). With no game file it starts with no game
loaded; type :open to pick one and :help for the other commands.`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := flagOptions(cmd)
		if len(args) > 0 {
			opts.GamePath = args[0]
		}
		if len(args) > 1 {
			opts.ResourcePath = args[1]
		}
		return cli.Play(opts)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Settings file (overrides ./chimara-config and ~/.chimara/config)")
	rootCmd.PersistentFlags().String("redis", "", "Keep settings and recent games in Redis (redis:// URL)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log to stderr")

	rootCmd.Flags().String("data-dir", "", "Directory holding help.md and style.json")
	rootCmd.Flags().String("interpreters", "", "Interpreter registry file")
	rootCmd.Flags().Bool("pty", false, "Run the interpreter on a pseudo-terminal")
}

func flagOptions(cmd *cobra.Command) cli.Options {
	var opts cli.Options
	opts.ConfigFile, _ = cmd.Flags().GetString("config")
	opts.RedisURL, _ = cmd.Flags().GetString("redis")
	opts.Debug, _ = cmd.Flags().GetBool("debug")
	opts.DataDir, _ = cmd.Flags().GetString("data-dir")
	opts.Interpreters, _ = cmd.Flags().GetString("interpreters")
	opts.PTY, _ = cmd.Flags().GetBool("pty")
	return opts
}

// openStores opens the settings and recent backends selected by the flags.
func openStores(cmd *cobra.Command) (*cli.Stores, error) {
	cfg, err := flagOptions(cmd).Resolve()
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return cli.OpenStores(ctx, cfg, logging.ForDebug(cfg.Debug))
}

package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/chimara"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of chimara",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "chimara version %s\n", strings.TrimSpace(chimara.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

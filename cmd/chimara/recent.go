package main

import (
	"fmt"
	"strconv"

	"github.com/aretw0/chimara/pkg/recent"
	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Manage the recent games list",
}

var recentLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recent games, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer stores.Close()

		entries, err := stores.Recent.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No recent games.")
			return nil
		}
		for i, e := range entries {
			path, err := recent.PathFromURI(e.URI)
			if err != nil {
				path = e.URI
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, path)
		}
		return nil
	},
}

var recentRmCmd = &cobra.Command{
	Use:   "rm <index|path|uri>...",
	Short: "Forget one or more recent games",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer stores.Close()

		entries, err := stores.Recent.List(cmd.Context())
		if err != nil {
			return err
		}
		// Resolve every index before removing anything so that they refer
		// to the list as printed.
		uris := make([]string, 0, len(args))
		for _, arg := range args {
			uri, err := recentTarget(arg, len(entries), func(i int) string { return entries[i].URI })
			if err != nil {
				return err
			}
			uris = append(uris, uri)
		}
		for _, uri := range uris {
			if err := stores.Recent.Remove(cmd.Context(), uri); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed '%s'\n", recent.DisplayName(uri))
		}
		return nil
	},
}

var recentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every recent game",
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer stores.Close()
		return stores.Recent.Clear(cmd.Context())
	},
}

// recentTarget turns a 1-based index, a file path or a URI into a URI.
func recentTarget(arg string, n int, at func(int) string) (string, error) {
	if i, err := strconv.Atoi(arg); err == nil {
		if i < 1 || i > n {
			return "", fmt.Errorf("no recent game number %d", i)
		}
		return at(i - 1), nil
	}
	if _, err := recent.PathFromURI(arg); err == nil {
		return arg, nil
	}
	return recent.URIFromPath(arg)
}

func init() {
	rootCmd.AddCommand(recentCmd)
	recentCmd.AddCommand(recentLsCmd, recentRmCmd, recentClearCmd)
}

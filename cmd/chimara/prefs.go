package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/chimara/pkg/prefs"
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect and change preferences",
	Long:  `List, read, set and reset the player's preferences without starting a game.`,
}

var prefsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List every preference with its value and default",
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer stores.Close()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE\tDEFAULT\tSET")
		for _, e := range stores.Prefs.Entries() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", e.Key, dash(e.Value), dash(e.Default), e.Set)
		}
		return w.Flush()
	},
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := prefs.ParseKey(args[0])
		if err != nil {
			return err
		}
		stores, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer stores.Close()

		fmt.Fprintln(cmd.OutOrStdout(), stores.Prefs.String(key))
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a preference",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := prefs.ParseKey(args[0])
		if err != nil {
			return err
		}
		stores, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer stores.Close()

		if err := stores.Prefs.Set(cmd.Context(), key, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, stores.Prefs.String(key))
		return nil
	},
}

var prefsUnsetCmd = &cobra.Command{
	Use:   "unset <key>...",
	Short: "Reset preferences to their defaults",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer stores.Close()

		for _, name := range args {
			key, err := prefs.ParseKey(name)
			if err != nil {
				return err
			}
			if err := stores.Prefs.Unset(cmd.Context(), key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset '%s'\n", key)
		}
		return nil
	},
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsLsCmd, prefsGetCmd, prefsSetCmd, prefsUnsetCmd)
}

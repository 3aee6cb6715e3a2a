package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "inspect or manage the local mod metadata cache"}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "purge every cached mod metadata entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.cache.Purge(); err != nil {
				return fmt.Errorf("purge cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	}
	cmd.AddCommand(clear)
	return cmd
}

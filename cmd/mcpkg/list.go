package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcpkg/internal/activate"
)

func newListCmd() *cobra.Command {
	var targetDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list mods previously activated into a target installation",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := activate.ReadManifest(targetDir)
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no mods activated")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-12s %s\n", e.Slug, e.ModVersion, e.FileName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&targetDir, "target", ".", "target Minecraft installation directory")
	return cmd
}

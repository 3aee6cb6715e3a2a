package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProviderCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "provider", Short: "inspect the seeded provider catalog"}

	list := &cobra.Command{
		Use:   "list",
		Short: "list every seeded provider and its capability flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			for _, p := range a.reg.Providers() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-32s flags=0x%02x\n", p.Name, p.BaseURL.String(), p.Flags)
			}
			return nil
		},
	}
	cmd.AddCommand(list)
	return cmd
}

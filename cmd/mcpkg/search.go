package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mcpkg/internal/mc"
)

func newSearchCmd() *cobra.Command {
	var providerName string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "search a provider's package index for mods matching query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, ok := mc.ProviderIDFromString(providerName)
			if !ok {
				return fmt.Errorf("unknown provider %q", providerName)
			}
			p, ok := findProvider(a, id)
			if !ok || p.Ops == nil {
				return fmt.Errorf("provider %q has no backend attached", providerName)
			}

			ctx := context.Background()
			if err := p.Ops.Init(ctx); err != nil {
				return fmt.Errorf("init provider %s: %w", providerName, err)
			}
			index, err := p.Ops.FetchPackagesIndex(ctx)
			if err != nil {
				return fmt.Errorf("fetch packages index: %w", err)
			}

			query := strings.ToLower(args[0])
			matched := 0
			for _, mod := range index {
				if !strings.Contains(strings.ToLower(mod.Slug), query) &&
					!strings.Contains(strings.ToLower(mod.Name), query) &&
					!strings.Contains(strings.ToLower(mod.Summary), query) {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-28s %s\n", mod.Slug, mod.Name, mod.Summary)
				matched++
			}
			if matched == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no matches")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&providerName, "provider", "modrinth", "provider to search (modrinth, curseforge, hangar, local)")
	return cmd
}

func findProvider(a *app, id mc.ProviderID) (mc.Provider, bool) {
	for _, p := range a.reg.Providers() {
		if p.ID == id {
			return p, true
		}
	}
	return mc.Provider{}, false
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mcpkg/internal/activate"
	"mcpkg/internal/mc"
	"mcpkg/internal/resolve"
)

func newInstallCmd() *cobra.Command {
	var providerName, loaderName, mcVersion, targetDir string

	cmd := &cobra.Command{
		Use:   "install <slug>",
		Short: "resolve a mod's dependencies and activate them into a target installation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			providerID, ok := mc.ProviderIDFromString(providerName)
			if !ok {
				return fmt.Errorf("unknown provider %q", providerName)
			}
			if err := a.reg.SetCurrentProviderByID(providerID); err != nil {
				return fmt.Errorf("select provider %s: %w", providerName, err)
			}
			p, _ := a.reg.CurrentProvider()
			if p.Ops == nil {
				return fmt.Errorf("provider %q has no backend attached", providerName)
			}

			ctx := context.Background()
			if err := p.Ops.Init(ctx); err != nil {
				return fmt.Errorf("init provider %s: %w", providerName, err)
			}

			if loaderName != "" {
				loaderID, ok := mc.LoaderIDFromString(loaderName)
				if !ok {
					return fmt.Errorf("unknown loader %q", loaderName)
				}
				if err := a.reg.SetCurrentLoaderByID(loaderID); err != nil {
					return fmt.Errorf("select loader %s: %w", loaderName, err)
				}
			}

			if mcVersion != "" {
				code := a.reg.CodenameFromVersionIn(mcVersion)
				if code != mc.CodenameUnknown {
					if err := a.reg.SetCurrentVersionFamilyByID(code); err != nil {
						return fmt.Errorf("select version family for %s: %w", mcVersion, err)
					}
				}
			}

			root := mc.ModRef{ProviderID: providerID, Slug: slug, VersionConstraint: mcVersion}
			mods, err := resolve.Resolve(ctx, a.reg, root)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", slug, err)
			}

			mods = filterByLoader(mods, loaderName)

			report, err := activate.Activate(ctx, a.reg, a.dl, targetDir, mods)
			if err != nil {
				return fmt.Errorf("activate: %w", err)
			}

			for _, e := range report.Activated {
				fmt.Fprintf(cmd.OutOrStdout(), "installed %-24s %s -> %s\n", e.Slug, e.ModVersion, e.FileName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&providerName, "provider", "modrinth", "provider to resolve against")
	cmd.Flags().StringVar(&loaderName, "loader", "", "restrict installed mods to this loader (fabric, forge, quilt, paper, ...)")
	cmd.Flags().StringVar(&mcVersion, "mc", "", "target Minecraft version, e.g. 1.21.4")
	cmd.Flags().StringVar(&targetDir, "target", ".", "target Minecraft installation directory")
	return cmd
}

// filterByLoader drops resolved mods built for a different loader than the
// one requested; a mod with LoaderUnknown is left in (it makes no loader
// claim, so nothing to conflict with).
func filterByLoader(mods []mc.ModMetadata, loaderName string) []mc.ModMetadata {
	if loaderName == "" {
		return mods
	}
	wanted, ok := mc.LoaderIDFromString(loaderName)
	if !ok {
		return mods
	}
	out := make([]mc.ModMetadata, 0, len(mods))
	for _, m := range mods {
		if m.LoaderID == mc.LoaderUnknown || m.LoaderID == wanted {
			out = append(out, m)
		}
	}
	return out
}

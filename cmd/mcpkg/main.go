// Command mcpkg is the mod package manager CLI: search provider indexes,
// resolve and activate mods into a target Minecraft installation, and
// inspect the local cache and provider catalog. Composed the way
// cmd/synnergy/main.go builds its root command plus subcommands, one file
// per command group.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "mcpkg",
		Short: "a package manager for Minecraft mods",
	}
	root.AddCommand(newSearchCmd())
	root.AddCommand(newInstallCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newProviderCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

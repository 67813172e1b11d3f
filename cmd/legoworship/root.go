package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the release of the command.
const version = "2021.12.2"

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:           "legoworship",
		Short:         "Song catalog tools for the worship team site",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "legoworship %s\n", version)
			fmt.Fprintln(cmd.OutOrStdout(), "Run 'legoworship --help' to see the available commands.")
			return nil
		},
	}
	rootCmd.SetVersionTemplate("legoworship version {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "legoworship.toml", "Configuration file path")
	pf.StringVar(&flags.envFile, "env", ".env", "Environment file with LEGOWORSHIP_* variables")
	pf.StringVar(&flags.catalog, "catalog", "", "Catalog CSV (overrides config)")
	pf.BoolVar(&flags.legacy, "legacy", false, "Read the catalog as legacy name,key,hymn_ref,sheet_type CSV")
	pf.StringVar(&flags.libraryRoot, "library", "", "Resource library root (overrides config)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Show verbose output")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newSortCommand(ctx))
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newInfoCommand(ctx))
	rootCmd.AddCommand(newResourcesCommand(ctx))
	rootCmd.AddCommand(newPagesCommand(ctx))
	rootCmd.AddCommand(newPlaylistCommand(ctx))
	rootCmd.AddCommand(newTagCommand(ctx))
	rootCmd.AddCommand(newThumbsCommand(ctx))
	rootCmd.AddCommand(newBuildCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "legoworship version %s\n", version)
		},
	}
}

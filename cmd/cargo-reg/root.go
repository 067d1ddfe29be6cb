package main

import (
	"github.com/spf13/cobra"
)

const rootAbout = "This command allows you to manage alternative registries in .cargo/config file"

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "cargo-reg",
		Short:         "Manage alternative registries in cargo config",
		Long:          rootAbout,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, ctx)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&ctx.global, "global", "g", false, "Operate on a global config only")
	flags.BoolVarP(&ctx.local, "local", "l", false, "Operate on a local config only")
	flags.BoolVarP(&ctx.verbose, "verbose", "v", false, "Verbose mode")
	flags.StringVarP(&ctx.configFlag, "config", "c", "", "Path to the config file to operate on")
	flags.StringVar(&ctx.logFormat, "log-format", "console", "Log output format (console or json)")
	rootCmd.MarkFlagsMutuallyExclusive("config", "global")
	rootCmd.MarkFlagsMutuallyExclusive("config", "local")

	rootCmd.AddCommand(newAddCommand(ctx))
	rootCmd.AddCommand(newRemoveCommand(ctx))
	rootCmd.AddCommand(newRenameCommand(ctx))
	rootCmd.AddCommand(newGetCommand(ctx))
	rootCmd.AddCommand(newSetCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))

	return rootCmd
}

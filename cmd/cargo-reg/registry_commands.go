package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cargoreg/internal/config"
	"cargoreg/internal/registry"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <alias> <url>",
		Short: "Add a new `<ALIAS> => <INDEX_URL>`",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, url := args[0], args[1]
			if err := registry.ValidateIndexURL(url); err != nil {
				return err
			}
			err := ctx.edit(cmd, func(editor *registry.Editor) error {
				return editor.Add(name, url)
			})
			if err != nil {
				return err
			}
			ctx.logger.Info("added registry", "alias", name, "url", url)
			return nil
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <alias>",
		Short: "Remove an existing <ALIAS>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var url string
			err := ctx.edit(cmd, func(editor *registry.Editor) error {
				var err error
				url, err = editor.Remove(name)
				return err
			})
			if err != nil {
				return err
			}
			ctx.logger.Info("removed registry", "alias", name, "url", url)
			return nil
		},
	}
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename an existing <ALIAS>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldName, newName := args[0], args[1]
			err := ctx.edit(cmd, func(editor *registry.Editor) error {
				return editor.Rename(oldName, newName)
			})
			if err != nil {
				return err
			}
			ctx.logger.Info("renamed registry", "from", oldName, "to", newName)
			return nil
		},
	}
}

func newGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <alias>",
		Short: "Get <INDEX_URL> by <ALIAS>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := ctx.target()
			if err != nil {
				return err
			}
			editor, err := ctx.read(path)
			if err != nil {
				return err
			}
			url, err := editor.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}

func newSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <alias> <url>",
		Short: "Set a new <INDEX_URL> by <ALIAS>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, url := args[0], args[1]
			if err := registry.ValidateIndexURL(url); err != nil {
				return err
			}
			var old string
			err := ctx.edit(cmd, func(editor *registry.Editor) error {
				var err error
				old, err = editor.Set(name, url)
				return err
			})
			if err != nil {
				return err
			}
			ctx.logger.Info("updated registry", "alias", name, "old_url", old, "url", url)
			return nil
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, ctx)
		},
	}
}

func runList(cmd *cobra.Command, ctx *commandContext) error {
	path, loc, err := ctx.target()
	if err != nil {
		return err
	}
	editor, err := ctx.read(path)
	if err != nil {
		return err
	}
	registries := editor.List()

	// Without an explicit file, the default location lists the global
	// config overlaid by the local one.
	if loc == config.Merged && ctx.configFlag == "" {
		globalPath, err := config.Locate(config.Global)
		if err != nil {
			return fmt.Errorf("locate global config: %w", err)
		}
		if globalPath != path {
			global, err := ctx.read(globalPath)
			if err != nil {
				return err
			}
			registries = registry.Merge(global.List(), registries)
		}
	}

	printRegistries(cmd.OutOrStdout(), registries)
	return nil
}

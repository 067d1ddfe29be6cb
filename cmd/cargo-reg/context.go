package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"cargoreg/internal/config"
	"cargoreg/internal/logging"
	"cargoreg/internal/registry"
)

type commandContext struct {
	global     bool
	local      bool
	verbose    bool
	configFlag string
	logFormat  string

	logger *slog.Logger
}

func (c *commandContext) init(cmd *cobra.Command) error {
	level := "warn"
	if c.verbose {
		level = "info"
	}
	logger, err := logging.New(logging.Options{
		Level:  level,
		Format: c.logFormat,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	c.logger = logging.NewComponentLogger(logger, "cargo-reg")
	return nil
}

// target resolves the config file a command operates on.
func (c *commandContext) target() (string, config.Location, error) {
	loc, err := config.NewLocation(c.global, c.local)
	if err != nil {
		return "", loc, err
	}

	var path string
	if explicit := strings.TrimSpace(c.configFlag); explicit != "" {
		path, err = config.ExpandPath(explicit)
		if err != nil {
			return "", loc, fmt.Errorf("resolve config path: %w", err)
		}
	} else {
		path, err = config.Locate(loc)
		if err != nil {
			return "", loc, fmt.Errorf("locate config: %w", err)
		}
	}
	c.logger.Info("config", "path", path, "location", loc.String())
	return path, loc, nil
}

// edit runs op against the target config and persists the result when op
// succeeds.
func (c *commandContext) edit(cmd *cobra.Command, op func(*registry.Editor) error) error {
	path, _, err := c.target()
	if err != nil {
		return err
	}

	file, err := config.Open(cmd.Context(), path)
	if err != nil {
		return err
	}
	defer file.Close()

	editor, err := registry.Load(file.Contents())
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if err := op(editor); err != nil {
		return err
	}
	return file.Write(editor.String())
}

func (c *commandContext) read(path string) (*registry.Editor, error) {
	text, err := config.Read(path)
	if err != nil {
		return nil, err
	}
	editor, err := registry.Load(text)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return editor, nil
}

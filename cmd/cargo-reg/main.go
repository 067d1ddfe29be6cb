package main

import (
	"context"
	"errors"
	"os"
)

func main() {
	cmd := newRootCommand()
	cmd.SetArgs(cargoArgs(os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			printError(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// cargoArgs drops the subcommand name cargo passes to external subcommands,
// so `cargo reg list` and `cargo-reg list` behave the same.
func cargoArgs(args []string) []string {
	if len(args) > 0 && args[0] == "reg" {
		return args[1:]
	}
	return args
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// errorLines returns the top-level message followed by every cause in the
// wrap chain whose text is not already part of an earlier line.
func errorLines(err error) []string {
	if err == nil {
		return nil
	}
	lines := []string{err.Error()}
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		msg := cause.Error()
		if msg == "" || shown(lines, msg) {
			continue
		}
		lines = append(lines, msg)
	}
	return lines
}

func shown(lines []string, msg string) bool {
	for _, line := range lines {
		if strings.Contains(line, msg) {
			return true
		}
	}
	return false
}

// printError renders err and its causes the way cargo reports failures.
func printError(w io.Writer, err error) {
	lines := errorLines(err)
	if len(lines) == 0 {
		return
	}
	errLabel, causeLabel := "error:", "Caused by:"
	if shouldColorize(w) {
		errLabel = text.Colors{text.FgRed, text.Bold}.Sprint(errLabel)
		causeLabel = text.Bold.Sprint(causeLabel)
	}
	fmt.Fprintf(w, "%s %s\n", errLabel, lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintf(w, "%s %s\n", causeLabel, line)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

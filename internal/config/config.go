package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Location selects which cargo config a command operates on.
type Location int

const (
	// Merged edits the local config and lists global entries overlaid by
	// local ones.
	Merged Location = iota
	// Global targets $CARGO_HOME/config.toml (or ~/.cargo/config.toml).
	Global
	// Local targets $PWD/.cargo/config.toml.
	Local
)

func (l Location) String() string {
	switch l {
	case Global:
		return "global"
	case Local:
		return "local"
	default:
		return "merged"
	}
}

// ErrConflictingLocations is returned when both --global and --local are set.
var ErrConflictingLocations = errors.New("cannot use both --global and --local. " +
	"Consider to use one of them or use nothing.\n\n" +
	"If one use nothing cargo-reg assumes using --local for all the commands except list(). " +
	"List will show the merge of global and local configs.")

// NewLocation maps the CLI location flags to a Location.
func NewLocation(global, local bool) (Location, error) {
	switch {
	case global && local:
		return Merged, ErrConflictingLocations
	case global:
		return Global, nil
	case local:
		return Local, nil
	}
	return Merged, nil
}

// Locate returns the config file path for loc. The file and its directory
// may not exist yet.
func Locate(loc Location) (string, error) {
	dir, err := locationDir(loc)
	if err != nil {
		return "", err
	}
	return resolveConfigFile(dir)
}

func locationDir(loc Location) (string, error) {
	if loc == Global {
		if cargoHome, ok := os.LookupEnv(CargoHomeEnv); ok && strings.TrimSpace(cargoHome) != "" {
			return expandPath(strings.TrimSpace(cargoHome))
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, cargoDirName), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return filepath.Join(wd, cargoDirName), nil
}

func resolveConfigFile(dir string) (string, error) {
	for _, name := range []string{legacyConfigName, configName} {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				continue
			}
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat config: %w", err)
		}
	}
	return filepath.Join(dir, configName), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath applies tilde expansion and makes the path absolute.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

package testsupport

import (
	"path/filepath"
	"testing"
)

// Env is an isolated home directory and working directory for one test.
type Env struct {
	Home      string
	CargoHome string
	WorkDir   string
}

// EnvOption customizes the generated environment.
type EnvOption func(*Env)

// NewEnv points HOME at a temp directory, clears CARGO_HOME and changes into
// a fresh working directory. Options run before the environment is applied.
func NewEnv(t *testing.T, opts ...EnvOption) *Env {
	t.Helper()

	base := t.TempDir()
	env := &Env{
		Home:    filepath.Join(base, "home"),
		WorkDir: filepath.Join(base, "project"),
	}
	for _, opt := range opts {
		opt(env)
	}

	WriteFile(t, filepath.Join(env.Home, ".keep"), "")
	WriteFile(t, filepath.Join(env.WorkDir, ".keep"), "")
	t.Setenv("HOME", env.Home)
	t.Setenv("CARGO_HOME", env.CargoHome)
	t.Chdir(env.WorkDir)
	return env
}

// WithCargoHome sets CARGO_HOME to a directory next to the home directory.
func WithCargoHome() EnvOption {
	return func(e *Env) {
		e.CargoHome = filepath.Join(filepath.Dir(e.Home), "cargo-home")
	}
}

// GlobalDir returns the directory holding the global cargo config.
func (e *Env) GlobalDir() string {
	if e.CargoHome != "" {
		return e.CargoHome
	}
	return filepath.Join(e.Home, ".cargo")
}

// LocalDir returns the directory holding the project cargo config.
func (e *Env) LocalDir() string {
	return filepath.Join(e.WorkDir, ".cargo")
}

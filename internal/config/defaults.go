package config

import "time"

const (
	// CargoHomeEnv overrides the global cargo directory.
	CargoHomeEnv = "CARGO_HOME"

	cargoDirName     = ".cargo"
	legacyConfigName = "config"
	configName       = "config.toml"

	lockRetryDelay = 50 * time.Millisecond
)

// LockTimeout bounds how long Open waits for another cargo-reg process to
// release the config.
var LockTimeout = 5 * time.Second

// Package config loads this module's ambient configuration: the
// per-user state directory, log verbosity, and a best-effort .env
// loader. Grounded on the teacher's top-level env.go (godotenv search
// up to 3 parent directories), generalized from a library-wide init()
// to an explicit LoadDotEnv() the CLI entrypoint calls once.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// StateDirEnv overrides the default per-user state directory.
const StateDirEnv = "AGENT_DESKTOP_STATE_DIR"

// LogLevelEnv sets the verbosity of pkg/logging's package logger.
const LogLevelEnv = "AGENT_DESKTOP_LOG_LEVEL"

// DefaultStateDirName is the directory created under $HOME, mode 0700
// on POSIX, per spec.md §6.
const DefaultStateDirName = ".agent-desktop"

// LoadDotEnv best-effort loads a .env file from the working directory
// or up to 3 parent directories. Missing files are not an error; this
// mirrors the teacher's LoadEnv so local development can still set
// AGENT_DESKTOP_* vars without exporting them.
func LoadDotEnv() {
	if tryLoad(".env") {
		return
	}
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 3; i++ {
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
		if tryLoad(filepath.Join(dir, ".env")) {
			return
		}
	}
}

func tryLoad(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	return godotenv.Load(path) == nil
}

// StateDir returns the per-user state directory: AGENT_DESKTOP_STATE_DIR
// if set, else ${HOME}/.agent-desktop.
func StateDir() (string, error) {
	if v := os.Getenv(StateDirEnv); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultStateDirName), nil
}

// LogLevel returns the raw AGENT_DESKTOP_LOG_LEVEL value, empty if
// unset; pkg/logging interprets it.
func LogLevel() string {
	return os.Getenv(LogLevelEnv)
}

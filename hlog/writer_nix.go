//go:build !windows
// +build !windows

package hlog

import (
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
)

func IsTerminal() bool {
	return isatty.IsTerminal(os.Stderr.Fd())
}

func getLogDir() string {
	// If running as root, use /var/log
	if os.Geteuid() == 0 {
		return "/var/log/ha-shelly-export"
	}

	// Otherwise use XDG_STATE_HOME or ~/.local/state
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "ha-shelly-export", "logs")
}

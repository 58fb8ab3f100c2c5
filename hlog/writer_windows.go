//go:build windows
// +build windows

package hlog

import (
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
)

func IsTerminal() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

func getLogDir() string {
	appData := os.Getenv("LOCALAPPDATA")
	if appData == "" {
		appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
	}
	return filepath.Join(appData, "ha-shelly-export", "logs")
}

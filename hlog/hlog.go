package hlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger logr.Logger

func LogToStderr() bool {
	return os.Getenv("HA_EXPORT_LOG") == "stderr"
}

func Init(verbose bool) {
	InitWithLevel(verbose, zerolog.ErrorLevel)
}

// InitWithLevel initializes logging with a specific default level. Verbose
// raises the level to info; on a terminal logs go to stderr through the
// console writer, otherwise to a rotating file under the state directory.
func InitWithLevel(verbose bool, defaultLevel zerolog.Level) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"

	var w io.Writer

	isTerminal := IsTerminal()
	if LogToStderr() || isTerminal {
		w = os.Stderr
	} else {
		var err error
		w, err = logWriter()
		if err != nil {
			panic(err)
		}
	}

	zl := zerolog.New(w)

	if isTerminal {
		zl = zl.Output(zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !isColorTerminal(),
			TimeFormat: time.RFC3339,
		})
	}

	level := defaultLevel
	if verbose {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zl = zl.Level(level)

	zl = zl.With().Caller().Timestamp().Logger()
	Logger = zerologr.New(&zl)
	Logger.V(1).Info("Initialized", "level", level.String(), "verbose", verbose)
}

func isColorTerminal() bool {
	if term := os.Getenv("TERM"); term == "dumb" {
		return false
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if _, exists := os.LookupEnv("CLICOLOR_FORCE"); exists {
		return true
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if term := os.Getenv("TERM"); term != "" {
		if strings.HasSuffix(term, "-256color") ||
			strings.HasSuffix(term, "-color") ||
			strings.HasPrefix(term, "xterm") ||
			strings.HasPrefix(term, "screen") ||
			strings.HasPrefix(term, "vt100") ||
			strings.HasPrefix(term, "ansi") {
			return true
		}
	}
	return IsTerminal()
}

func logWriter() (io.Writer, error) {
	if LogToStderr() {
		return os.Stderr, nil
	}

	// Under systemd, stderr already reaches journald
	if os.Getenv("JOURNAL_STREAM") != "" || os.Getenv("INVOCATION_ID") != "" {
		return os.Stderr, nil
	}

	logDir := getLogDir()
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	logPath := filepath.Join(logDir, "ha-shelly-export.log")

	logger := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // megabytes
		MaxBackups: 5,  // number of backups
		MaxAge:     28, // days
	}
	return logger, nil
}

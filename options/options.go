package options

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"
)

var Flags struct {
	Url            string
	Token          string
	Output         string
	Verbose        bool
	Json           bool
	Preview        bool
	CommandTimeout time.Duration
}

// CommandLineContext attaches the logger to the context and arranges for
// SIGINT/SIGTERM to cancel it. A zero timeout means no overall deadline:
// each HTTP request still carries its own.
func CommandLineContext(ctx context.Context, log logr.Logger, timeout time.Duration) context.Context {
	ctx = logr.NewContext(ctx, log)
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt)
		signal.Notify(signals, syscall.SIGTERM)
		<-signals
		log.Info("Received signal")
		cancel()
	}()
	return ctx
}

func PrintResult(out any) error {
	var s []byte
	var err error
	if Flags.Json {
		s, err = json.Marshal(out)
	} else {
		s, err = yaml.Marshal(out)
	}
	if err != nil {
		return err
	}
	fmt.Println(string(s))
	return nil
}

package options

import (
	"context"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
)

func TestCommandLineContextCarriesLogger(t *testing.T) {
	log := testr.New(t)
	ctx := CommandLineContext(context.Background(), log, 0)

	if _, err := logr.FromContext(ctx); err != nil {
		t.Errorf("context has no logger: %v", err)
	}
	if _, ok := ctx.Deadline(); ok {
		t.Error("context has a deadline with zero timeout")
	}
}

func TestCommandLineContextTimeout(t *testing.T) {
	ctx := CommandLineContext(context.Background(), testr.New(t), time.Minute)

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("context has no deadline")
	}
	if remaining := time.Until(deadline); remaining > time.Minute {
		t.Errorf("deadline too far out: %v", remaining)
	}
}

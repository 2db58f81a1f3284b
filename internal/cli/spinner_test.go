package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/TheJP/factorio-blueprint/pkg/generate/memory"
	"github.com/TheJP/factorio-blueprint/pkg/pipeline"
)

// captureStatus redirects status lines into a buffer for the test.
func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := statusOut
	statusOut = &buf
	t.Cleanup(func() { statusOut = prev })
	return &buf
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := startSpinner(context.Background(), &buf, "Generating memory...")
	time.Sleep(2 * spinnerInterval)
	s.stop()
	s.stop()

	out := buf.String()
	if !strings.Contains(out, "Generating memory...") {
		t.Errorf("spinner output %q lacks the message", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner output %q does not end by clearing the line", out)
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := startSpinner(ctx, &buf, "x")
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after cancel")
	}
	s.stop()
}

func TestGenerateWithSpinner(t *testing.T) {
	status := captureStatus(t)
	runner := pipeline.NewRunner(nil, nil, newLogger(&bytes.Buffer{}, LogInfo))

	req := pipeline.Request{Generator: memory.Name, Memory: memory.Options{Width: 1, Height: 2}}
	res, err := generateWithSpinner(context.Background(), runner, req)
	if err != nil {
		t.Fatal(err)
	}
	if res.Entities != 10 {
		t.Errorf("Entities = %d, want 10", res.Entities)
	}
	if !strings.Contains(status.String(), "Generating memory...") {
		t.Errorf("status output %q lacks the spinner message", status.String())
	}
}

func TestGenerateWithSpinnerCancelled(t *testing.T) {
	captureStatus(t)
	runner := pipeline.NewRunner(nil, nil, newLogger(&bytes.Buffer{}, LogInfo))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := pipeline.Request{Generator: memory.Name, Memory: memory.Options{Width: 1, Height: 1}}
	if _, err := generateWithSpinner(ctx, runner, req); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

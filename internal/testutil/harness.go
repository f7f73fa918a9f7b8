package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/sweepgrid/internal/app"
	"github.com/vk/sweepgrid/internal/registry"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	PlanOut   string
	Err       error
	Launcher  *RecordingLauncher
	TempFiler *MemoryTempFiler
}

// Harness configures one integration run: the job-file content, the file
// name it is written under (defaults to sweepgrid.yaml), the job to run
// with its CLI overrides, and optional call targets to register.
type Harness struct {
	JobFile   string
	FileName  string
	Job       string
	Overrides []string
	DryRun    bool
	FailFast  bool
	FailOn    map[int]bool
	Register  map[string]registry.CallFunc
}

// Run writes the job file to a temp dir and runs the app against it with
// recording ports, using a default background context.
func (h Harness) Run(t *testing.T) *HarnessResult {
	t.Helper()
	return h.RunWithContext(context.Background(), t)
}

// RunWithContext is Run with a caller-provided context.
func (h Harness) RunWithContext(ctx context.Context, t *testing.T) *HarnessResult {
	t.Helper()

	name := h.FileName
	if name == "" {
		name = "sweepgrid.yaml"
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(h.JobFile), 0o644))

	cfg := &app.Config{
		FilePath:  path,
		LogLevel:  "debug",
		LogFormat: "text",
		DryRun:    h.DryRun,
		FailFast:  h.FailFast,
	}

	logBuffer := &SafeBuffer{}
	planBuffer := &SafeBuffer{}
	launcher := &RecordingLauncher{FailOn: h.FailOn}
	tempFiler := &MemoryTempFiler{}

	testApp := app.New(cfg, logBuffer,
		app.WithOutput(planBuffer),
		app.WithLauncher(launcher),
		app.WithTempFiler(tempFiler),
	)
	for name, fn := range h.Register {
		testApp.Registry().Register(name, fn)
	}

	err := testApp.Run(ctx, h.Job, h.Overrides)

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		PlanOut:   planBuffer.String(),
		Err:       err,
		Launcher:  launcher,
		TempFiler: tempFiler,
	}
}

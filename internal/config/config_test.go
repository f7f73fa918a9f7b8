package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/sweepgrid/internal/schema"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const yamlFixture = `
add: launcher=basic
jobs:
  train:
    run: python train.py
    add: --multirun
    steps:
      - each: model=(cnn,transformer)_(small,large)
        all: seed=1:3
        add: device=cuda
  sweep:
    submit: sbatch launch.sh
    steps:
      - each: lr/m=1:3
`

func TestYAMLLoader_Load(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "jobs.yaml", yamlFixture)
	file, err := NewYAMLLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "launcher=basic", file.Add)
	require.Len(t, file.Jobs, 2)

	train, err := file.Job("train")
	require.NoError(t, err)
	assert.Equal(t, schema.ModeRun, train.Mode)
	assert.Equal(t, "python train.py", train.Target)
	assert.Equal(t, "--multirun", train.Add)
	require.Len(t, train.Steps, 1)
	assert.Equal(t, "model=(cnn,transformer)_(small,large)", train.Steps[0].Each)
	assert.Equal(t, "seed=1:3", train.Steps[0].All)
	assert.Equal(t, "device=cuda", train.Steps[0].Add)

	sweepJob, err := file.Job("sweep")
	require.NoError(t, err)
	assert.Equal(t, schema.ModeSubmit, sweepJob.Mode)
	// No job-level add, so the file-level default applies.
	assert.Equal(t, "launcher=basic", sweepJob.Add)
}

func TestYAMLLoader_RejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "jobs.yaml", `
jobs:
  train:
    run: cmd
    steps:
      - eech: a=1
`)
	_, err := NewYAMLLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eech")
}

func TestYAMLLoader_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
	}{
		{"no jobs", "jobs: {}\n"},
		{"missing mode", "jobs:\n  x:\n    steps:\n      - each: a=1\n"},
		{"two modes", "jobs:\n  x:\n    run: a\n    submit: b\n    steps:\n      - each: a=1\n"},
		{"no steps", "jobs:\n  x:\n    run: a\n"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, "jobs.yaml", tc.content)
			_, err := NewYAMLLoader().Load(context.Background(), path)
			var cfgErr *schema.ConfigError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

const hclFixture = `
add = "launcher=basic"

job "train" {
  run = "python train.py"

  step {
    each = "lr/m=1:3"
    add  = "device=cuda"
  }
}
`

func TestHCLLoader_Load(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "jobs.hcl", hclFixture)
	file, err := NewHCLLoader().Load(context.Background(), path)
	require.NoError(t, err)

	train, err := file.Job("train")
	require.NoError(t, err)
	assert.Equal(t, schema.ModeRun, train.Mode)
	assert.Equal(t, "launcher=basic", train.Add)
	require.Len(t, train.Steps, 1)
	assert.Equal(t, "lr/m=1:3", train.Steps[0].Each)
	assert.Equal(t, "device=cuda", train.Steps[0].Add)
}

func TestHCLLoader_RejectsDuplicateJobs(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "jobs.hcl", `
job "x" {
  run = "a"
  step { each = "a=1" }
}

job "x" {
  run = "b"
  step { each = "a=1" }
}
`)
	_, err := NewHCLLoader().Load(context.Background(), path)
	var cfgErr *schema.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "twice")
}

func TestForPath(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &HCLLoader{}, ForPath("jobs.hcl"))
	assert.IsType(t, &HCLLoader{}, ForPath("jobs.HCL"))
	assert.IsType(t, &YAMLLoader{}, ForPath("jobs.yaml"))
	assert.IsType(t, &YAMLLoader{}, ForPath("jobs.yml"))
}

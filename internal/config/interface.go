package config

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/vk/sweepgrid/internal/schema"
)

// Loader is the interface for a format-specific job-file loader.
type Loader interface {
	// Load reads the job file at path, validates it, and returns the
	// resolved model.
	Load(ctx context.Context, path string) (*schema.File, error)
}

// ForPath selects a loader by file extension: `.hcl` gets the HCL loader,
// everything else the YAML loader.
func ForPath(path string) Loader {
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return NewHCLLoader()
	}
	return NewYAMLLoader()
}

package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vk/sweepgrid/internal/ctxlog"
)

// OSLauncher runs commands as real subprocesses. The configured command
// string is split on whitespace; the generated arguments are appended
// after it.
type OSLauncher struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Launch implements the Launcher interface for OSLauncher.
func (l *OSLauncher) Launch(ctx context.Context, command string, args []string) error {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, parts[0], append(parts[1:], args...)...)
	cmd.Stdout = l.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = l.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	ctxlog.FromContext(ctx).Debug("Launching subprocess.", "command", parts[0], "args", cmd.Args[1:])
	return cmd.Run()
}

// OSTempFiler writes parameter files into the system temp directory under
// uuid-derived names, so concurrent job invocations never collide.
type OSTempFiler struct{}

// Create implements the TempFiler interface for OSTempFiler.
func (OSTempFiler) Create(ctx context.Context, content string) (string, func(), error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("sweepgrid-%s.params", uuid.NewString()))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", nil, fmt.Errorf("writing parameter file: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Parameter file written.", "path", path)
	return path, func() { os.Remove(path) }, nil
}

package executor

import "context"

// Launcher starts one external command with the given argument tail and
// waits for it to finish.
type Launcher interface {
	Launch(ctx context.Context, command string, args []string) error
}

// TempFiler materializes the parameter file consumed by submit mode.
type TempFiler interface {
	// Create writes content to a fresh file and returns its path together
	// with a cleanup function removing it.
	Create(ctx context.Context, content string) (path string, cleanup func(), err error)
}

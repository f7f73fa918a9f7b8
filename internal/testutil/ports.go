package testutil

import (
	"context"
	"fmt"
	"sync"
)

// Launch records one captured invocation.
type Launch struct {
	Command string
	Args    []string
}

// RecordingLauncher captures every launch instead of starting subprocesses.
// FailOn holds 1-based invocation indices that report an error.
type RecordingLauncher struct {
	mu       sync.Mutex
	launches []Launch
	FailOn   map[int]bool
}

// Launch implements the executor.Launcher interface for RecordingLauncher.
func (l *RecordingLauncher) Launch(ctx context.Context, command string, args []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.launches = append(l.launches, Launch{Command: command, Args: append([]string(nil), args...)})
	if l.FailOn[len(l.launches)] {
		return fmt.Errorf("synthetic failure for invocation %d", len(l.launches))
	}
	return nil
}

// Launches returns the captured invocations in order.
func (l *RecordingLauncher) Launches() []Launch {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Launch(nil), l.launches...)
}

// MemoryTempFiler keeps submit parameter files in memory.
type MemoryTempFiler struct {
	mu      sync.Mutex
	files   map[string]string
	removed []string
	n       int
}

// Create implements the executor.TempFiler interface for MemoryTempFiler.
func (t *MemoryTempFiler) Create(ctx context.Context, content string) (string, func(), error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.files == nil {
		t.files = make(map[string]string)
	}
	t.n++
	path := fmt.Sprintf("mem://params-%d", t.n)
	t.files[path] = content
	cleanup := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.removed = append(t.removed, path)
	}
	return path, cleanup, nil
}

// Content returns the content written under path.
func (t *MemoryTempFiler) Content(path string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	content, ok := t.files[path]
	return content, ok
}

// Removed reports whether cleanup ran for path.
func (t *MemoryTempFiler) Removed(path string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range t.removed {
		if p == path {
			return true
		}
	}
	return false
}

// Created returns how many parameter files were created.
func (t *MemoryTempFiler) Created() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.n
}

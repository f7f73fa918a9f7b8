package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vk/sweepgrid/internal/ctxlog"
	"github.com/vk/sweepgrid/internal/plan"
	"github.com/vk/sweepgrid/internal/registry"
	"github.com/vk/sweepgrid/internal/schema"
)

// ExecutionError reports one failed invocation, identified by its 1-based
// position in the plan.
type ExecutionError struct {
	Job   string
	Entry int
	Err   error
}

// Error implements the error interface for ExecutionError.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("job %q invocation %d: %v", e.Job, e.Entry, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Executor dispatches a plan through its job's backend. Run and call modes
// are sequential and blocking: failures are collected and reported after
// the plan completes unless FailFast aborts on the first one. DryRun
// prints the would-be invocations and performs no side effects.
type Executor struct {
	launcher Launcher
	tempfile TempFiler
	registry *registry.Registry
	out      io.Writer

	FailFast bool
	DryRun   bool
}

// New is the constructor for Executor. out receives dry-run output and
// defaults to stdout.
func New(launcher Launcher, tempfile TempFiler, reg *registry.Registry, out io.Writer) *Executor {
	if out == nil {
		out = os.Stdout
	}
	return &Executor{launcher: launcher, tempfile: tempfile, registry: reg, out: out}
}

// Execute dispatches every entry of the plan.
func (e *Executor) Execute(ctx context.Context, p *plan.Plan) error {
	if e.DryRun {
		return e.dryRun(p)
	}
	switch p.Job.Mode {
	case schema.ModeRun:
		return e.runAll(ctx, p)
	case schema.ModeSubmit:
		return e.submit(ctx, p)
	case schema.ModeCall:
		return e.callAll(ctx, p)
	}
	return fmt.Errorf("unknown execution mode %v", p.Job.Mode)
}

func (e *Executor) runAll(ctx context.Context, p *plan.Plan) error {
	log := ctxlog.FromContext(ctx)
	var failures []error
	for i, entry := range p.Entries {
		log.Info("Launching invocation.", "job", p.Job.Name, "entry", i+1, "total", len(p.Entries), "args", entry.Line())
		if err := e.launcher.Launch(ctx, p.Job.Target, entry.Args); err != nil {
			execErr := &ExecutionError{Job: p.Job.Name, Entry: i + 1, Err: err}
			if e.FailFast {
				return execErr
			}
			log.Error("Invocation failed.", "job", p.Job.Name, "entry", i+1, "error", err)
			failures = append(failures, execErr)
		}
	}
	return errors.Join(failures...)
}

// submit writes the whole plan to a parameter file, one invocation per
// line, and launches the target exactly once with the file path appended.
func (e *Executor) submit(ctx context.Context, p *plan.Plan) error {
	var b strings.Builder
	for _, entry := range p.Entries {
		b.WriteString(entry.Line())
		b.WriteByte('\n')
	}
	path, cleanup, err := e.tempfile.Create(ctx, b.String())
	if err != nil {
		return err
	}
	defer cleanup()

	ctxlog.FromContext(ctx).Info("Submitting batch.", "job", p.Job.Name, "invocations", len(p.Entries), "file", path)
	if err := e.launcher.Launch(ctx, p.Job.Target, []string{path}); err != nil {
		return &ExecutionError{Job: p.Job.Name, Entry: 1, Err: err}
	}
	return nil
}

func (e *Executor) callAll(ctx context.Context, p *plan.Plan) error {
	fn, err := e.registry.Lookup(p.Job.Target)
	if err != nil {
		return err
	}
	log := ctxlog.FromContext(ctx)
	var failures []error
	for i, entry := range p.Entries {
		log.Info("Calling function.", "job", p.Job.Name, "target", p.Job.Target, "entry", i+1, "total", len(p.Entries))
		if err := fn(ctx, entry.Assignments); err != nil {
			execErr := &ExecutionError{Job: p.Job.Name, Entry: i + 1, Err: err}
			if e.FailFast {
				return execErr
			}
			log.Error("Call failed.", "job", p.Job.Name, "entry", i+1, "error", err)
			failures = append(failures, execErr)
		}
	}
	return errors.Join(failures...)
}

func (e *Executor) dryRun(p *plan.Plan) error {
	fmt.Fprintf(e.out, "job %s (%s: %s), %d invocation(s)\n", p.Job.Name, p.Job.Mode, p.Job.Target, len(p.Entries))
	for _, entry := range p.Entries {
		fmt.Fprintf(e.out, "  [step %d] %s %s\n", entry.Step, p.Job.Target, entry.Line())
	}
	if p.Job.Mode == schema.ModeSubmit {
		fmt.Fprintf(e.out, "submit: one launch of %q with a parameter file of %d line(s)\n", p.Job.Target, len(p.Entries))
	}
	return nil
}

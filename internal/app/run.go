package app

import (
	"context"
	"fmt"

	"github.com/vk/sweepgrid/internal/config"
	"github.com/vk/sweepgrid/internal/ctxlog"
	"github.com/vk/sweepgrid/internal/executor"
	"github.com/vk/sweepgrid/internal/plan"
	"github.com/vk/sweepgrid/internal/schema"
)

// Run expands a job into its plan and dispatches it. overrides are extra
// key=value tokens appended to every generated invocation.
func (a *App) Run(ctx context.Context, jobName string, overrides []string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	p, err := a.buildPlan(ctx, jobName, overrides)
	if err != nil {
		return err
	}
	a.logger.Info("Plan materialized.", "job", jobName, "mode", p.Job.Mode.String(), "invocations", len(p.Entries))

	exec := executor.New(a.launcher, a.tempfile, a.registry, a.outW)
	exec.DryRun = a.config.DryRun
	exec.FailFast = a.config.FailFast
	return exec.Execute(ctx, p)
}

// Show prints a human-readable rendering of a job's plan without
// dispatching anything.
func (a *App) Show(ctx context.Context, jobName string, overrides []string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	p, err := a.buildPlan(ctx, jobName, overrides)
	if err != nil {
		return err
	}
	exec := executor.New(a.launcher, a.tempfile, a.registry, a.outW)
	exec.DryRun = true
	return exec.Execute(ctx, p)
}

// Jobs returns the job names defined in the configured file, sorted.
func (a *App) Jobs(ctx context.Context) ([]string, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	file, err := a.loadFile(ctx)
	if err != nil {
		return nil, err
	}
	return file.Names(), nil
}

func (a *App) buildPlan(ctx context.Context, jobName string, overrides []string) (*plan.Plan, error) {
	file, err := a.loadFile(ctx)
	if err != nil {
		return nil, err
	}
	job, err := file.Job(jobName)
	if err != nil {
		return nil, err
	}
	p, err := plan.Build(job, overrides)
	if err != nil {
		return nil, fmt.Errorf("expanding job: %w", err)
	}
	return p, nil
}

func (a *App) loadFile(ctx context.Context) (*schema.File, error) {
	loader := a.loader
	if loader == nil {
		loader = config.ForPath(a.config.FilePath)
	}
	return loader.Load(ctx, a.config.FilePath)
}

package schema

import (
	"fmt"
	"sort"
)

// Mode selects the execution backend of a job.
type Mode int

const (
	// ModeRun launches the target command once per generated invocation,
	// sequentially, in plan order.
	ModeRun Mode = iota
	// ModeCall invokes a registered in-process function once per generated
	// invocation.
	ModeCall
	// ModeSubmit writes all generated invocations to a parameter file and
	// launches the target command exactly once with the file path appended.
	ModeSubmit
)

func (m Mode) String() string {
	switch m {
	case ModeRun:
		return "run"
	case ModeCall:
		return "call"
	case ModeSubmit:
		return "submit"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ConfigError reports an invalid or incomplete job file.
type ConfigError struct {
	Job    string
	Reason string
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	if e.Job == "" {
		return fmt.Sprintf("invalid job file: %s", e.Reason)
	}
	return fmt.Sprintf("job %q: %s", e.Job, e.Reason)
}

// Step is one evaluation unit of a job. Each is the distributive sweep
// expression (one generated invocation per grid point), All the collective
// expression (expanded but kept joined, appended to every invocation), and
// Add the raw passthrough text (never expanded). All three are optional; a
// step with none of them generates a single invocation with no arguments.
type Step struct {
	Each string
	All  string
	Add  string
}

// Job is one fully resolved job: a single execution mode with its target,
// the effective passthrough default, and an ordered list of steps.
type Job struct {
	Name   string
	Mode   Mode
	Target string
	Add    string
	Steps  []Step
}

// File is a fully loaded and validated job file.
type File struct {
	Add  string
	Jobs map[string]*Job
}

// Job looks up a job by name.
func (f *File) Job(name string) (*Job, error) {
	job, ok := f.Jobs[name]
	if !ok {
		return nil, &ConfigError{Job: name, Reason: "not defined in the job file"}
	}
	return job, nil
}

// Names returns the defined job names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Jobs))
	for name := range f.Jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spec is the raw shape of one job as written in a job file, before the
// execution mode is resolved. Add distinguishes absent from explicitly
// empty so a job can clear the file-level passthrough default.
type Spec struct {
	Run    string
	Call   string
	Submit string
	Add    *string
	Steps  []Step
}

// Resolve validates a raw job spec and produces the Job. Exactly one of
// run, call and submit must be set, and the step list must be non-empty.
func Resolve(name string, spec Spec, fileAdd string) (*Job, error) {
	var (
		mode   Mode
		target string
		modes  int
	)
	if spec.Run != "" {
		mode, target = ModeRun, spec.Run
		modes++
	}
	if spec.Call != "" {
		mode, target = ModeCall, spec.Call
		modes++
	}
	if spec.Submit != "" {
		mode, target = ModeSubmit, spec.Submit
		modes++
	}
	switch {
	case modes == 0:
		return nil, &ConfigError{Job: name, Reason: "must declare one of run, call or submit"}
	case modes > 1:
		return nil, &ConfigError{Job: name, Reason: "declares more than one of run, call and submit"}
	case len(spec.Steps) == 0:
		return nil, &ConfigError{Job: name, Reason: "has no steps"}
	}

	add := fileAdd
	if spec.Add != nil {
		add = *spec.Add
	}
	return &Job{Name: name, Mode: mode, Target: target, Add: add, Steps: spec.Steps}, nil
}

package config

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/sweepgrid/internal/ctxlog"
	"github.com/vk/sweepgrid/internal/schema"
)

type hclFile struct {
	Add  *string  `hcl:"add,optional"`
	Jobs []hclJob `hcl:"job,block"`
}

type hclJob struct {
	Name   string    `hcl:"name,label"`
	Run    string    `hcl:"run,optional"`
	Call   string    `hcl:"call,optional"`
	Submit string    `hcl:"submit,optional"`
	Add    *string   `hcl:"add,optional"`
	Steps  []hclStep `hcl:"step,block"`
}

type hclStep struct {
	Each string `hcl:"each,optional"`
	All  string `hcl:"all,optional"`
	Add  string `hcl:"add,optional"`
}

// HCLLoader reads job files written in HCL. Jobs are labeled `job` blocks
// and steps are nested `step` blocks; the field names match the YAML keys.
type HCLLoader struct {
	parser *hclparse.Parser
}

// NewHCLLoader is the constructor for HCLLoader.
func NewHCLLoader() *HCLLoader {
	return &HCLLoader{parser: hclparse.NewParser()}
}

// Load implements the Loader interface for HCLLoader.
func (l *HCLLoader) Load(ctx context.Context, path string) (*schema.File, error) {
	ctxlog.FromContext(ctx).Debug("Loading job file.", "path", path, "format", "hcl")

	f, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}
	var raw hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %w", path, diags)
	}
	if len(raw.Jobs) == 0 {
		return nil, &schema.ConfigError{Reason: "no jobs defined"}
	}

	fileAdd := ""
	if raw.Add != nil {
		fileAdd = *raw.Add
	}
	file := &schema.File{Add: fileAdd, Jobs: make(map[string]*schema.Job, len(raw.Jobs))}
	for _, j := range raw.Jobs {
		if _, exists := file.Jobs[j.Name]; exists {
			return nil, &schema.ConfigError{Job: j.Name, Reason: "defined twice"}
		}
		steps := make([]schema.Step, len(j.Steps))
		for i, s := range j.Steps {
			steps[i] = schema.Step{Each: s.Each, All: s.All, Add: s.Add}
		}
		job, err := schema.Resolve(j.Name, schema.Spec{
			Run:    j.Run,
			Call:   j.Call,
			Submit: j.Submit,
			Add:    j.Add,
			Steps:  steps,
		}, fileAdd)
		if err != nil {
			return nil, err
		}
		file.Jobs[j.Name] = job
	}
	return file, nil
}

package config

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/sweepgrid/internal/ctxlog"
	"github.com/vk/sweepgrid/internal/schema"
)

type yamlFile struct {
	Add  *string            `yaml:"add"`
	Jobs map[string]yamlJob `yaml:"jobs"`
}

type yamlJob struct {
	Run    string     `yaml:"run"`
	Call   string     `yaml:"call"`
	Submit string     `yaml:"submit"`
	Add    *string    `yaml:"add"`
	Steps  []yamlStep `yaml:"steps"`
}

type yamlStep struct {
	Each string `yaml:"each"`
	All  string `yaml:"all"`
	Add  string `yaml:"add"`
}

// YAMLLoader reads job files in the primary YAML format.
type YAMLLoader struct{}

// NewYAMLLoader is the constructor for YAMLLoader.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// Load implements the Loader interface for YAMLLoader. Unknown keys are
// rejected so typos like `eech` fail loudly instead of silently producing
// an empty step.
func (l *YAMLLoader) Load(ctx context.Context, path string) (*schema.File, error) {
	ctxlog.FromContext(ctx).Debug("Loading job file.", "path", path, "format", "yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}

	var raw yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(raw.Jobs) == 0 {
		return nil, &schema.ConfigError{Reason: "no jobs defined"}
	}

	fileAdd := ""
	if raw.Add != nil {
		fileAdd = *raw.Add
	}
	file := &schema.File{Add: fileAdd, Jobs: make(map[string]*schema.Job, len(raw.Jobs))}
	for name, j := range raw.Jobs {
		steps := make([]schema.Step, len(j.Steps))
		for i, s := range j.Steps {
			steps[i] = schema.Step{Each: s.Each, All: s.All, Add: s.Add}
		}
		job, err := schema.Resolve(name, schema.Spec{
			Run:    j.Run,
			Call:   j.Call,
			Submit: j.Submit,
			Add:    j.Add,
			Steps:  steps,
		}, fileAdd)
		if err != nil {
			return nil, err
		}
		file.Jobs[name] = job
	}
	return file, nil
}

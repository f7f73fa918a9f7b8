package plan

import (
	"fmt"
	"strings"

	"github.com/vk/sweepgrid/internal/schema"
	"github.com/vk/sweepgrid/internal/sweep"
)

// Entry is one generated invocation: the 1-based step it came from, the
// distributive assignments of its grid point, and the rendered argument
// tail.
type Entry struct {
	Step        int
	Assignments sweep.CombinationSet
	Args        []string
}

// Line renders the entry's argument tail as a single space-joined string.
func (e Entry) Line() string {
	return strings.Join(e.Args, " ")
}

// Plan is the fully materialized invocation list for one job, step order
// preserved, within-step order following the grid expansion.
type Plan struct {
	Job     *schema.Job
	Entries []Entry
}

// Build evaluates every step of the job. overrides are extra key=value
// tokens from the command line, appended verbatim to every generated
// invocation after the step's own arguments.
func Build(job *schema.Job, overrides []string) (*Plan, error) {
	p := &Plan{Job: job}
	for i, step := range job.Steps {
		entries, err := buildStep(job, i+1, step, overrides)
		if err != nil {
			return nil, fmt.Errorf("job %q step %d: %w", job.Name, i+1, err)
		}
		p.Entries = append(p.Entries, entries...)
	}
	return p, nil
}

// buildStep produces the entries of one step: rendered distributive
// assignments, then the collective tokens, then the merged passthrough,
// then the CLI overrides, in that fixed order.
func buildStep(job *schema.Job, num int, step schema.Step, overrides []string) ([]Entry, error) {
	sets := []sweep.CombinationSet{nil}
	if step.Each != "" {
		var err error
		sets, err = sweep.ExpandExpression(step.Each)
		if err != nil {
			return nil, err
		}
	}

	var collective []string
	if step.All != "" {
		var err error
		collective, err = sweep.CollectParts(step.All)
		if err != nil {
			return nil, err
		}
	}

	add := strings.Fields(mergePassthrough(job.Add, step.Add))

	entries := make([]Entry, 0, len(sets))
	for _, cs := range sets {
		args := cs.Strings()
		args = append(args, collective...)
		args = append(args, add...)
		args = append(args, overrides...)
		entries = append(entries, Entry{Step: num, Assignments: cs, Args: args})
	}
	return entries, nil
}

// mergePassthrough merges job-level and step-level passthrough text
// key-wise. Tokens are keyed by the part before '='; step tokens replace
// job tokens with the same key in place, and the remaining step tokens are
// appended in their own order.
func mergePassthrough(jobAdd, stepAdd string) string {
	if stepAdd == "" {
		return jobAdd
	}
	if jobAdd == "" {
		return stepAdd
	}

	stepToks := strings.Fields(stepAdd)
	replace := make(map[string]string, len(stepToks))
	for _, tok := range stepToks {
		replace[passKey(tok)] = tok
	}

	var out []string
	replaced := make(map[string]bool)
	for _, tok := range strings.Fields(jobAdd) {
		key := passKey(tok)
		if repl, ok := replace[key]; ok {
			out = append(out, repl)
			replaced[key] = true
			continue
		}
		out = append(out, tok)
	}
	for _, tok := range stepToks {
		if !replaced[passKey(tok)] {
			out = append(out, tok)
		}
	}
	return strings.Join(out, " ")
}

func passKey(tok string) string {
	if i := strings.IndexByte(tok, '='); i >= 0 {
		return tok[:i]
	}
	return tok
}

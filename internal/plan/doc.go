// Package plan evaluates a job's steps into an execution plan: the fully
// rendered, ordered list of argument tails for every generated invocation.
// Evaluation is pure; the plan is materialized in full before anything is
// dispatched.
package plan

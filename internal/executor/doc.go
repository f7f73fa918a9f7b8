// Package executor dispatches a materialized plan through its job's
// backend: sequential process launches for run mode, a single submission
// with a parameter file for submit mode, or registered in-process functions
// for call mode. OS side effects sit behind the Launcher and TempFiler
// ports so everything above them stays testable without touching the OS.
package executor

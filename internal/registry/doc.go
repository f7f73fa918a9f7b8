// Package registry maps call-mode target names to in-process Go functions.
// A Registry is created per CLI invocation and passed explicitly; there is
// no ambient global table.
package registry

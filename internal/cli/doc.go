// Package cli defines the sweepgrid command tree: run, show and list,
// plus the persistent flags shared by all of them.
package cli

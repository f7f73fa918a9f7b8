// Package app wires the loader, registry and executor ports into one
// application instance per CLI invocation, with its own isolated logger.
package app

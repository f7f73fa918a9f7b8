// Package sweep implements the sweep-expression DSL: a compact syntax for
// declaring parameter spaces (`lr/m=1:3 model=(cnn,transformer)_(small,large)`)
// together with its deterministic expansion into ordered combination sets.
//
// The pipeline is tokenize -> parse -> expand -> combine -> render. Every
// stage is pure: the same expression always yields the same ordered output,
// and nothing here touches the OS.
package sweep

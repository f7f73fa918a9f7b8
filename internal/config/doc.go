// Package config loads job definition files into the schema model. The
// Loader interface keeps the file format behind a port: the primary
// implementation reads YAML, a second one reads the same model from HCL,
// and ForPath picks between them by file extension.
package config

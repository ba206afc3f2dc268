// Package fileops implements line and word oriented text file helpers on top
// of an afero.Fs, so the same code runs against the OS filesystem in the CLI
// and an in-memory filesystem in tests.
package fileops

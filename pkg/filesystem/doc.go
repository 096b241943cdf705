// Package filesystem provides filesystem implementations for drip.
//
// This package contains implementations of the types.FS interface:
// the OS filesystem used by the CLI and an afero-backed one used by tests.
package filesystem

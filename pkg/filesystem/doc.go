// Package filesystem provides filesystem implementations for alfredwf.
//
// This package contains implementations of the types.FS interface:
// the real OS filesystem and an afero-backed one for tests.
package filesystem

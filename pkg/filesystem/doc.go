// Package filesystem provides filesystem implementations for makeover.
//
// This package contains implementations of the types.FS interface backed by
// afero: the OS filesystem rooted at the build file's directory for real
// builds, and any afero.Fs (typically a MemMapFs) for tests.
package filesystem

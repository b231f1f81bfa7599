// Package filesystem provides filesystem implementations for confsync.
//
// This package contains implementations of the types.FS interface,
// currently the standard OS filesystem. Tests use the fault-injecting
// wrapper from pkg/testutil instead.
package filesystem

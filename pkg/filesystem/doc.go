// Package filesystem provides filesystem implementations for unbox.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and test filesystems, plus the
// deep-copy helpers the resource store uses to ingest content.
package filesystem

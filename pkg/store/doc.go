// Package store implements the volume-side resource store.
//
// The store owns the on-volume directory tree and the index document mapping
// resource name -> {storage directory, current version, per-version metadata}.
// Every resource lives under an opaque generated storage directory holding one
// subdirectory per version plus a `current` symlink pointing at the live
// version's directory. The index is the source of truth; the symlink is a
// derived, re-creatable artifact.
//
// The index is flushed to disk at the end of every mutating call. There is no
// rollback: a mutation that fails after its first filesystem side effect
// leaves store and index in an undefined intermediate state. Concurrent use
// from multiple processes against the same volume is not safe; the store only
// guarantees in-process safety via an internal mutex.
package store

// Package types defines the core types and interfaces used throughout unbox.
// This includes the record types carried by the resource and link indexes
// (Resource, VersionInfo, Link, BackupEntry) and the FS interface that all
// filesystem access goes through.
package types

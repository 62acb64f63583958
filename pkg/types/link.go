package types

// Link binds a local filesystem path to a resource in the store.
type Link struct {
	// LinkPath is the absolute local path where the symbolic link lives
	LinkPath string

	// Target is the absolute path to the resource content the link points at
	Target string

	// ResourceName and ResourceVersion identify what the link represents
	ResourceName    string
	ResourceVersion string

	// IgnoreNewVersions prevents the link from being auto-updated when the
	// resource's current version changes
	IgnoreNewVersions bool
}

// BackupEntry records that the file or directory originally at OriginalPath
// has been moved into a quarantine directory, keeping its basename.
type BackupEntry struct {
	// OriginalPath is the absolute path the content was displaced from
	OriginalPath string

	// QuarantineID is the generated directory name under the backups
	// directory that holds the content
	QuarantineID string
}

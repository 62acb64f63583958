package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A versioned resource store for shared volumes"
	MsgRootLong        = "unbox keeps versioned copies of your resources on a shared volume\nand links them into place on each machine, so switching versions is a\nsingle pointer change instead of a copy."
	MsgAddShort        = "Add a local file or directory to the store"
	MsgRemoveShort     = "Remove a resource and all its versions"
	MsgListShort       = "List tracked resources and their versions"
	MsgVersionsShort   = "Manage the versions of a resource"
	MsgCopyShort       = "Create a new version from an existing one"
	MsgUseShort        = "Re-point a resource's current version"
	MsgDeleteShort     = "Delete a non-current version"
	MsgDepsShort       = "Manage the dependencies of a version"
	MsgDepAddShort     = "Add a dependency to a version"
	MsgDepRemoveShort  = "Remove a dependency from a version"
	MsgLinkShort       = "Link a resource into a local path"
	MsgUnlinkShort     = "Remove a tracked link and restore any displaced original"
	MsgPinShort        = "Pin a link's record to its recorded version"
	MsgStatusShort     = "Check the health of tracked links"
	MsgFreshShort      = "Set up this machine's links interactively"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgResourceAdded   = "Added '%s' at version %s\n"
	MsgResourceRemoved = "Removed '%s'\n"
	MsgNoResources     = "No resources tracked."
	MsgResourceRow     = "  %s (current: %s, versions: %s)\n"
	MsgBackupHeader    = "Quarantined originals:"
	MsgBackupRow       = "  %s\n"
	MsgVersionCopied   = "Created version %s of '%s' from %s\n"
	MsgVersionInUse    = "'%s' now at version %s (%d link(s) updated)\n"
	MsgVersionDeleted  = "Deleted version %s of '%s'\n"
	MsgDepAdded        = "Added dependency '%s' to %s@%s\n"
	MsgDepRemoved      = "Removed dependency '%s' from %s@%s\n"
	MsgLinkCreated     = "Linked %s -> %s\n"
	MsgLinkBackedUp    = "  quarantined the file that was at %s\n"
	MsgLinkRemoved     = "Unlinked %s\n"
	MsgLinkPinned      = "Pinned %s\n"
	MsgLinkFollowing   = "%s now follows version changes\n"
	MsgLinkRestored    = "  restored the original file\n"
	MsgStatusHealthy   = "All links healthy."
	MsgStatusLinks     = "%d link(s) tracked\n"
	MsgStatusDangling  = "Dangling (no link on disk):"
	MsgStatusBroken    = "Broken (target unreachable):"
	MsgStatusItem      = "  %s\n"
	MsgFreshLinked     = "Linked %d resource(s), ignored %d\n"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrInitEnv    = "failed to initialize environment: %w"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Path to a configuration file"
	MsgFlagVersion = "Version label"
	MsgFlagDep     = "Dependency label (repeatable)"
	MsgFlagDrop    = "Also delete local links that reference the resource"
	MsgFlagDeps    = "Copy the source version's dependencies"
	MsgFlagPin     = "Pin the link to the named version"
	MsgFlagIgnore  = "Keep the link's record when the current version changes"
	MsgFlagKeep    = "Leave any quarantined original in the backup system"
	MsgFlagFollow  = "Clear the pin instead of setting it"
	MsgFlagBackups = "Also list quarantined originals"
)

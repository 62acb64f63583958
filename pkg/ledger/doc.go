// Package ledger implements the local-side link ledger.
//
// The ledger tracks symbolic links on the local machine that point into the
// resource store, plus an independent backup system that quarantines files
// displaced by link creation. Both indexes live under the local unbox
// directory and are flushed to disk at the end of every mutating call.
//
// The move-into-quarantine and the index write are one logical step from the
// ledger's point of view, but not atomic on disk: if the index write fails
// after the move succeeded, ledger and disk are out of sync and need manual
// inspection.
package ledger

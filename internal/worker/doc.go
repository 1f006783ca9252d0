// Package worker runs the service's background loops: flushing the
// unknown-word log to the database, syncing learned mappings from the
// database into memory, and exporting curation snapshots.
//
// Every worker has a Run(ctx) method that blocks until ctx is cancelled.
package worker

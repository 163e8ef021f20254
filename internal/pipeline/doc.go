// Package pipeline runs the organizer over a directory: parallel metadata
// scan, family grouping, per-file placement, duplicate handling, the
// optional foundry regrouping pass, and batch mode over many directories.
//
// Types:
//   - Store, ProcessedSet: per-directory shared state (store.go)
//   - RunStats, FoundryStats, BatchStats (stats.go)
//   - Deps: collaborators injected by the CLI (deps.go)
//
// Functions:
//   - Discover, Scan (discover.go, scan.go)
//   - Organize, Run (organize.go)
//   - GroupByFoundry (foundry.go)
//   - RunBatch (batch.go)
//
// Metadata reads run concurrently; grouping and moves are sequential.
package pipeline

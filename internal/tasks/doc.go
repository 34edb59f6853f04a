// Package tasks orchestrates library synchronization and play-count
// enrichment with real-time progress reporting.
//
// # Core Operations
//
// The [SyncEngine] interface defines two operations:
//
//  1. [SyncEngine.Sync] : Refresh the album cache from the remote library
//     - Pages through the library listing, following server cursors
//     - Normalizes raw entries into Album records (catalog id resolution,
//       year derivation), skipping non-favorites and unnamed entries
//     - Incremental mode reuses existing records verbatim and retains
//       records absent from the remote pages; full mode rebuilds from
//       fresh data only
//     - Commits all-or-nothing: a page error leaves the prior cache intact
//
//  2. [SyncEngine.Enrich] : Compute qualified album play counts
//     - Fetches per-album track listings, rate limited and backed by the
//       sqlite listing cache
//     - Joins listings back to albums by normalized (artist, title) key
//     - Applies the 75th-percentile statistic and the half-played
//       qualification threshold
//     - Updates the play-count cache change-driven: overwrite, no-op, or
//       retract per album; persists only after the full pass
//
// # Progress Reporting
//
// All operations send [ProgressUpdate] values over a caller-provided
// channel using select with default, so reporting never blocks execution.
//
// # Serialization
//
// A [LibraryEngine] runs at most one pass at a time; a second request while
// one is in flight is rejected rather than queued, since both would mutate
// the same collection.
package tasks

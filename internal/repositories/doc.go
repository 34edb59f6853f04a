// Package repositories provides the persistence layer for the favorites mirror.
//
// Two collections live in whole-file JSON documents ([AlbumStore],
// [PlayCountStore]) built on the generic [CacheFile]; writes are atomic
// temp-file-plus-rename replacements so a failed save never corrupts the
// previous file. The [ExclusionManager] annotates the stored album cache
// with the user's excluded library ids through targeted read-merge-writes.
//
// Raw per-album track listings are cached in sqlite by
// [TrackStatsRepository] so enrichment passes can rerun cheaply.
package repositories

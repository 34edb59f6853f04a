// Package models defines domain entities for the favorites mirror.
//
// The package contains two categories of types:
//
// 1. The album record and its derived fields:
//   - [Album] : One favorited album with identity, descriptive metadata, and
//     derived year, canonical link, and artwork rendition helpers
//
// 2. Persisted collections:
//   - [AlbumCache] : Year-bucketed album collection with the exclusion set,
//     ordered by case-insensitive artist name within each bucket
//   - [PlayCountCache] : Qualified album play counts keyed by library id
//
// Both caches round-trip through JSON files written by the repositories
// package; fields added after the formats shipped are optional and decode
// as their zero values from older payloads.
package models

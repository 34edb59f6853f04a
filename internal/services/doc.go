// Package services provides API clients for the remote music library.
//
// [LibraryService] is the consumed contract: a page-at-a-time listing of raw
// library album entries plus a per-album track listing call that exposes
// play counts. [AppleMusicService] implements it against the Apple Music
// library API using a developer bearer token and the user's
// Media-User-Token header.
//
// The raw wire types (RawAlbumEntry and friends) tolerate absent or null
// fields on any entry; normalization into domain records happens in the
// tasks package, not here.
package services

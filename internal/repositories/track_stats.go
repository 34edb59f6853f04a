package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/favsync/internal/services"
	"github.com/desertthunder/favsync/internal/shared"
)

// TrackStatsRepository caches raw per-album track listings in sqlite so
// repeated enrichment passes avoid refetching unchanged listings.
//
// Saving a listing replaces all rows for that album key in one
// transaction. Track names may repeat within an album (reprises, identical
// multi-part titles), so rows carry their own ids and listing order is the
// insertion order.
type TrackStatsRepository struct {
	db *sql.DB
}

// NewTrackStatsRepository creates a new TrackStatsRepository with the given database connection
func NewTrackStatsRepository(db *sql.DB) *TrackStatsRepository {
	return &TrackStatsRepository{db: db}
}

// SaveListing replaces the cached track listing for one album key.
func (r *TrackStatsRepository) SaveListing(albumKey string, listing *services.TrackListing) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM track_stats WHERE album_key = ?", albumKey); err != nil {
		return fmt.Errorf("failed to clear stale listing: %w", err)
	}

	query := `
		INSERT INTO track_stats (id, album_key, album_title, album_artist, track_name, track_kind, play_count, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	for _, track := range listing.Tracks {
		_, err := tx.Exec(query,
			shared.GenerateID(),
			albumKey,
			listing.AlbumTitle,
			listing.AlbumArtist,
			track.Name,
			track.Kind,
			track.PlayCount,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert track stat: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit listing: %w", err)
	}

	return nil
}

// GetListing retrieves the cached track listing for an album key.
// Returns (nil, nil) when no listing is cached.
func (r *TrackStatsRepository) GetListing(albumKey string) (*services.TrackListing, error) {
	query := `
		SELECT album_title, album_artist, track_name, track_kind, play_count
		FROM track_stats
		WHERE album_key = ?
		ORDER BY rowid
	`

	rows, err := r.db.Query(query, albumKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query track stats: %w", err)
	}
	defer rows.Close()

	var listing *services.TrackListing
	for rows.Next() {
		var title, artist, name, kind string
		var playCount int
		if err := rows.Scan(&title, &artist, &name, &kind, &playCount); err != nil {
			return nil, fmt.Errorf("failed to scan track stat: %w", err)
		}

		if listing == nil {
			listing = &services.TrackListing{AlbumTitle: title, AlbumArtist: artist}
		}
		listing.Tracks = append(listing.Tracks, services.RawTrackEntry{
			Kind:      kind,
			Name:      name,
			PlayCount: playCount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read track stats: %w", err)
	}

	return listing, nil
}

// Purge deletes every cached listing. Used by enrich --refresh.
func (r *TrackStatsRepository) Purge() error {
	if _, err := r.db.Exec("DELETE FROM track_stats"); err != nil {
		return fmt.Errorf("failed to purge track stats: %w", err)
	}
	return nil
}

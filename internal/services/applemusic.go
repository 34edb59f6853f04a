// Apple Music API implementation of [LibraryService]
//
// Library API response types based on https://developer.apple.com/documentation/applemusicapi
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/favsync/internal/shared"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://api.music.apple.com"

// AppleMusicService implements the LibraryService interface against the
// Apple Music library API. Requests carry a developer bearer token (via
// [oauth2]) and the user's Media-User-Token header.
type AppleMusicService struct {
	baseURL        string
	storefront     string
	mediaUserToken string
	pageSize       int
	httpClient     *http.Client
}

// AppleMusicOpts contains configuration options for creating an AppleMusicService.
type AppleMusicOpts struct {
	BaseURL        string
	Storefront     string
	DeveloperToken string
	MediaUserToken string
	PageSize       int
	HTTPClient     *http.Client // overrides token-based client construction when set
}

// NewAppleMusicService creates a new library API client.
//
// The developer token is installed as a static [oauth2] token source so
// every request is sent with an Authorization bearer header.
func NewAppleMusicService(opts AppleMusicOpts) (*AppleMusicService, error) {
	if opts.DeveloperToken == "" && opts.HTTPClient == nil {
		return nil, fmt.Errorf("%w: developer token", shared.ErrMissingCredentials)
	}

	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Storefront == "" {
		opts.Storefront = "us"
	}
	if opts.PageSize <= 0 || opts.PageSize > 100 {
		opts.PageSize = 25
	}

	client := opts.HTTPClient
	if client == nil {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.DeveloperToken})
		client = oauth2.NewClient(context.Background(), src)
	}

	return &AppleMusicService{
		baseURL:        opts.BaseURL,
		storefront:     opts.Storefront,
		mediaUserToken: opts.MediaUserToken,
		pageSize:       opts.PageSize,
		httpClient:     client,
	}, nil
}

func (s *AppleMusicService) Name() string {
	return "Apple Music"
}

// doRequest performs an authenticated GET against the library API and
// decodes the JSON response into result.
func (s *AppleMusicService) doRequest(ctx context.Context, path string, query url.Values, result any) error {
	apiURL := s.baseURL + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if s.mediaUserToken != "" {
		req.Header.Set("Media-User-Token", s.mediaUserToken)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: status %d", shared.ErrNotAuthenticated, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("library API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// fixedQuery returns the query parameters that must accompany every library
// listing request. The server's next-page cursor omits them, so they are
// re-attached to each follow-up page.
func (s *AppleMusicService) fixedQuery() url.Values {
	return url.Values{
		"limit":   []string{strconv.Itoa(s.pageSize)},
		"include": []string{"catalog,tracks"},
	}
}

type favoritesEnvelope struct {
	Data []RawAlbumEntry `json:"data"`
	Next string          `json:"next"`
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
}

// ListFavorites retrieves one page of library albums.
//
// An empty cursor fetches the first page. Cursors are server-provided paths
// like "/v1/me/library/albums?offset=25"; their query is merged with the
// fixed parameters before the request goes out.
func (s *AppleMusicService) ListFavorites(ctx context.Context, cursor string) (*FavoritesPage, error) {
	path := "/v1/me/library/albums"
	query := s.fixedQuery()

	if cursor != "" {
		parsed, err := url.Parse(cursor)
		if err != nil {
			return nil, fmt.Errorf("invalid page cursor %q: %w", cursor, err)
		}
		path = parsed.Path
		for key, values := range parsed.Query() {
			query[key] = values
		}
	}

	var envelope favoritesEnvelope
	if err := s.doRequest(ctx, path, query, &envelope); err != nil {
		return nil, err
	}

	return &FavoritesPage{
		Entries:        envelope.Data,
		NextCursor:     envelope.Next,
		TotalAnnounced: envelope.Meta.Total,
	}, nil
}

type trackListingEnvelope struct {
	Data []struct {
		Type       string `json:"type"`
		Attributes struct {
			Name       string `json:"name"`
			AlbumName  string `json:"albumName"`
			ArtistName string `json:"artistName"`
			PlayCount  int    `json:"playCount"`
		} `json:"attributes"`
	} `json:"data"`
}

// ListAlbumTracks retrieves the track listing, with play counts, for one
// library album. The listing's album title and artist come from the tracks
// themselves since this endpoint is queried independently of the album listing.
func (s *AppleMusicService) ListAlbumTracks(ctx context.Context, catalogKey string) (*TrackListing, error) {
	if catalogKey == "" {
		return nil, fmt.Errorf("%w: empty catalog key", shared.ErrInvalidInput)
	}

	path := fmt.Sprintf("/v1/me/library/albums/%s/tracks", url.PathEscape(catalogKey))

	var envelope trackListingEnvelope
	if err := s.doRequest(ctx, path, nil, &envelope); err != nil {
		return nil, err
	}

	listing := &TrackListing{}
	for _, item := range envelope.Data {
		if listing.AlbumTitle == "" {
			listing.AlbumTitle = item.Attributes.AlbumName
			listing.AlbumArtist = item.Attributes.ArtistName
		}
		listing.Tracks = append(listing.Tracks, RawTrackEntry{
			Kind:      item.Type,
			Name:      item.Attributes.Name,
			PlayCount: item.Attributes.PlayCount,
		})
	}

	return listing, nil
}

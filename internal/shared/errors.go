package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Remote fetch errors
	ErrRemoteFetch        = fmt.Errorf("library fetch failed")
	ErrPerAlbumEnrichment = fmt.Errorf("album enrichment failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrSyncInProgress     = fmt.Errorf("a refresh is already in progress")

	// Cache errors
	ErrCacheNotFound  = fmt.Errorf("cache not found")
	ErrCacheCorrupted = fmt.Errorf("cache corrupted")
	ErrIOFailure      = fmt.Errorf("cache write failed")

	// Export errors
	ErrExportEmpty = fmt.Errorf("nothing to export")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

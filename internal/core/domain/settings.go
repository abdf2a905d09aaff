package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Default endpoint layout of the catalogue backend.
const (
	DefaultBaseURL     = "http://localhost:8080"
	DefaultSearchPath  = "/api/search_bar"
	DefaultClosetsPath = "/api/user/closets"
	DefaultAddItemPath = "/api/user/closets/add_item"
	DefaultRateLimit   = 10.0
)

// Default lookup tuning, matching the search bar's behaviour.
const (
	DefaultMinChars  = 1
	DefaultDebounce  = 150 * time.Millisecond
	DefaultCacheSize = 128
)

// APISettings locates the backend and shapes outgoing requests.
type APISettings struct {
	// BaseURL is the scheme and host of the backend.
	BaseURL string

	// SearchPath serves search-bar lookups.
	SearchPath string

	// ClosetsPath lists, creates and deletes closets.
	ClosetsPath string

	// AddItemPath adds an item to a closet.
	AddItemPath string

	// SessionToken is sent as the session_token cookie when set.
	SessionToken string

	// Timeout bounds a single request. Zero means no timeout; lookups then
	// stay pending until they resolve, fail or are superseded.
	Timeout time.Duration

	// RateLimit caps outgoing requests per second. Zero disables the limiter.
	RateLimit float64
}

// LookupSettings tunes the incremental search controller.
type LookupSettings struct {
	// MinChars is the shortest trimmed query that triggers a lookup.
	MinChars int

	// Debounce is the quiet period before a lookup is dispatched.
	Debounce time.Duration

	// CacheSize bounds the per-controller result cache.
	// Zero keeps every result for the controller's lifetime.
	CacheSize int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// API holds backend settings.
	API APISettings

	// Lookup holds search-bar tuning.
	Lookup LookupSettings

	// Profile holds the account panel details.
	Profile Profile
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:     DefaultBaseURL,
			SearchPath:  DefaultSearchPath,
			ClosetsPath: DefaultClosetsPath,
			AddItemPath: DefaultAddItemPath,
			RateLimit:   DefaultRateLimit,
		},
		Lookup: LookupSettings{
			MinChars:  DefaultMinChars,
			Debounce:  DefaultDebounce,
			CacheSize: DefaultCacheSize,
		},
	}
}

// Validate checks the settings for values the client cannot work with.
func (s AppSettings) Validate() error {
	u, err := url.Parse(s.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api base url %q", ErrInvalidInput, s.API.BaseURL)
	}
	if s.API.RateLimit < 0 {
		return fmt.Errorf("%w: negative rate limit", ErrInvalidInput)
	}
	if s.API.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidInput)
	}
	if s.Lookup.MinChars < 1 {
		return fmt.Errorf("%w: min chars must be at least 1", ErrInvalidInput)
	}
	if s.Lookup.Debounce < 0 {
		return fmt.Errorf("%w: negative debounce", ErrInvalidInput)
	}
	if s.Lookup.CacheSize < 0 {
		return fmt.Errorf("%w: negative cache size", ErrInvalidInput)
	}
	return nil
}

// Setting is one stored key with its display value.
type Setting struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

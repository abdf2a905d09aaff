package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
	"github.com/custodia-labs/closet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/closet-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyBaseURL      = "api.base_url"
	KeySearchPath   = "api.search_path"
	KeyClosetsPath  = "api.closets_path"
	KeyAddItemPath  = "api.add_item_path"
	KeySessionToken = "api.session_token"
	KeyTimeoutMS    = "api.timeout_ms"
	KeyRateLimit    = "api.rate_limit"
	KeyMinChars     = "lookup.min_chars"
	KeyDebounceMS   = "lookup.debounce_ms"
	KeyCacheSize    = "lookup.cache_size"
	KeyUsername     = "account.username"
	KeyFirstName    = "account.first_name"
	KeyLastName     = "account.last_name"
	KeyEmail        = "account.email"
)

// Keys lists every settings key in display order.
func Keys() []string {
	return []string{
		KeyBaseURL, KeySearchPath, KeyClosetsPath, KeyAddItemPath,
		KeySessionToken, KeyTimeoutMS, KeyRateLimit,
		KeyMinChars, KeyDebounceMS, KeyCacheSize,
		KeyUsername, KeyFirstName, KeyLastName, KeyEmail,
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:      s.getURL(KeyBaseURL, defaults.API.BaseURL),
			SearchPath:   s.getString(KeySearchPath, defaults.API.SearchPath),
			ClosetsPath:  s.getString(KeyClosetsPath, defaults.API.ClosetsPath),
			AddItemPath:  s.getString(KeyAddItemPath, defaults.API.AddItemPath),
			SessionToken: s.configStore.GetString(KeySessionToken),
			Timeout:      s.getMillis(KeyTimeoutMS, defaults.API.Timeout),
			RateLimit:    s.getRate(defaults.API.RateLimit),
		},
		Lookup: domain.LookupSettings{
			MinChars:  s.getPositiveInt(KeyMinChars, defaults.Lookup.MinChars),
			Debounce:  s.getMillis(KeyDebounceMS, defaults.Lookup.Debounce),
			CacheSize: s.getNonNegativeInt(KeyCacheSize, defaults.Lookup.CacheSize),
		},
		Profile: domain.Profile{
			Username:  s.configStore.GetString(KeyUsername),
			FirstName: s.configStore.GetString(KeyFirstName),
			LastName:  s.configStore.GetString(KeyLastName),
			Email:     s.configStore.GetString(KeyEmail),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("save settings: %w", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.saveAPI(settings.API); err != nil {
		return err
	}
	if err := s.saveLookup(settings.Lookup); err != nil {
		return err
	}
	return s.saveProfile(settings.Profile)
}

// SetAPI updates the backend settings.
func (s *SettingsService) SetAPI(api domain.APISettings) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.API = api
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.saveAPI(api)
}

// SetLookup updates the search-bar tuning.
func (s *SettingsService) SetLookup(lookup domain.LookupSettings) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Lookup = lookup
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.saveLookup(lookup)
}

// SetProfile updates the account details.
func (s *SettingsService) SetProfile(profile domain.Profile) error {
	return s.saveProfile(profile)
}

// SetValue parses raw for key and stores it.
// Unknown keys and unparseable values fail with domain.ErrInvalidInput.
func (s *SettingsService) SetValue(key, raw string) error {
	raw = strings.TrimSpace(raw)

	var value any
	switch key {
	case KeyBaseURL:
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute url", domain.ErrInvalidInput, key)
		}
		value = strings.TrimRight(raw, "/")
	case KeySearchPath, KeyClosetsPath, KeyAddItemPath:
		if !strings.HasPrefix(raw, "/") {
			return fmt.Errorf("%w: %s must start with /", domain.ErrInvalidInput, key)
		}
		value = raw
	case KeySessionToken, KeyUsername, KeyFirstName, KeyLastName, KeyEmail:
		value = raw
	case KeyTimeoutMS, KeyDebounceMS, KeyCacheSize:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		value = n
	case KeyMinChars:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, key)
		}
		value = n
	case KeyRateLimit:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		value = f
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Values returns the effective value of every key in Keys order.
func (s *SettingsService) Values() ([]domain.Setting, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	token := ""
	if settings.API.SessionToken != "" {
		token = "********"
	}
	values := map[string]string{
		KeyBaseURL:      settings.API.BaseURL,
		KeySearchPath:   settings.API.SearchPath,
		KeyClosetsPath:  settings.API.ClosetsPath,
		KeyAddItemPath:  settings.API.AddItemPath,
		KeySessionToken: token,
		KeyTimeoutMS:    strconv.FormatInt(settings.API.Timeout.Milliseconds(), 10),
		KeyRateLimit:    strconv.FormatFloat(settings.API.RateLimit, 'g', -1, 64),
		KeyMinChars:     strconv.Itoa(settings.Lookup.MinChars),
		KeyDebounceMS:   strconv.FormatInt(settings.Lookup.Debounce.Milliseconds(), 10),
		KeyCacheSize:    strconv.Itoa(settings.Lookup.CacheSize),
		KeyUsername:     settings.Profile.Username,
		KeyFirstName:    settings.Profile.FirstName,
		KeyLastName:     settings.Profile.LastName,
		KeyEmail:        settings.Profile.Email,
	}

	keys := Keys()
	out := make([]domain.Setting, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.Setting{Key: k, Value: values[k]})
	}
	return out, nil
}

// Path returns where settings are persisted.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) saveAPI(api domain.APISettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyBaseURL, api.BaseURL},
		{KeySearchPath, api.SearchPath},
		{KeyClosetsPath, api.ClosetsPath},
		{KeyAddItemPath, api.AddItemPath},
		{KeyTimeoutMS, api.Timeout.Milliseconds()},
		{KeyRateLimit, api.RateLimit},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if api.SessionToken != "" {
		if err := s.configStore.Set(KeySessionToken, api.SessionToken); err != nil {
			return fmt.Errorf("save %s: %w", KeySessionToken, err)
		}
	}
	return nil
}

func (s *SettingsService) saveLookup(lookup domain.LookupSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyMinChars, lookup.MinChars},
		{KeyDebounceMS, lookup.Debounce.Milliseconds()},
		{KeyCacheSize, lookup.CacheSize},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

func (s *SettingsService) saveProfile(p domain.Profile) error {
	values := []struct {
		key   string
		value string
	}{
		{KeyUsername, p.Username},
		{KeyFirstName, p.FirstName},
		{KeyLastName, p.LastName},
		{KeyEmail, p.Email},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getURL(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	u, err := url.Parse(val)
	if val == "" || err != nil || u.Scheme == "" || u.Host == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

// getNonNegativeInt treats an explicit zero as a real value.
func (s *SettingsService) getNonNegativeInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	ms := s.configStore.GetInt(key)
	if ms < 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *SettingsService) getRate(defaultVal float64) float64 {
	if _, exists := s.configStore.Get(KeyRateLimit); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(KeyRateLimit)
	if val < 0 {
		return defaultVal
	}
	return val
}

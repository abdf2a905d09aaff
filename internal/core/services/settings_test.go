package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/closet-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NotNil(t, service)
	assert.Equal(t, ":memory:", service.Path())
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("api.base_url", "https://shop.test")
	_ = store.Set("api.timeout_ms", 2500)
	_ = store.Set("api.rate_limit", 3.5)
	_ = store.Set("lookup.min_chars", 2)
	_ = store.Set("lookup.debounce_ms", 300)
	_ = store.Set("lookup.cache_size", 0)
	_ = store.Set("account.first_name", "Ada")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, "https://shop.test", settings.API.BaseURL)
	assert.Equal(t, 2500*time.Millisecond, settings.API.Timeout)
	assert.InDelta(t, 3.5, settings.API.RateLimit, 1e-9)
	assert.Equal(t, 2, settings.Lookup.MinChars)
	assert.Equal(t, 300*time.Millisecond, settings.Lookup.Debounce)
	assert.Equal(t, 0, settings.Lookup.CacheSize)
	assert.Equal(t, "Ada", settings.Profile.FirstName)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("api.base_url", "not a url")
	_ = store.Set("lookup.min_chars", 0)
	_ = store.Set("lookup.debounce_ms", -5)
	_ = store.Set("lookup.cache_size", -1)
	_ = store.Set("api.rate_limit", -2.0)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.API.BaseURL, settings.API.BaseURL)
	assert.Equal(t, defaults.Lookup, settings.Lookup)
	assert.InDelta(t, defaults.API.RateLimit, settings.API.RateLimit, 1e-9)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings := domain.DefaultAppSettings()
	settings.API.BaseURL = "https://shop.test"
	settings.API.SessionToken = "tok"
	settings.API.Timeout = 3 * time.Second
	settings.Lookup.Debounce = 250 * time.Millisecond
	settings.Profile = domain.Profile{Username: "ada", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings := domain.DefaultAppSettings()
	settings.Lookup.MinChars = 0

	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)
}

func TestSettingsService_SetLookup(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	err := service.SetLookup(domain.LookupSettings{MinChars: 3, Debounce: time.Second, CacheSize: 10})
	require.NoError(t, err)

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.LookupSettings{MinChars: 3, Debounce: time.Second, CacheSize: 10}, got.Lookup)

	err = service.SetLookup(domain.LookupSettings{MinChars: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetAPI_RejectsBadURL(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	api := domain.DefaultAppSettings().API
	api.BaseURL = "shop.test"

	assert.ErrorIs(t, service.SetAPI(api), domain.ErrInvalidInput)
}

func TestSettingsService_SetProfile(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetProfile(domain.Profile{FirstName: "Grace", Email: "grace@example.com"}))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.Profile.FirstName)
	assert.Equal(t, "grace@example.com", got.Profile.Email)
}

func TestSettingsService_SetValue(t *testing.T) {
	tests := []struct {
		key     string
		raw     string
		wantErr bool
	}{
		{KeyBaseURL, "https://shop.test/", false},
		{KeyBaseURL, "shop", true},
		{KeySearchPath, "/api/search_bar", false},
		{KeySearchPath, "api/search_bar", true},
		{KeyDebounceMS, "200", false},
		{KeyDebounceMS, "-1", true},
		{KeyCacheSize, "0", false},
		{KeyMinChars, "0", true},
		{KeyRateLimit, "2.5", false},
		{KeyRateLimit, "fast", true},
		{KeyEmail, "ada@example.com", false},
		{"unknown.key", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.raw, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())
			err := service.SetValue(tt.key, tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSettingsService_SetValue_TypedStorage(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetValue(KeyBaseURL, "https://shop.test/"))
	require.NoError(t, service.SetValue(KeyDebounceMS, "200"))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "https://shop.test", got.API.BaseURL)
	assert.Equal(t, 200*time.Millisecond, got.Lookup.Debounce)
}

func TestKeys_Unique(t *testing.T) {
	seen := map[string]bool{}
	for _, k := range Keys() {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
	assert.Len(t, seen, 14)
}

func TestSettingsService_Values(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	require.NoError(t, service.SetValue(KeyDebounceMS, "250"))
	require.NoError(t, service.SetValue(KeySessionToken, "secret"))
	require.NoError(t, service.SetValue(KeyFirstName, "Ada"))

	values, err := service.Values()

	require.NoError(t, err)
	require.Len(t, values, len(Keys()))
	got := make(map[string]string, len(values))
	for i, v := range values {
		assert.Equal(t, Keys()[i], v.Key)
		got[v.Key] = v.Value
	}
	assert.Equal(t, domain.DefaultBaseURL, got[KeyBaseURL])
	assert.Equal(t, "250", got[KeyDebounceMS])
	assert.Equal(t, "10", got[KeyRateLimit])
	assert.Equal(t, "128", got[KeyCacheSize])
	assert.Equal(t, "********", got[KeySessionToken])
	assert.Equal(t, "Ada", got[KeyFirstName])
	assert.Empty(t, got[KeyEmail])
}

package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Seed(t *testing.T) {
	s := NewConfigStore(map[string]any{"api.base_url": "http://shop.test"})

	assert.Equal(t, "http://shop.test", s.GetString("api.base_url"))
	assert.Equal(t, Path, s.Path())
	assert.NoError(t, s.Load())
	assert.NoError(t, s.Save())
}

func TestNewConfigStore_SeedIsCopied(t *testing.T) {
	seed := map[string]any{"account.email": "a@shop.test"}
	s := NewConfigStore(seed)

	require.NoError(t, s.Set("account.email", "b@shop.test"))

	assert.Equal(t, "a@shop.test", seed["account.email"])
}

func TestConfigStore_Numbers(t *testing.T) {
	s := NewConfigStore(map[string]any{
		"lookup.cache_size":  64,
		"lookup.debounce_ms": int64(150),
		"api.rate_limit":     2.5,
	})

	assert.Equal(t, 64, s.GetInt("lookup.cache_size"))
	assert.Equal(t, 150, s.GetInt("lookup.debounce_ms"), "TOML integers decode as int64")
	assert.Equal(t, 2, s.GetInt("api.rate_limit"))
	assert.InDelta(t, 2.5, s.GetFloat("api.rate_limit"), 1e-9)
	assert.InDelta(t, 150.0, s.GetFloat("lookup.debounce_ms"), 1e-9)
}

func TestConfigStore_WrongTypesAreZero(t *testing.T) {
	s := NewConfigStore(map[string]any{
		"lookup.min_chars": "three",
		"api.base_url":     42,
	})

	assert.Zero(t, s.GetInt("lookup.min_chars"))
	assert.Zero(t, s.GetFloat("lookup.min_chars"))
	assert.Empty(t, s.GetString("api.base_url"))
	assert.Empty(t, s.GetString("missing"))
	assert.Zero(t, s.GetInt("missing"))

	_, ok := s.Get("missing")
	assert.False(t, ok)
}

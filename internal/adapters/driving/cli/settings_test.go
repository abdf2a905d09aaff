package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

func TestSettingsCmd_Subcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range settingsCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"show", "set", "path"}, names)
}

func TestSettingsCmd_Show(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "api.base_url")
	assert.Contains(t, out, domain.DefaultBaseURL)
	assert.Contains(t, out, "lookup.cache_size")
	assert.Regexp(t, `account\.email\s+-`, out)
}

func TestSettingsCmd_DefaultsToShow(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "api.base_url")
}

func TestSettingsCmd_ShowJSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings", "show", "-o", "json")

	require.NoError(t, err)
	var values []domain.Setting
	require.NoError(t, json.Unmarshal([]byte(out), &values))
	require.NotEmpty(t, values)
	assert.Equal(t, "api.base_url", values[0].Key)
}

func TestSettingsCmd_Set(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "settings", "set", "lookup.min_chars", "3")

	require.NoError(t, err)
	assert.Equal(t, "Set lookup.min_chars\n", out)
	got, err := ts.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 3, got.Lookup.MinChars)
}

func TestSettingsCmd_SetInvalid(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "settings", "set", "lookup.min_chars", "many")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "settings", "set", "no.such.key", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_MaskedToken(t *testing.T) {
	ts := setupTestServices(t)
	require.NoError(t, ts.settings.SetValue("api.session_token", "secret"))

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "********")
}

func TestSettingsCmd_Path(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "settings", "path")

	require.NoError(t, err)
	assert.Equal(t, ts.settings.Path()+"\n", out)
}

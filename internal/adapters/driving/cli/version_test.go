package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "closet version ")
}

func TestVersionCmd_SkipsServiceSetup(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() { SetServices(nil) })
	old := configDir
	configDir = t.TempDir()
	t.Cleanup(func() { configDir = old })

	_, err := execute(t, "version")

	require.NoError(t, err)
	assert.Nil(t, lookupService)
}

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/closet-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/closet-cli/internal/core/domain"
	"github.com/custodia-labs/closet-cli/internal/core/services"
)

// mockLookupService answers queries from a table.
type mockLookupService struct {
	mu      sync.Mutex
	results map[string]domain.SearchResult
	errs    map[string]error
	calls   []string
}

func (m *mockLookupService) Lookup(_ context.Context, q string) (domain.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, q)
	if err := m.errs[q]; err != nil {
		return domain.SearchResult{}, err
	}
	return m.results[q].Normalise(), nil
}

// mockClosetService records closet calls.
type mockClosetService struct {
	closets []domain.Closet
	err     error

	created []string
	deleted []string
	added   []string
}

func (m *mockClosetService) List(context.Context) ([]domain.Closet, error) {
	return m.closets, m.err
}

func (m *mockClosetService) Create(_ context.Context, name string) error {
	m.created = append(m.created, name)
	return m.err
}

func (m *mockClosetService) Delete(_ context.Context, name string) error {
	m.deleted = append(m.deleted, name)
	return m.err
}

func (m *mockClosetService) AddItem(_ context.Context, closet string, item domain.ItemRef) error {
	m.added = append(m.added, closet+":"+item.Label())
	return m.err
}

type testServices struct {
	lookup   *mockLookupService
	closets  *mockClosetService
	settings *services.SettingsService
}

// setupTestServices injects mocks and a memory-backed settings service.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	ts := &testServices{
		lookup: &mockLookupService{
			results: map[string]domain.SearchResult{
				"shirt": {Tags: []string{"shirts"}, Items: []string{"Acme Oxford shirt"}, Brands: []string{"Acme"}},
				"hat":   {Items: []string{"Bucket hat"}},
			},
			errs: map[string]error{},
		},
		closets: &mockClosetService{
			closets: []domain.Closet{
				{Name: "Summer", Items: []domain.ClosetItem{{Item: "Tee", Brand: "Acme"}}},
				{Name: "Work"},
			},
		},
		settings: services.NewSettingsService(memory.NewConfigStore()),
	}
	SetServices(&Services{
		Lookup:         ts.lookup,
		Closets:        ts.closets,
		Settings:       ts.settings,
		LookupSettings: domain.DefaultAppSettings().Lookup,
	})
	t.Cleanup(func() { SetServices(nil) })
	return ts
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	searchOutput, closetsOutput, settingsOutput = outputTable, outputTable, outputTable
	addBrand, mcpHTTPAddr = "", ""

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd(t *testing.T) {
	assert.Equal(t, "closet", rootCmd.Use)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))

	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"search", "closets", "settings", "tui", "mcp", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestSetVersion(t *testing.T) {
	old := version
	t.Cleanup(func() { version = old })

	SetVersion("1.2.3")
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "closet version 1.2.3\n", out)
}

func TestNewServices_FromConfigDir(t *testing.T) {
	dir := t.TempDir()

	s, err := NewServices(dir)

	require.NoError(t, err)
	assert.NotNil(t, s.Lookup)
	assert.NotNil(t, s.Closets)
	assert.NotNil(t, s.ConfigStore)
	assert.Equal(t, dir, s.ConfigStore.Dir())
	assert.Equal(t, domain.DefaultCacheSize, s.LookupSettings.CacheSize)
}

func TestNewServices_InvalidBaseURL(t *testing.T) {
	dir := t.TempDir()
	s, err := NewServices(dir)
	require.NoError(t, err)
	// Written straight to the store, bypassing SetValue validation.
	require.NoError(t, s.ConfigStore.Set("api.base_url", "not a url"))

	reloaded, err := NewServices(dir)

	// Unparseable stored URLs fall back to the default backend.
	require.NoError(t, err)
	assert.NotNil(t, reloaded.Lookup)
}

func TestNewServices_UnusableConfigDirFallsBackToMemory(t *testing.T) {
	// A regular file where the config directory should be.
	dir := filepath.Join(t.TempDir(), "closet")
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0o600))

	s, err := NewServices(dir)

	require.NoError(t, err)
	assert.Nil(t, s.ConfigStore, "nothing to watch")
	assert.Equal(t, memory.Path, s.Settings.Path())
	assert.Equal(t, domain.DefaultAppSettings().Lookup, s.LookupSettings)

	require.NoError(t, s.Settings.SetValue("lookup.min_chars", "2"))
	got, err := s.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, got.Lookup.MinChars)
}

func TestRequireServices(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() { SetServices(nil) })

	assert.True(t, errors.Is(requireLookup(), errNotConfigured))
	assert.True(t, errors.Is(requireClosets(), errNotConfigured))
	assert.True(t, errors.Is(requireSettings(), errNotConfigured))
}

func TestValidateOutput(t *testing.T) {
	for _, f := range []string{"table", "json", "yaml"} {
		assert.NoError(t, validateOutput(f))
	}
	err := validateOutput("xml")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "xml"))
}

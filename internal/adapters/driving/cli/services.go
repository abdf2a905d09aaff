package cli

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/closet-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/closet-cli/internal/adapters/driven/httpapi"
	"github.com/custodia-labs/closet-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/closet-cli/internal/core/domain"
	"github.com/custodia-labs/closet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/closet-cli/internal/core/ports/driving"
	"github.com/custodia-labs/closet-cli/internal/core/services"
	"github.com/custodia-labs/closet-cli/internal/logger"
)

// Services holds the driving ports the commands run against.
type Services struct {
	Lookup   driving.LookupService
	Closets  driving.ClosetService
	Settings driving.SettingsService

	// LookupSettings tunes the TUI search bar.
	LookupSettings domain.LookupSettings

	// ConfigStore is watched for changes while the TUI runs. It is nil when
	// settings are not file-backed.
	ConfigStore *file.ConfigStore
}

var (
	lookupService   driving.LookupService
	closetService   driving.ClosetService
	settingsService driving.SettingsService
	lookupSettings  = domain.DefaultAppSettings().Lookup
	configStore     *file.ConfigStore
)

var errNotConfigured = errors.New("not configured")

// SetServices injects the services the commands use. Once set, no
// services are built from the config directory.
func SetServices(s *Services) {
	if s == nil {
		lookupService, closetService, settingsService, configStore = nil, nil, nil, nil
		return
	}
	lookupService = s.Lookup
	closetService = s.Closets
	settingsService = s.Settings
	lookupSettings = s.LookupSettings
	configStore = s.ConfigStore
}

// ensureServices builds the default stack unless services were injected.
func ensureServices() error {
	if lookupService != nil && closetService != nil && settingsService != nil {
		return nil
	}
	s, err := NewServices(configDir)
	if err != nil {
		return err
	}
	SetServices(s)
	return nil
}

// NewServices wires the file-backed settings store and the HTTP backend
// client found in dir. An empty dir means ~/.closet. When the directory
// cannot be opened, settings are kept in memory for this run and
// ConfigStore is nil.
func NewServices(dir string) (*Services, error) {
	var store driven.ConfigStore
	fileStore, err := file.NewConfigStore(dir)
	if err != nil {
		logger.Warn("config unavailable, using defaults for this session: %v", err)
		store = memory.NewConfigStore()
	} else {
		store = fileStore
	}
	settings := services.NewSettingsService(store)

	app, err := settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	client, err := httpapi.NewClient(app.API)
	if err != nil {
		return nil, fmt.Errorf("create backend client: %w", err)
	}
	logger.Debug("backend %s, config %s", client.BaseURL(), store.Path())

	return &Services{
		Lookup:         services.NewLookupService(client),
		Closets:        services.NewClosetService(client),
		Settings:       settings,
		LookupSettings: app.Lookup,
		ConfigStore:    fileStore,
	}, nil
}

func requireLookup() error {
	if lookupService == nil {
		return fmt.Errorf("lookup service %w", errNotConfigured)
	}
	return nil
}

func requireClosets() error {
	if closetService == nil {
		return fmt.Errorf("closet service %w", errNotConfigured)
	}
	return nil
}

func requireSettings() error {
	if settingsService == nil {
		return fmt.Errorf("settings service %w", errNotConfigured)
	}
	return nil
}

package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrMissingLookupService,
		ErrMissingClosetService,
		ErrMissingSettingsService,
		ErrInvalidPorts,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrors_Messages(t *testing.T) {
	assert.Contains(t, ErrMissingLookupService.Error(), "lookup service")
	assert.Contains(t, ErrMissingClosetService.Error(), "closet service")
	assert.Contains(t, ErrMissingSettingsService.Error(), "settings service")
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}

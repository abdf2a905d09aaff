package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewSearch, "search"},
		{ViewClosets, "closets"},
		{ViewAccount, "account"},
		{ViewSettings, "settings"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_MenuIsZero(t *testing.T) {
	var v ViewType
	assert.Equal(t, ViewMenu, v)
}

func TestClosetOp_Values(t *testing.T) {
	assert.Equal(t, ClosetOp("create"), ClosetCreated)
	assert.Equal(t, ClosetOp("delete"), ClosetDeleted)
	assert.Equal(t, ClosetOp("add_item"), ItemAdded)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_Initials(t *testing.T) {
	assert.Equal(t, "AL", Profile{FirstName: "ada", LastName: "lovelace"}.Initials())
	assert.Equal(t, "É", Profile{FirstName: "émile"}.Initials())
	assert.Equal(t, "", Profile{}.Initials())
}

func TestProfile_DisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Profile{FirstName: "Ada", LastName: "Lovelace"}.DisplayName())
	assert.Equal(t, "ada", Profile{Username: "ada"}.DisplayName())
}

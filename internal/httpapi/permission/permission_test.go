package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleUser, ParseRole("user"))
	assert.Equal(t, RoleModerator, ParseRole("moderator"))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))

	// Unknown values fall back to the plain user role
	assert.Equal(t, RoleUser, ParseRole("superuser"))
	assert.Equal(t, RoleUser, ParseRole(""))
}

func TestCanWriteCatalog(t *testing.T) {
	assert.True(t, CanWriteCatalog(RoleAdmin))
	assert.False(t, CanWriteCatalog(RoleModerator))
	assert.False(t, CanWriteCatalog(RoleUser))
	assert.False(t, CanWriteCatalog(Role("")))
}

func TestCanCreateContent(t *testing.T) {
	assert.True(t, CanCreateContent(RoleUser))
	assert.True(t, CanCreateContent(RoleModerator))
	assert.True(t, CanCreateContent(RoleAdmin))
	assert.False(t, CanCreateContent(Role("")))
}

func TestCanModifyContent(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		isAuthor bool
		expected bool
	}{
		{"author with user role", RoleUser, true, true},
		{"author with moderator role", RoleModerator, true, true},
		{"author with admin role", RoleAdmin, true, true},
		{"stranger with user role", RoleUser, false, false},
		{"stranger with moderator role", RoleModerator, false, true},
		{"stranger with admin role", RoleAdmin, false, true},
		{"anonymous", Role(""), false, false},
		{"anonymous claiming authorship", Role(""), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanModifyContent(tt.role, tt.isAuthor))
		})
	}
}

func TestCanAdminUsers(t *testing.T) {
	assert.True(t, CanAdminUsers(RoleAdmin))
	assert.False(t, CanAdminUsers(RoleModerator))
	assert.False(t, CanAdminUsers(RoleUser))
}

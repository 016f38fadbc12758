package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdminUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		u, err := NewAdminUser("Ops@Verdantia.example", "s3cret-pass", "Ops", AdminRoleAdmin)
		require.NoError(t, err)

		assert.Equal(t, "ops@verdantia.example", u.Email)
		assert.True(t, u.IsActive)
		assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
		assert.True(t, u.VerifyPassword("s3cret-pass"))
		assert.False(t, u.VerifyPassword("wrong"))
	})

	tests := []struct {
		name     string
		email    string
		password string
		display  string
		role     AdminRole
	}{
		{"bad email", "not-an-email", "s3cret-pass", "X", AdminRoleEditor},
		{"short password", "a@b.c", "short", "X", AdminRoleEditor},
		{"empty display name", "a@b.c", "s3cret-pass", "", AdminRoleEditor},
		{"unknown role", "a@b.c", "s3cret-pass", "X", AdminRole("viewer")},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewAdminUser(tt.email, tt.password, tt.display, tt.role)
			assert.Error(t, err)
		})
	}
}

func TestAdminUser_ChangePassword(t *testing.T) {
	u, err := NewAdminUser("a@b.c", "original-pass", "X", AdminRoleEditor)
	require.NoError(t, err)

	assert.Error(t, u.ChangePassword("wrong-pass", "replacement-pass"))

	require.NoError(t, u.ChangePassword("original-pass", "replacement-pass"))
	assert.True(t, u.VerifyPassword("replacement-pass"))
	assert.False(t, u.VerifyPassword("original-pass"))
}

func TestAdminUser_ActivateDeactivate(t *testing.T) {
	u, err := NewAdminUser("a@b.c", "s3cret-pass", "X", AdminRoleEditor)
	require.NoError(t, err)

	assert.Error(t, u.Activate())
	require.NoError(t, u.Deactivate())
	assert.Error(t, u.Deactivate())
	require.NoError(t, u.Activate())
}

func TestAdminUser_SetRole(t *testing.T) {
	u, err := NewAdminUser("a@b.c", "s3cret-pass", "X", AdminRoleEditor)
	require.NoError(t, err)

	require.NoError(t, u.SetRole(AdminRoleAdmin))
	assert.Equal(t, AdminRoleAdmin, u.Role)
	assert.Error(t, u.SetRole(AdminRole("root")))
}

package domain_test

import (
	"testing"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
	"github.com/stretchr/testify/require"
)

func TestValidatePermissions(t *testing.T) {
	t.Parallel()

	t.Run("keeps valid entries in input order", func(t *testing.T) {
		in := []string{"roles.delete", "nope", "users.read", "users.admin", "roles.read"}
		got := domain.ValidatePermissions(in)
		require.Equal(t, []domain.Permission{
			domain.PermRolesDelete,
			domain.PermUsersRead,
			domain.PermRolesRead,
		}, got)
	})

	t.Run("duplicates pass through", func(t *testing.T) {
		got := domain.ValidatePermissions([]string{"users.read", "users.read"})
		require.Equal(t, []domain.Permission{domain.PermUsersRead, domain.PermUsersRead}, got)
	})

	t.Run("no valid entries yields empty set", func(t *testing.T) {
		got := domain.ValidatePermissions([]string{"USERS.READ", " users.read", ""})
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("nil input", func(t *testing.T) {
		require.Empty(t, domain.ValidatePermissions(nil))
	})
}

func TestIsValidPermission(t *testing.T) {
	for _, p := range domain.AllPermissions {
		require.True(t, domain.IsValidPermission(string(p)), p)
	}
	require.False(t, domain.IsValidPermission("stats.read"))
}

func TestIsValidSlug(t *testing.T) {
	require.True(t, domain.IsValidSlug("super-admin"))
	require.True(t, domain.IsValidSlug("tier-2"))
	require.False(t, domain.IsValidSlug("Super-Admin"))
	require.False(t, domain.IsValidSlug("has space"))
	require.False(t, domain.IsValidSlug("under_score"))
	require.False(t, domain.IsValidSlug(""))
}

func TestUserWithRolePermissions(t *testing.T) {
	u := domain.UserWithRole{}
	require.NotNil(t, u.Permissions())
	require.Empty(t, u.Permissions())

	role := &domain.Role{Permissions: []domain.Permission{domain.PermUsersRead}}
	u.Role = role
	perms := u.Permissions()
	require.Equal(t, []domain.Permission{domain.PermUsersRead}, perms)

	// The snapshot is a copy; later role edits must not leak into it.
	role.Permissions[0] = domain.PermRolesDelete
	require.Equal(t, []domain.Permission{domain.PermUsersRead}, perms)
}

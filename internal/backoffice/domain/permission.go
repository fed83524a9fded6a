package domain

import "slices"

// Permission is a `<resource>.<action>` string from the closed catalog below.
type Permission string

const (
	PermUsersRead   Permission = "users.read"
	PermUsersCreate Permission = "users.create"
	PermUsersUpdate Permission = "users.update"
	PermUsersDelete Permission = "users.delete"
	PermRolesRead   Permission = "roles.read"
	PermRolesCreate Permission = "roles.create"
	PermRolesUpdate Permission = "roles.update"
	PermRolesDelete Permission = "roles.delete"
)

// AllPermissions is the full catalog in display order.
var AllPermissions = []Permission{
	PermUsersRead,
	PermUsersCreate,
	PermUsersUpdate,
	PermUsersDelete,
	PermRolesRead,
	PermRolesCreate,
	PermRolesUpdate,
	PermRolesDelete,
}

// IsValidPermission reports whether s is a catalog member.
func IsValidPermission(s string) bool {
	return slices.Contains(AllPermissions, Permission(s))
}

// ValidatePermissions keeps only the catalog members of candidates, in their
// original order. Duplicates are passed through untouched.
func ValidatePermissions(candidates []string) []Permission {
	out := make([]Permission, 0, len(candidates))
	for _, c := range candidates {
		if IsValidPermission(c) {
			out = append(out, Permission(c))
		}
	}
	return out
}

// PermissionStrings converts a permission set to plain strings.
func PermissionStrings(perms []Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

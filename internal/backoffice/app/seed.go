package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/service"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/store"
)

type seedRole struct {
	Name        string
	Slug        string
	Permissions []domain.Permission
}

type seedUser struct {
	Name     string
	Email    string
	Password string
	Status   domain.UserStatus
	RoleSlug string
}

var seedRoles = []seedRole{
	{Name: "Super Admin", Slug: "super-admin", Permissions: domain.AllPermissions},
	{Name: "Admin", Slug: "admin", Permissions: []domain.Permission{
		domain.PermUsersRead, domain.PermUsersCreate, domain.PermUsersUpdate, domain.PermUsersDelete,
		domain.PermRolesRead,
	}},
	{Name: "Viewer", Slug: "viewer", Permissions: []domain.Permission{
		domain.PermUsersRead, domain.PermRolesRead,
	}},
}

var seedUsers = []seedUser{
	{Name: "Super Administrator", Email: "admin@example.com", Password: "Admin123!", Status: domain.UserStatusActive, RoleSlug: "super-admin"},
	{Name: "John Doe", Email: "john@example.com", Password: "Password123!", Status: domain.UserStatusActive, RoleSlug: "admin"},
	{Name: "Jane Smith", Email: "jane@example.com", Password: "Password123!", Status: domain.UserStatusActive, RoleSlug: "viewer"},
	{Name: "Bob Wilson", Email: "bob@example.com", Password: "Password123!", Status: domain.UserStatusInactive, RoleSlug: "viewer"},
}

// SeedResult counts what Seed created; existing rows are skipped.
type SeedResult struct {
	RolesCreated int
	UsersCreated int
}

// Seed installs the demo roles and users. Rows are matched by role slug and
// user email, so running it again changes nothing.
func Seed(ctx context.Context, st store.Store, logger *slog.Logger) (SeedResult, error) {
	var res SeedResult
	roles := &service.RolesService{Store: st}
	users := &service.UserService{Store: st}

	roleIDs := make(map[string]string, len(seedRoles))
	for _, sr := range seedRoles {
		existing, err := st.Roles().GetRoleBySlug(ctx, sr.Slug)
		switch {
		case err == nil:
			roleIDs[sr.Slug] = existing.ID
			continue
		case !errors.Is(err, store.ErrNotFound):
			return res, fmt.Errorf("lookup role %s: %w", sr.Slug, err)
		}

		created, err := roles.Create(ctx, service.CreateRoleInput{
			Name:        sr.Name,
			Slug:        sr.Slug,
			Permissions: domain.PermissionStrings(sr.Permissions),
		})
		if err != nil {
			return res, fmt.Errorf("create role %s: %w", sr.Slug, err)
		}
		roleIDs[sr.Slug] = created.ID
		res.RolesCreated++
		logger.Info("seeded role", "slug", sr.Slug, "id", created.ID)
	}

	for _, su := range seedUsers {
		_, err := st.Users().GetUserByEmail(ctx, su.Email)
		switch {
		case err == nil:
			continue
		case !errors.Is(err, store.ErrNotFound):
			return res, fmt.Errorf("lookup user %s: %w", su.Email, err)
		}

		roleID := roleIDs[su.RoleSlug]
		created, err := users.Create(ctx, service.CreateUserInput{
			Name:     su.Name,
			Email:    su.Email,
			Password: su.Password,
			Status:   su.Status,
			RoleID:   &roleID,
		})
		if err != nil {
			return res, fmt.Errorf("create user %s: %w", su.Email, err)
		}
		res.UsersCreated++
		logger.Info("seeded user", "email", su.Email, "id", created.ID)
	}

	return res, nil
}

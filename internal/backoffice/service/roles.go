package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/store"
	"github.com/aussiebroadwan/backoffice/pkg/idx"
)

type RolesService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *RolesService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

type CreateRoleInput struct {
	Name        string
	Slug        string
	Permissions []string
}

// UpdateRoleInput is a partial update; a nil Permissions leaves them alone.
type UpdateRoleInput struct {
	Name        *string
	Permissions []string
}

// List returns every role, newest first.
func (s *RolesService) List(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListRoles(ctx)
}

func (s *RolesService) Get(ctx context.Context, id string) (domain.Role, error) {
	r, err := s.Store.Roles().GetRoleByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Role{}, ErrRoleNotFound
	}
	return r, err
}

// Create stores a new role. Unknown permission strings are silently dropped.
func (s *RolesService) Create(ctx context.Context, in CreateRoleInput) (domain.Role, error) {
	fe := fieldErrors{}
	checkName(fe, in.Name)
	checkSlug(fe, in.Slug)
	if err := fe.err(); err != nil {
		return domain.Role{}, err
	}

	now := s.now()
	r := domain.Role{
		ID:          idx.NewAt(now).String(),
		Name:        in.Name,
		Slug:        in.Slug,
		Permissions: domain.ValidatePermissions(in.Permissions),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Roles().CreateRole(ctx, r); err != nil {
		return domain.Role{}, err
	}
	return r, nil
}

// Update changes a role's name and/or permissions. Tokens already issued to
// holders keep their old permission snapshot until they expire.
func (s *RolesService) Update(ctx context.Context, id string, in UpdateRoleInput) (domain.Role, error) {
	fe := fieldErrors{}
	if in.Name != nil {
		checkName(fe, *in.Name)
	}
	if err := fe.err(); err != nil {
		return domain.Role{}, err
	}

	var out domain.Role
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		r, err := tx.Roles().GetRoleByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrRoleNotFound
			}
			return err
		}
		if in.Name != nil {
			r.Name = *in.Name
		}
		if in.Permissions != nil {
			r.Permissions = domain.ValidatePermissions(in.Permissions)
		}
		r.UpdatedAt = s.now()

		if err := tx.Roles().UpdateRole(ctx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	return out, err
}

// Delete removes a role. Users holding it end up without a role.
func (s *RolesService) Delete(ctx context.Context, id string) error {
	err := s.Store.Roles().DeleteRole(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrRoleNotFound
	}
	return err
}

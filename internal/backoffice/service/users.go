package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/store"
	"github.com/aussiebroadwan/backoffice/pkg/cryptox"
	"github.com/aussiebroadwan/backoffice/pkg/idx"
)

type UserService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// ListUsersParams are the raw listing inputs; zero page or limit means default.
type ListUsersParams struct {
	Page   int
	Limit  int
	Search string
	RoleID string
	Status domain.UserStatus
}

// UserPage is one page of a user listing.
type UserPage struct {
	Users []domain.UserWithRole
	Page  int
	Limit int
	Total int
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Status   domain.UserStatus
	RoleID   *string
}

// UpdateUserInput is a partial update. Nil fields are left alone; when
// SetRole is true RoleID replaces the role, and a nil or empty RoleID clears it.
type UpdateUserInput struct {
	Name    *string
	Email   *string
	Status  *domain.UserStatus
	SetRole bool
	RoleID  *string
}

func (s *UserService) List(ctx context.Context, p ListUsersParams) (UserPage, error) {
	fe := fieldErrors{}
	if p.Status != "" {
		checkStatus(fe, p.Status)
	}
	if err := fe.err(); err != nil {
		return UserPage{}, err
	}

	page, limit := ParsePagination(p.Page, p.Limit)
	users, total, err := s.Store.Users().ListUsers(ctx, domain.UserFilter{
		Search: p.Search,
		RoleID: p.RoleID,
		Status: p.Status,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return UserPage{}, err
	}
	return UserPage{Users: users, Page: page, Limit: limit, Total: total}, nil
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, id string) (domain.UserWithRole, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.UserWithRole{}, ErrUserNotFound
	}
	return u, err
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (domain.UserWithRole, error) {
	fe := fieldErrors{}
	checkName(fe, in.Name)
	checkEmail(fe, in.Email)
	if len(in.Password) < 6 {
		fe.add("password", "Password must be at least 6 characters")
	}
	checkStatus(fe, in.Status)
	checkRoleID(fe, in.RoleID)
	if err := fe.err(); err != nil {
		return domain.UserWithRole{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.UserWithRole{}, err
	}

	now := s.now()
	u := domain.User{
		ID:           idx.NewAt(now).String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Status:       in.Status,
		RoleID:       normaliseRoleID(in.RoleID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		return domain.UserWithRole{}, err
	}
	return s.Get(ctx, u.ID)
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (domain.UserWithRole, error) {
	fe := fieldErrors{}
	if in.Name != nil {
		checkName(fe, *in.Name)
	}
	if in.Email != nil {
		checkEmail(fe, *in.Email)
	}
	if in.Status != nil {
		checkStatus(fe, *in.Status)
	}
	if in.SetRole {
		checkRoleID(fe, in.RoleID)
	}
	if err := fe.err(); err != nil {
		return domain.UserWithRole{}, err
	}

	var out domain.UserWithRole
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		cur, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		u := cur.User
		if in.Name != nil {
			u.Name = *in.Name
		}
		if in.Email != nil {
			u.Email = *in.Email
		}
		if in.Status != nil {
			u.Status = *in.Status
		}
		if in.SetRole {
			u.RoleID = normaliseRoleID(in.RoleID)
		}
		u.UpdatedAt = s.now()

		if err := tx.Users().UpdateUser(ctx, u); err != nil {
			return err
		}
		out, err = tx.Users().GetUserByID(ctx, id)
		return err
	})
	return out, err
}

// AssignRole sets the user's role to roleID.
func (s *UserService) AssignRole(ctx context.Context, userID, roleID string) (domain.UserWithRole, error) {
	if err := ValidateID("roleId", roleID, "Invalid role ID"); err != nil {
		return domain.UserWithRole{}, err
	}
	return s.Update(ctx, userID, UpdateUserInput{SetRole: true, RoleID: &roleID})
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	err := s.Store.Users().DeleteUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func normaliseRoleID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	v := *id
	return &v
}

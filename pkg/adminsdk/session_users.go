package adminsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// UserPage is one page of GET /users.
type UserPage struct {
	Users []User
	Meta  PageMeta
}

func (o ListUsersOptions) query() string {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.RoleID != "" {
		q.Set("roleId", o.RoleID)
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListUsers returns one page of users. Requires users.read.
func (s *Session) ListUsers(ctx context.Context, opts ListUsersOptions) (*UserPage, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/users"+opts.query(), nil)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[[]User](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}

	page := &UserPage{Users: env.Data}
	if env.Meta != nil {
		page.Meta = *env.Meta
	}
	return page, nil
}

// GetUser requires users.read.
func (s *Session) GetUser(ctx context.Context, id string) (*User, error) {
	return userCall(ctx, s, http.MethodGet, "/users/"+url.PathEscape(id), nil, http.StatusOK)
}

// CreateUser requires users.create.
func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	return userCall(ctx, s, http.MethodPost, "/users", req, http.StatusCreated)
}

// UpdateUser requires users.update.
func (s *Session) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	return userCall(ctx, s, http.MethodPut, "/users/"+url.PathEscape(id), req, http.StatusOK)
}

// AssignRole requires users.update.
func (s *Session) AssignRole(ctx context.Context, userID, roleID string) (*User, error) {
	return userCall(ctx, s, http.MethodPut, "/users/"+url.PathEscape(userID)+"/role",
		AssignRoleRequest{RoleID: roleID}, http.StatusOK)
}

// DeleteUser requires users.delete.
func (s *Session) DeleteUser(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	_, err = decodeEnvelope[any](resp, http.StatusOK)
	return err
}

func userCall(ctx context.Context, s *Session, method, path string, body any, expected int) (*User, error) {
	resp, err := s.doAuthRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[User](resp, expected)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

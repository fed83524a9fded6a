package adminsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListRoles requires roles.read.
func (s *Session) ListRoles(ctx context.Context) ([]Role, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/roles", nil)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[[]Role](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetRole requires roles.read.
func (s *Session) GetRole(ctx context.Context, id string) (*Role, error) {
	return roleCall(ctx, s, http.MethodGet, "/roles/"+url.PathEscape(id), nil, http.StatusOK)
}

// CreateRole requires roles.create. Unknown permissions are dropped by the server.
func (s *Session) CreateRole(ctx context.Context, req CreateRoleRequest) (*Role, error) {
	return roleCall(ctx, s, http.MethodPost, "/roles", req, http.StatusCreated)
}

// UpdateRole requires roles.update.
func (s *Session) UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (*Role, error) {
	return roleCall(ctx, s, http.MethodPut, "/roles/"+url.PathEscape(id), req, http.StatusOK)
}

// DeleteRole requires roles.delete. Holders of the role are left without one.
func (s *Session) DeleteRole(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/roles/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	_, err = decodeEnvelope[any](resp, http.StatusOK)
	return err
}

func roleCall(ctx context.Context, s *Session, method, path string, body any, expected int) (*Role, error) {
	resp, err := s.doAuthRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[Role](resp, expected)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

package adminsdk

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Session is an authenticated client. Requests carry the access token; a
// 401 triggers one refresh and one retry. Concurrent callers that hit a 401
// share a single refresh call and all receive its result.
type Session struct {
	client *Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	user         *User

	refreshGroup singleflight.Group

	// OnRefresh, when set, is called with every rotated token pair so callers
	// can persist it. It runs inside the shared refresh.
	OnRefresh func(AuthData)
}

// AccessToken returns the current access token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// User returns the user returned by the last login or refresh, if any.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Refresh rotates the token pair now. Callers racing with it share the call.
func (s *Session) Refresh(ctx context.Context) error {
	_, err := s.refresh(ctx, s.AccessToken())
	return err
}

// refresh rotates the tokens unless another caller already replaced stale.
// The shared call is detached from the first caller's cancellation so one
// waiter giving up does not fail the rest.
func (s *Session) refresh(ctx context.Context, stale string) (string, error) {
	ch := s.refreshGroup.DoChan("refresh", func() (any, error) {
		s.mu.RLock()
		current, refreshToken := s.accessToken, s.refreshToken
		s.mu.RUnlock()

		if current != stale && current != "" {
			return current, nil
		}
		if refreshToken == "" {
			return "", ErrNoRefreshToken
		}

		data, err := s.client.Refresh(context.WithoutCancel(ctx), refreshToken)
		if err != nil {
			if IsUnauthorized(err) {
				s.clear()
			}
			return "", fmt.Errorf("failed to refresh token: %w", err)
		}

		s.mu.Lock()
		s.accessToken = data.AccessToken
		s.refreshToken = data.RefreshToken
		s.user = &data.User
		s.mu.Unlock()

		if s.OnRefresh != nil {
			s.OnRefresh(*data)
		}
		return data.AccessToken, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// clear drops both tokens once the refresh token has been rejected.
func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refreshToken = ""
	s.user = nil
}

// doAuthRequest sends an authenticated request, refreshing and retrying
// once if the server answers 401.
func (s *Session) doAuthRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	token := s.AccessToken()
	resp, err := s.client.send(ctx, method, path, payload, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	_ = resp.Body.Close()

	fresh, err := s.refresh(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.client.send(ctx, method, path, payload, fresh)
}

// Me returns the authenticated user.
func (s *Session) Me(ctx context.Context) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[MeData](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &env.Data.User, nil
}

// Logout revokes the refresh token and forgets both tokens.
func (s *Session) Logout(ctx context.Context) error {
	refreshToken := s.RefreshToken()
	if refreshToken == "" {
		return ErrNoRefreshToken
	}
	if err := s.client.Logout(ctx, refreshToken); err != nil {
		return err
	}
	s.clear()
	return nil
}

// Permissions lists the permission catalog.
func (s *Session) Permissions(ctx context.Context) ([]string, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/permissions", nil)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[[]string](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Stats returns the dashboard counters.
func (s *Session) Stats(ctx context.Context) (*Stats, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/stats", nil)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[Stats](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

package adminsdk

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

// Client talks to the back-office API. It covers the unauthenticated
// endpoints and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthData, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, "")
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[AuthData](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Refresh rotates refreshToken. The old token is unusable afterwards,
// whether or not the caller keeps the new pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthData, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/refresh", RefreshRequest{RefreshToken: refreshToken}, "")
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[AuthData](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Logout revokes refreshToken. Unknown tokens are accepted.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/logout", RefreshRequest{RefreshToken: refreshToken}, "")
	if err != nil {
		return err
	}
	_, err = decodeEnvelope[any](resp, http.StatusOK)
	return err
}

// Me returns the user behind accessToken.
func (c *Client) Me(ctx context.Context, accessToken string) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil, accessToken)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[MeData](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &env.Data.User, nil
}

// Authenticate logs in and returns a Session holding the resulting tokens.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	data, err := c.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s := c.NewSessionFromTokens(data.AccessToken, data.RefreshToken)
	s.user = &data.User
	return s, nil
}

// NewSessionFromTokens creates a session from previously issued tokens.
func (c *Client) NewSessionFromTokens(accessToken, refreshToken string) *Session {
	return &Session{
		client:       c,
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service and its dependencies are ready.
// A degraded service answers 503, which is returned as an *APIError.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// ErrNoRefreshToken is returned when a session must refresh but holds no
// refresh token.
var ErrNoRefreshToken = errors.New("adminsdk: no refresh token available")

package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/service"
	"github.com/aussiebroadwan/backoffice/pkg/adminsdk"
	"github.com/aussiebroadwan/backoffice/pkg/httpx"
)

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchanges email and password for an access token and a refresh token.
//	@Description	Unknown email, inactive account and wrong password all produce the same 401.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		adminsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	adminsdk.Response[adminsdk.AuthData]
//	@Failure		400		{object}	adminsdk.Response[any]	"Validation failed"
//	@Failure		401		{object}	adminsdk.Response[any]	"Invalid email or password"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req adminsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := service.ValidateLogin(req.Email, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Login successful", toAuthData(res))
}

// HandleRefresh godoc
//
//	@Summary		Rotate a refresh token
//	@Description	Consumes the presented refresh token and returns a new pair. A refresh token can be exchanged once.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		adminsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	adminsdk.Response[adminsdk.AuthData]
//	@Failure		400		{object}	adminsdk.Response[any]	"Validation failed"
//	@Failure		401		{object}	adminsdk.Response[any]	"Invalid or expired refresh token"
//	@Router			/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req adminsdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := service.ValidateRefreshToken(req.RefreshToken); err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Token refreshed successfully", toAuthData(res))
}

// HandleMe godoc
//
//	@Summary		Current user
//	@Description	Returns the authenticated user as currently stored, with its role.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	adminsdk.Response[adminsdk.MeData]
//	@Failure		401	{object}	adminsdk.Response[any]	"Unauthorized or user not found"
//	@Router			/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	u, err := h.AuthService.GetMe(ctx, httpx.UserIDFromContext(ctx))
	if errors.Is(err, service.ErrUserNotFound) {
		httpx.WriteError(w, http.StatusUnauthorized, msgUserNotFound)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "User retrieved successfully", adminsdk.MeData{User: toUser(u)})
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Revokes the refresh token. Unknown and already revoked tokens also succeed.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		adminsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	adminsdk.Response[any]
//	@Failure		400		{object}	adminsdk.Response[any]	"Validation failed"
//	@Router			/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req adminsdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := service.ValidateRefreshToken(req.RefreshToken); err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.AuthService.Logout(ctx, req.RefreshToken); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Logout successful", nil)
}

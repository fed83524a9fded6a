package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/service"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/store"
	"github.com/aussiebroadwan/backoffice/pkg/httpx"
	"github.com/aussiebroadwan/backoffice/pkg/slogx"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgInvalidRefresh     = "Invalid or expired refresh token"
	msgUserNotFound       = "User not found"
	msgRoleNotFound       = "Role not found"
	msgRecordNotFound     = "Record not found"
	msgRouteNotFound      = "Route not found"
	msgDuplicate          = "Duplicate entry found"
	msgBadReference       = "Referenced record not found"
	msgInvalidBody        = "Invalid request body"
	msgInternal           = "Internal server error"
)

// writeServiceError maps service and store errors onto the response
// envelope. Unrecognised errors are logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteValidationError(w, verr.Fields)
	case errors.Is(err, httpx.ErrBadJSON):
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, service.ErrInvalidRefresh):
		httpx.WriteError(w, http.StatusUnauthorized, msgInvalidRefresh)
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, service.ErrRoleNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgRoleNotFound)
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgRecordNotFound)
	case errors.Is(err, store.ErrAlreadyExists):
		httpx.WriteError(w, http.StatusConflict, msgDuplicate)
	case errors.Is(err, store.ErrInvalidReference):
		httpx.WriteError(w, http.StatusBadRequest, msgBadReference)
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("err", err))
		httpx.WriteError(w, http.StatusInternalServerError, msgInternal)
	}
}

// pathID reads the {id} wildcard and checks it is a well formed id.
func pathID(r *http.Request, msg string) (string, error) {
	id := r.PathValue("id")
	if err := service.ValidateID("id", id, msg); err != nil {
		return "", err
	}
	return id, nil
}

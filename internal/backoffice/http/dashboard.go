package http

import (
	"net/http"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/service"
	"github.com/aussiebroadwan/backoffice/pkg/httpx"
)

// PermissionsHandler godoc
//
//	@Summary		List permissions
//	@Description	The fixed permission catalog roles may draw from.
//	@Tags			Roles
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	adminsdk.Response[[]string]
//	@Failure		401	{object}	adminsdk.Response[any]
//	@Router			/permissions [get].
func PermissionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteSuccess(w, http.StatusOK, "Permissions retrieved successfully",
			domain.PermissionStrings(domain.AllPermissions))
	}
}

// StatsHandler serves the dashboard counters.
type StatsHandler struct {
	StatsService *service.StatsService
}

// ServeHTTP godoc
//
//	@Summary		Dashboard statistics
//	@Description	User and role counts plus the most recently created users.
//	@Tags			Dashboard
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	adminsdk.Response[adminsdk.Stats]
//	@Failure		401	{object}	adminsdk.Response[any]
//	@Router			/stats [get].
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsService.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Stats retrieved successfully", toStats(stats))
}

// NotFoundHandler answers every unmatched route.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, msgRouteNotFound)
	}
}

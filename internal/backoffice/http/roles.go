package http

import (
	"net/http"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/service"
	"github.com/aussiebroadwan/backoffice/pkg/adminsdk"
	"github.com/aussiebroadwan/backoffice/pkg/httpx"
)

const msgInvalidRoleID = "Invalid role ID"

// RolesHandler serves role management under /roles.
type RolesHandler struct {
	RolesService *service.RolesService
}

// HandleList godoc
//
//	@Summary	List roles
//	@Tags		Roles
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	adminsdk.Response[[]adminsdk.Role]
//	@Failure	401	{object}	adminsdk.Response[any]
//	@Failure	403	{object}	adminsdk.Response[any]
//	@Router		/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RolesService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Roles retrieved successfully", toRoles(roles))
}

// HandleGet godoc
//
//	@Summary	Get a role
//	@Tags		Roles
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Role id"
//	@Success	200	{object}	adminsdk.Response[adminsdk.Role]
//	@Failure	404	{object}	adminsdk.Response[any]	"Role not found"
//	@Router		/roles/{id} [get].
func (h *RolesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, msgInvalidRoleID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	role, err := h.RolesService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Role retrieved successfully", toRole(role))
}

// HandleCreate godoc
//
//	@Summary		Create a role
//	@Description	Permissions outside the catalog are dropped.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		adminsdk.CreateRoleRequest	true	"New role"
//	@Success		201		{object}	adminsdk.Response[adminsdk.Role]
//	@Failure		400		{object}	adminsdk.Response[any]	"Validation failed"
//	@Failure		409		{object}	adminsdk.Response[any]	"Duplicate entry found"
//	@Router			/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.CreateRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	role, err := h.RolesService.Create(r.Context(), service.CreateRoleInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Permissions: req.Permissions,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "Role created successfully", toRole(role))
}

// HandleUpdate godoc
//
//	@Summary		Update a role
//	@Description	Tokens already issued keep their permission snapshot until they expire.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Role id"
//	@Param			body	body		adminsdk.UpdateRoleRequest	true	"Fields to change"
//	@Success		200		{object}	adminsdk.Response[adminsdk.Role]
//	@Failure		404		{object}	adminsdk.Response[any]	"Role not found"
//	@Router			/roles/{id} [put].
func (h *RolesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, msgInvalidRoleID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req adminsdk.UpdateRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	role, err := h.RolesService.Update(r.Context(), id, service.UpdateRoleInput{
		Name:        req.Name,
		Permissions: req.Permissions,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Role updated successfully", toRole(role))
}

// HandleDelete godoc
//
//	@Summary		Delete a role
//	@Description	Users holding the role are left without one.
//	@Tags			Roles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Role id"
//	@Success		200	{object}	adminsdk.Response[any]
//	@Failure		404	{object}	adminsdk.Response[any]	"Role not found"
//	@Router			/roles/{id} [delete].
func (h *RolesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, msgInvalidRoleID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.RolesService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Role deleted successfully", nil)
}

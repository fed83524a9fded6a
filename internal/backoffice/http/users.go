package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/service"
	"github.com/aussiebroadwan/backoffice/pkg/adminsdk"
	"github.com/aussiebroadwan/backoffice/pkg/httpx"
)

const msgInvalidUserID = "Invalid user ID"

// UsersHandler serves user management under /users.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleList godoc
//
//	@Summary		List users
//	@Description	Paginated listing, newest first. Search matches name or email case-insensitively.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page	query		int		false	"Page number (default 1)"
//	@Param			limit	query		int		false	"Page size, 1..100 (default 10)"
//	@Param			search	query		string	false	"Name or email fragment"
//	@Param			roleId	query		string	false	"Role id filter"
//	@Param			status	query		string	false	"Status filter"	Enums(ACTIVE, INACTIVE)
//	@Success		200		{object}	adminsdk.Response[[]adminsdk.User]
//	@Failure		401		{object}	adminsdk.Response[any]
//	@Failure		403		{object}	adminsdk.Response[any]
//	@Router			/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	res, err := h.UserService.List(r.Context(), service.ListUsersParams{
		Page:   page,
		Limit:  limit,
		Search: q.Get("search"),
		RoleID: q.Get("roleId"),
		Status: domain.UserStatus(q.Get("status")),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WritePage(w, "Users retrieved successfully", toUsers(res.Users), httpx.NewPageMeta(res.Page, res.Limit, res.Total))
}

// HandleGet godoc
//
//	@Summary	Get a user
//	@Tags		Users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	adminsdk.Response[adminsdk.User]
//	@Failure	404	{object}	adminsdk.Response[any]	"User not found"
//	@Router		/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, msgInvalidUserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	u, err := h.UserService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "User retrieved successfully", toUser(u))
}

// HandleCreate godoc
//
//	@Summary	Create a user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		adminsdk.CreateUserRequest	true	"New user"
//	@Success	201		{object}	adminsdk.Response[adminsdk.User]
//	@Failure	400		{object}	adminsdk.Response[any]	"Validation failed or unknown role"
//	@Failure	409		{object}	adminsdk.Response[any]	"Duplicate entry found"
//	@Router		/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.CreateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	u, err := h.UserService.Create(r.Context(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Status:   domain.UserStatus(req.Status),
		RoleID:   req.RoleID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "User created successfully", toUser(u))
}

// updateUserBody keeps roleId raw so an explicit null can be told apart
// from an absent field.
type updateUserBody struct {
	Name   *string         `json:"name"`
	Email  *string         `json:"email"`
	Status *string         `json:"status"`
	RoleID json.RawMessage `json:"roleId"`
}

func (b updateUserBody) input() (service.UpdateUserInput, error) {
	in := service.UpdateUserInput{Name: b.Name, Email: b.Email}
	if b.Status != nil {
		s := domain.UserStatus(*b.Status)
		in.Status = &s
	}
	if len(b.RoleID) == 0 {
		return in, nil
	}

	in.SetRole = true
	if bytes.Equal(b.RoleID, []byte("null")) {
		return in, nil
	}
	var id string
	if err := json.Unmarshal(b.RoleID, &id); err != nil {
		return in, &service.ValidationError{Fields: map[string][]string{"roleId": {"Invalid role ID"}}}
	}
	in.RoleID = &id
	return in, nil
}

// HandleUpdate godoc
//
//	@Summary		Update a user
//	@Description	Partial update. "roleId": null or "" removes the role.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"User id"
//	@Param			body	body		adminsdk.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	adminsdk.Response[adminsdk.User]
//	@Failure		404		{object}	adminsdk.Response[any]	"User not found"
//	@Failure		409		{object}	adminsdk.Response[any]	"Duplicate entry found"
//	@Router			/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, msgInvalidUserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var body updateUserBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeServiceError(w, r, err)
		return
	}
	in, err := body.input()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	u, err := h.UserService.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "User updated successfully", toUser(u))
}

// HandleDelete godoc
//
//	@Summary	Delete a user
//	@Tags		Users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	adminsdk.Response[any]
//	@Failure	404	{object}	adminsdk.Response[any]	"User not found"
//	@Router		/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, msgInvalidUserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.UserService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "User deleted successfully", nil)
}

// HandleAssignRole godoc
//
//	@Summary	Assign a role to a user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string						true	"User id"
//	@Param		body	body		adminsdk.AssignRoleRequest	true	"Role"
//	@Success	200		{object}	adminsdk.Response[adminsdk.User]
//	@Failure	400		{object}	adminsdk.Response[any]	"Validation failed or unknown role"
//	@Failure	404		{object}	adminsdk.Response[any]	"User not found"
//	@Router		/users/{id}/role [put].
func (h *UsersHandler) HandleAssignRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, msgInvalidUserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req adminsdk.AssignRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	u, err := h.UserService.AssignRole(r.Context(), id, req.RoleID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Role assigned successfully", toUser(u))
}

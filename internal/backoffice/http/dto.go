package http

import (
	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/service"
	"github.com/aussiebroadwan/backoffice/pkg/adminsdk"
)

func toRole(r domain.Role) adminsdk.Role {
	return adminsdk.Role{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Permissions: domain.PermissionStrings(r.Permissions),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func toRoles(rs []domain.Role) []adminsdk.Role {
	out := make([]adminsdk.Role, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRole(r))
	}
	return out
}

func toUser(u domain.UserWithRole) adminsdk.User {
	out := adminsdk.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Status:    string(u.Status),
		RoleID:    u.RoleID,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
	if u.Role != nil {
		role := toRole(*u.Role)
		out.Role = &role
	}
	return out
}

func toUsers(us []domain.UserWithRole) []adminsdk.User {
	out := make([]adminsdk.User, 0, len(us))
	for _, u := range us {
		out = append(out, toUser(u))
	}
	return out
}

func toAuthData(res *service.AuthResult) adminsdk.AuthData {
	return adminsdk.AuthData{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		User:         toUser(res.User),
	}
}

func toStats(s service.Stats) adminsdk.Stats {
	acts := make([]adminsdk.Activity, 0, len(s.RecentActivities))
	for _, a := range s.RecentActivities {
		acts = append(acts, adminsdk.Activity{
			ID:        a.ID,
			Action:    a.Action,
			User:      a.User,
			Timestamp: a.Timestamp.UTC(),
			Details:   a.Details,
		})
	}
	return adminsdk.Stats{
		UsersCount:       s.UsersCount,
		RolesCount:       s.RolesCount,
		ActiveUsersCount: s.ActiveUsersCount,
		RecentActivities: acts,
	}
}

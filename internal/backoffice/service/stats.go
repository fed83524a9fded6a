package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/store"
)

// RecentActivityLimit is how many newly created users the dashboard shows.
const RecentActivityLimit = 5

type Activity struct {
	ID        string
	Action    string
	User      string
	Timestamp time.Time
	Details   string
}

type Stats struct {
	UsersCount       int
	RolesCount       int
	ActiveUsersCount int
	RecentActivities []Activity
}

type StatsService struct {
	Store store.Store
}

func (s *StatsService) Get(ctx context.Context) (Stats, error) {
	users, err := s.Store.Users().CountUsers(ctx, "")
	if err != nil {
		return Stats{}, fmt.Errorf("count users: %w", err)
	}
	active, err := s.Store.Users().CountUsers(ctx, domain.UserStatusActive)
	if err != nil {
		return Stats{}, fmt.Errorf("count active users: %w", err)
	}
	roles, err := s.Store.Roles().CountRoles(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count roles: %w", err)
	}
	recent, err := s.Store.Users().ListRecentUsers(ctx, RecentActivityLimit)
	if err != nil {
		return Stats{}, fmt.Errorf("recent users: %w", err)
	}

	acts := make([]Activity, 0, len(recent))
	for i, u := range recent {
		acts = append(acts, Activity{
			ID:        fmt.Sprintf("activity-%d", i),
			Action:    "User Created",
			User:      u.Name,
			Timestamp: u.CreatedAt,
			Details:   "New user registered",
		})
	}

	return Stats{
		UsersCount:       users,
		RolesCount:       roles,
		ActiveUsersCount: active,
		RecentActivities: acts,
	}, nil
}

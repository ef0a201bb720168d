package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"alumnihub/portal/internal/common"
	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/db/repositories"
	"alumnihub/portal/internal/identity"
	"alumnihub/portal/internal/models/dtos"
	"alumnihub/portal/internal/policy"
)

const dashboardCacheTTL = 60 * time.Second

// DashboardService assembles the admin dashboard read models: entity
// counts from the store and account analytics from the identity
// provider. Results are cached briefly and evicted by view invalidation.
type DashboardService struct {
	resolver CallerResolver
	stats    *repositories.StatsRepository
	provider identity.Provider
	cache    common.CacheInterface
	now      func() time.Time
}

func NewDashboardService(resolver CallerResolver, stats *repositories.StatsRepository, provider identity.Provider, cache common.CacheInterface) *DashboardService {
	return &DashboardService{
		resolver: resolver,
		stats:    stats,
		provider: provider,
		cache:    cache,
		now:      time.Now,
	}
}

// PortalStats returns the entity-count header for the admin dashboard.
func (s *DashboardService) PortalStats(ctx context.Context) (*dtos.PortalStatsResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.PortalStatsResult{OperationResult: *failure}, nil
	}

	if !policy.CanManageUsers(caller) {
		return &dtos.PortalStatsResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	stats, err := cachedRead(s.cache, constants.ViewDashboard.String(), func() (*dtos.PortalStatsDTO, error) {
		return s.stats.PortalStats(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch portal stats: %w", err)
	}

	return &dtos.PortalStatsResult{OperationResult: dtos.OK(""), Stats: stats}, nil
}

// Analytics aggregates provider accounts for the admin dashboard: totals
// by role and branch, plus sign-in recency. The account fetch and the
// stats query run concurrently.
func (s *DashboardService) Analytics(ctx context.Context) (*dtos.AnalyticsResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.AnalyticsResult{OperationResult: *failure}, nil
	}

	if !policy.CanManageUsers(caller) {
		return &dtos.AnalyticsResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	analytics, err := cachedRead(s.cache, constants.ViewAdminDashboard.String(), func() (*dtos.AnalyticsDTO, error) {
		return s.buildAnalytics(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build analytics: %w", err)
	}

	return &dtos.AnalyticsResult{OperationResult: dtos.OK(""), Analytics: analytics}, nil
}

// cachedRead returns the cached value for key, loading it on a miss. The
// Redis backend round-trips values through JSON, so a hit can come back
// as a generic decoded shape instead of the type the loader produced; in
// that case it is re-encoded into T.
func cachedRead[T any](cache common.CacheInterface, key string, loader func() (*T, error)) (*T, error) {
	val, err := cache.GetOrSet(key, dashboardCacheTTL, func() (any, error) {
		return loader()
	})
	if err != nil {
		return nil, err
	}

	if typed, ok := val.(*T); ok {
		return typed, nil
	}

	data, err := json.Marshal(val)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode cached value for %s: %w", key, err)
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to decode cached value for %s: %w", key, err)
	}
	return out, nil
}

func (s *DashboardService) buildAnalytics(ctx context.Context) (*dtos.AnalyticsDTO, error) {
	var users []identity.User

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.provider.ListUsers(gctx)
		return err
	})
	// Warm the stats model alongside; the dashboard renders both panels
	// from one page load.
	g.Go(func() error {
		_, err := s.cache.GetOrSet(constants.ViewDashboard.String(), dashboardCacheTTL, func() (any, error) {
			return s.stats.PortalStats(gctx)
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, -1, 0)

	analytics := &dtos.AnalyticsDTO{
		UsersByRole:   map[string]int{},
		UsersByBranch: map[string]int{},
		TotalUsers:    len(users),
	}
	for i := range users {
		u := &users[i]
		analytics.UsersByRole[u.Role.String()]++
		if u.Branch != "" {
			analytics.UsersByBranch[u.Branch]++
		}
		if u.LastSignInAt.After(weekAgo) {
			analytics.ActiveUsers.LastWeek++
		}
		if u.LastSignInAt.After(monthAgo) {
			analytics.ActiveUsers.LastMonth++
		}
	}
	return analytics, nil
}

package api

import (
	"fmt"

	"alumnihub/portal/internal/common"
	"alumnihub/portal/internal/config"
	"alumnihub/portal/internal/db"
	"alumnihub/portal/internal/db/repositories"
	"alumnihub/portal/internal/identity"
	"alumnihub/portal/internal/services"
	"alumnihub/portal/internal/views"
)

type Repositories struct {
	Events      *repositories.EventRepository
	Stories     *repositories.StoryRepository
	Mentors     *repositories.MentorRepository
	Messages    *repositories.MentorMessageRepository
	Posts       *repositories.PostRepository
	Internships *repositories.InternshipRepository
	Stats       *repositories.StatsRepository
}

type Services struct {
	Events      *services.EventService
	Stories     *services.StoryService
	Mentors     *services.MentorService
	Messages    *services.MentorMessageService
	Posts       *services.PostService
	Internships *services.InternshipService
	Users       *services.UserService
	Dashboard   *services.DashboardService
}

type Dependencies struct {
	Repo        *Repositories
	Services    *Services
	Provider    identity.Provider
	Resolver    *identity.Resolver
	Cache       common.CacheInterface
	Invalidator *views.Invalidator
}

// InitDependencies wires repositories, workflows and their shared
// infrastructure from configuration. The GORM handle must already be
// configured and the sqlx handle initialized.
func InitDependencies(cfg *config.Config) (*Dependencies, error) {
	gormDB, err := db.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to init dependencies: %w", err)
	}

	repos := &Repositories{
		Events:      repositories.NewEventRepository(gormDB),
		Stories:     repositories.NewStoryRepository(gormDB),
		Mentors:     repositories.NewMentorRepository(gormDB),
		Messages:    repositories.NewMentorMessageRepository(gormDB),
		Posts:       repositories.NewPostRepository(gormDB),
		Internships: repositories.NewInternshipRepository(gormDB),
		Stats:       repositories.NewStatsRepository(db.DB),
	}

	var cache common.CacheInterface
	if cfg.CacheBackend == "redis" {
		redisCache, err := common.NewRedisCacheService(cfg.RedisAddr(), cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis cache: %w", err)
		}
		cache = redisCache
	} else {
		cache = common.NewCacheService(600, 120)
	}

	invalidator := views.NewInvalidator(cache, 256)

	provider := identity.NewRESTProvider(cfg.IdentityBaseURL, cfg.IdentityAPIKey)
	resolver := identity.NewResolver(provider)

	svcs := &Services{
		Events:      services.NewEventService(resolver, repos.Events, invalidator),
		Stories:     services.NewStoryService(resolver, repos.Stories, invalidator),
		Mentors:     services.NewMentorService(resolver, repos.Mentors, invalidator),
		Messages:    services.NewMentorMessageService(resolver, repos.Messages, repos.Mentors, invalidator),
		Posts:       services.NewPostService(resolver, repos.Posts, invalidator),
		Internships: services.NewInternshipService(resolver, repos.Internships, invalidator),
		Users:       services.NewUserService(resolver, provider, invalidator),
		Dashboard:   services.NewDashboardService(resolver, repos.Stats, provider, cache),
	}

	return &Dependencies{
		Repo:        repos,
		Services:    svcs,
		Provider:    provider,
		Resolver:    resolver,
		Cache:       cache,
		Invalidator: invalidator,
	}, nil
}

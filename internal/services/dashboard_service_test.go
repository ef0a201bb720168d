package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alumnihub/portal/internal/common"
	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/db/repositories"
	"alumnihub/portal/internal/identity"
	"alumnihub/portal/internal/models/entities"
)

// setupSharedDB opens one in-memory database reachable from both the
// gorm handle (schema, seeding) and a sqlx handle (the stats query).
func setupSharedDB(t *testing.T) (*gorm.DB, *sqlx.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := gdb.AutoMigrate(
		&entities.Event{},
		&entities.Story{},
		&entities.Mentor{},
		&entities.MentorMessage{},
		&entities.Post{},
		&entities.Comment{},
		&entities.Internship{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	sdb, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("failed to open sqlx handle: %v", err)
	}
	t.Cleanup(func() { sdb.Close() })

	return gdb, sdb
}

func newDashboardService(t *testing.T, resolver CallerResolver, provider identity.Provider) (*DashboardService, *gorm.DB, common.CacheInterface) {
	t.Helper()

	gdb, sdb := setupSharedDB(t)
	cache := common.NewCacheService(600, 120)
	svc := NewDashboardService(resolver, repositories.NewStatsRepository(sdb), provider, cache)
	return svc, gdb, cache
}

func seedPortalEntities(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	rows := []any{
		&entities.Event{Title: "Reunion", Date: time.Now(), Location: "Auditorium", IsActive: true},
		&entities.Event{Title: "Old Meetup", Date: time.Now(), Location: "Lawn", IsActive: false},
		&entities.Story{Title: "My Journey", Content: "...", Author: "Priya Sharma", IsPublished: true},
		&entities.Story{Title: "Draft", Content: "...", Author: "Priya Sharma", IsPublished: false},
		&entities.Mentor{
			UserID: "alumni-1", Email: "priya@example.com", Name: "Priya Sharma",
			Specializations: []string{"Backend"}, Experience: "8 years", Bio: "...",
			Graduated: "2016", Branch: "CSE", MaxMentees: 1, Status: constants.MentorApproved,
		},
		&entities.Mentor{
			UserID: "alumni-2", Email: "arjun@example.com", Name: "Arjun Rao",
			Specializations: []string{"ML"}, Experience: "5 years", Bio: "...",
			Graduated: "2019", Branch: "ECE", MaxMentees: 1, Status: constants.MentorPending,
		},
		&entities.Post{Title: "Hello", Content: "...", Author: "Rahul Verma", AuthorID: "student-1"},
		&entities.Internship{
			Title: "SWE Intern", Company: "Acme", Location: "Remote",
			Type: constants.InternshipRemote, Duration: "3 months", Stipend: "20000",
			Description: "...", Deadline: time.Now().Add(24 * time.Hour),
		},
	}
	for _, row := range rows {
		if err := gdb.Create(row).Error; err != nil {
			t.Fatalf("failed to seed %T: %v", row, err)
		}
	}
}

func TestPortalStatsRequiresAdmin(t *testing.T) {
	svc, _, _ := newDashboardService(t, asStudent(), newFakeProvider())

	result, err := svc.PortalStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Code != constants.FailUnauthorized {
		t.Errorf("expected unauthorized, got %s", result.Code)
	}
}

func TestPortalStatsCounts(t *testing.T) {
	svc, gdb, _ := newDashboardService(t, asAdmin(), newFakeProvider())
	seedPortalEntities(t, gdb)

	result, err := svc.PortalStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %s", result.Message)
	}

	stats := result.Stats
	if stats.TotalEvents != 2 || stats.ActiveEvents != 1 {
		t.Errorf("event counts wrong: %+v", stats)
	}
	if stats.TotalStories != 2 || stats.PublishedStories != 1 {
		t.Errorf("story counts wrong: %+v", stats)
	}
	if stats.PendingMentors != 1 || stats.ApprovedMentors != 1 {
		t.Errorf("mentor counts wrong: %+v", stats)
	}
	if stats.TotalPosts != 1 || stats.TotalInternships != 1 {
		t.Errorf("post/internship counts wrong: %+v", stats)
	}
}

func TestPortalStatsServedFromCacheUntilEvicted(t *testing.T) {
	svc, gdb, cache := newDashboardService(t, asAdmin(), newFakeProvider())
	ctx := context.Background()

	first, err := svc.PortalStats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Stats.TotalEvents != 0 {
		t.Fatalf("expected empty portal, got %+v", first.Stats)
	}

	seedPortalEntities(t, gdb)

	cached, err := svc.PortalStats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached.Stats.TotalEvents != 0 {
		t.Errorf("second read within the TTL must come from cache, got %+v", cached.Stats)
	}

	cache.Delete(constants.ViewDashboard.String())

	fresh, err := svc.PortalStats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh.Stats.TotalEvents != 2 {
		t.Errorf("eviction must force a reload, got %+v", fresh.Stats)
	}
}

func TestAnalyticsAggregatesProviderAccounts(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	provider := newFakeProvider(
		&identity.User{ID: "u1", Role: constants.RoleAlumni, Branch: "CSE", LastSignInAt: now.AddDate(0, 0, -2)},
		&identity.User{ID: "u2", Role: constants.RoleAlumni, Branch: "CSE", LastSignInAt: now.AddDate(0, 0, -20)},
		&identity.User{ID: "u3", Role: constants.RoleStudent, Branch: "ECE", LastSignInAt: now.AddDate(0, -3, 0)},
		&identity.User{ID: "u4", Role: constants.RoleUnassigned},
	)

	svc, _, _ := newDashboardService(t, asAdmin(), provider)
	svc.now = func() time.Time { return now }

	result, err := svc.Analytics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %s", result.Message)
	}

	a := result.Analytics
	if a.TotalUsers != 4 {
		t.Errorf("total users = %d, want 4", a.TotalUsers)
	}
	if a.UsersByRole["alumni"] != 2 || a.UsersByRole["student"] != 1 {
		t.Errorf("role breakdown wrong: %v", a.UsersByRole)
	}
	if a.UsersByBranch["CSE"] != 2 || a.UsersByBranch["ECE"] != 1 {
		t.Errorf("branch breakdown wrong: %v", a.UsersByBranch)
	}
	if a.ActiveUsers.LastWeek != 1 {
		t.Errorf("last-week actives = %d, want 1", a.ActiveUsers.LastWeek)
	}
	if a.ActiveUsers.LastMonth != 2 {
		t.Errorf("last-month actives = %d, want 2", a.ActiveUsers.LastMonth)
	}
}

// serializedCache mirrors the Redis backend's contract: values are
// stored as JSON and a hit decodes into a generic shape, not the type
// the loader produced.
type serializedCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newSerializedCache() *serializedCache {
	return &serializedCache{items: map[string][]byte{}}
}

func (c *serializedCache) Set(key string, value interface{}, duration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
}

func (c *serializedCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.items[key]
	if !ok {
		return nil, false
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (c *serializedCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *serializedCache) GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error) {
	if val, found := c.Get(key); found {
		return val, nil
	}
	val, err := loader()
	if err != nil {
		return nil, err
	}
	c.Set(key, val, duration)
	return val, nil
}

func (c *serializedCache) Close() error { return nil }

func TestPortalStatsSurvivesSerializedCacheHit(t *testing.T) {
	gdb, sdb := setupSharedDB(t)
	svc := NewDashboardService(asAdmin(), repositories.NewStatsRepository(sdb), newFakeProvider(), newSerializedCache())
	seedPortalEntities(t, gdb)
	ctx := context.Background()

	first, err := svc.PortalStats(ctx)
	if err != nil {
		t.Fatalf("unexpected error on miss: %v", err)
	}

	second, err := svc.PortalStats(ctx)
	if err != nil {
		t.Fatalf("unexpected error on hit: %v", err)
	}
	if *second.Stats != *first.Stats {
		t.Errorf("hit returned %+v, miss returned %+v", second.Stats, first.Stats)
	}
}

func TestAnalyticsSurvivesSerializedCacheHit(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	provider := newFakeProvider(
		&identity.User{ID: "u1", Role: constants.RoleAlumni, Branch: "CSE", LastSignInAt: now.AddDate(0, 0, -2)},
		&identity.User{ID: "u2", Role: constants.RoleStudent, Branch: "ECE"},
	)

	_, sdb := setupSharedDB(t)
	svc := NewDashboardService(asAdmin(), repositories.NewStatsRepository(sdb), provider, newSerializedCache())
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	if _, err := svc.Analytics(ctx); err != nil {
		t.Fatalf("unexpected error on miss: %v", err)
	}

	second, err := svc.Analytics(ctx)
	if err != nil {
		t.Fatalf("unexpected error on hit: %v", err)
	}
	a := second.Analytics
	if a.TotalUsers != 2 || a.UsersByRole["alumni"] != 1 || a.ActiveUsers.LastWeek != 1 {
		t.Errorf("hit returned a mangled aggregate: %+v", a)
	}
}

func TestAnalyticsRequiresAdmin(t *testing.T) {
	svc, _, _ := newDashboardService(t, asAlumni(), newFakeProvider())

	result, err := svc.Analytics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Code != constants.FailUnauthorized {
		t.Errorf("expected unauthorized, got %s", result.Code)
	}
}

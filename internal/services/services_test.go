package services

import (
	"context"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/identity"
	"alumnihub/portal/internal/models/entities"
)

// setupDB opens an in-memory store with the portal schema applied.
// A single connection keeps every query on the same database.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

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
	return gdb
}

// stubResolver returns a fixed caller, or ErrUnauthenticated when nil.
type stubResolver struct {
	caller *identity.Caller
}

func (s *stubResolver) ResolveCaller(ctx context.Context) (*identity.Caller, error) {
	if s.caller == nil {
		return nil, identity.ErrUnauthenticated
	}
	return s.caller, nil
}

func asAdmin() *stubResolver {
	return &stubResolver{caller: &identity.Caller{
		ID:          "admin-1",
		Role:        constants.RoleAdmin,
		DisplayName: "Admin",
		Email:       "admin@example.com",
	}}
}

func asAlumni() *stubResolver {
	return &stubResolver{caller: &identity.Caller{
		ID:          "alumni-1",
		Role:        constants.RoleAlumni,
		DisplayName: "Priya Sharma",
		Email:       "priya@example.com",
	}}
}

func asStudent() *stubResolver {
	return &stubResolver{caller: &identity.Caller{
		ID:          "student-1",
		Role:        constants.RoleStudent,
		DisplayName: "Rahul Verma",
		Email:       "rahul@example.com",
	}}
}

func asUnassigned() *stubResolver {
	return &stubResolver{caller: &identity.Caller{
		ID:          "new-1",
		Role:        constants.RoleUnassigned,
		DisplayName: "New User",
		Email:       "new@example.com",
	}}
}

func asAnonymous() *stubResolver {
	return &stubResolver{}
}

// recordingInvalidator captures the views each mutation reports stale.
type recordingInvalidator struct {
	mu   sync.Mutex
	keys []constants.ViewKey
}

func (r *recordingInvalidator) Invalidate(keys ...constants.ViewKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, keys...)
}

func (r *recordingInvalidator) contains(key constants.ViewKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.keys {
		if k == key {
			return true
		}
	}
	return false
}

func (r *recordingInvalidator) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}

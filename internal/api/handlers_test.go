package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alumnihub/portal/internal/auth"
	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/db/repositories"
	"alumnihub/portal/internal/identity"
	"alumnihub/portal/internal/models/dtos"
	"alumnihub/portal/internal/models/entities"
	"alumnihub/portal/internal/services"
)

// switchResolver lets a test pick the acting caller between requests.
type switchResolver struct {
	caller *identity.Caller
}

func (s *switchResolver) ResolveCaller(ctx context.Context) (*identity.Caller, error) {
	if s.caller == nil {
		return nil, identity.ErrUnauthenticated
	}
	return s.caller, nil
}

func (s *switchResolver) actAsAdmin() {
	s.caller = &identity.Caller{ID: "admin-1", Role: constants.RoleAdmin, Email: "admin@example.com"}
}

func (s *switchResolver) actAsAlumni() {
	s.caller = &identity.Caller{ID: "alumni-1", Role: constants.RoleAlumni, Email: "priya@example.com"}
}

func (s *switchResolver) actAnonymously() {
	s.caller = nil
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(keys ...constants.ViewKey) {}

// newEventRouter wires the event routes over a fresh store.
func newEventRouter(t *testing.T) (*chi.Mux, *switchResolver) {
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
	if err := gdb.AutoMigrate(&entities.Event{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	resolver := &switchResolver{}
	svc := services.NewEventService(resolver, repositories.NewEventRepository(gdb), noopInvalidator{})
	handlers := NewEventHandlers(svc)

	r := chi.NewRouter()
	r.Route("/events", func(events chi.Router) {
		events.Get("/", handlers.ListEvents)
		events.Get("/recent", handlers.RecentEvents)
		events.Get("/{id}", handlers.GetEvent)
		events.Post("/", handlers.CreateEvent)
		events.Patch("/{id}", handlers.UpdateEvent)
		events.Post("/{id}/toggle", handlers.ToggleEvent)
		events.Delete("/{id}", handlers.DeleteEvent)
	})
	return r, resolver
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) dtos.APIResponse[T] {
	t.Helper()
	var resp dtos.APIResponse[T]
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestCreateEventEndpoint(t *testing.T) {
	router, resolver := newEventRouter(t)
	resolver.actAsAdmin()

	rec := doJSON(t, router, http.MethodPost, "/events", dtos.CreateEventRequest{
		Title:    "Alumni Reunion",
		Date:     "2026-12-20T18:00:00Z",
		Location: "Main Auditorium",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	resp := decodeEnvelope[dtos.EventDTO](t, rec)
	if resp.Status != "success" || resp.Data == nil {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Data.Title != "Alumni Reunion" || !resp.Data.IsActive {
		t.Errorf("unexpected event payload: %+v", resp.Data)
	}
}

func TestCreateEventStatusMapping(t *testing.T) {
	router, resolver := newEventRouter(t)

	req := dtos.CreateEventRequest{
		Title:    "Alumni Reunion",
		Date:     "2026-12-20T18:00:00Z",
		Location: "Main Auditorium",
	}

	rec := doJSON(t, router, http.MethodPost, "/events", req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous create = %d, want 401", rec.Code)
	}

	resolver.actAsAlumni()
	rec = doJSON(t, router, http.MethodPost, "/events", req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("alumni create = %d, want 403", rec.Code)
	}

	resolver.actAsAdmin()
	rec = doJSON(t, router, http.MethodPost, "/events", dtos.CreateEventRequest{Title: "No date"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("incomplete create = %d, want 400", rec.Code)
	}

	resp := decodeEnvelope[any](t, rec)
	if resp.Status != "error" || resp.Error == "" {
		t.Errorf("failure envelope must carry an error: %+v", resp)
	}
}

func TestMalformedBody(t *testing.T) {
	router, resolver := newEventRouter(t)
	resolver.actAsAdmin()

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	resp := decodeEnvelope[any](t, rec)
	if resp.Error != "Invalid request body" {
		t.Errorf("unexpected error: %q", resp.Error)
	}
}

func TestGetEventNotFound(t *testing.T) {
	router, _ := newEventRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/events/no-such-id", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListEventsScopes(t *testing.T) {
	router, resolver := newEventRouter(t)

	resolver.actAsAdmin()
	for _, title := range []string{"First", "Second"} {
		rec := doJSON(t, router, http.MethodPost, "/events", dtos.CreateEventRequest{
			Title:    title,
			Date:     "2026-12-20T18:00:00Z",
			Location: "Auditorium",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed create failed: %d", rec.Code)
		}
	}

	resolver.actAnonymously()
	rec := doJSON(t, router, http.MethodGet, "/events", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public listing = %d, want 200", rec.Code)
	}
	resp := decodeEnvelope[[]dtos.EventDTO](t, rec)
	if resp.Data == nil || len(*resp.Data) != 2 {
		t.Errorf("unexpected listing: %+v", resp.Data)
	}

	rec = doJSON(t, router, http.MethodGet, "/events?all=true", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous unscoped listing = %d, want 401", rec.Code)
	}

	resolver.actAsAlumni()
	rec = doJSON(t, router, http.MethodGet, "/events?all=true", nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("alumni unscoped listing = %d, want 403", rec.Code)
	}
}

func TestDeleteEventEndpoint(t *testing.T) {
	router, resolver := newEventRouter(t)
	resolver.actAsAdmin()

	rec := doJSON(t, router, http.MethodPost, "/events", dtos.CreateEventRequest{
		Title:    "Short Lived",
		Date:     "2026-12-20T18:00:00Z",
		Location: "Auditorium",
	})
	created := decodeEnvelope[dtos.EventDTO](t, rec)

	rec = doJSON(t, router, http.MethodDelete, "/events/"+created.Data.ID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete = %d, want 200", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/events/"+created.Data.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted event must be gone, got %d", rec.Code)
	}
}

// fakeIdentity backs the session exchange tests.
type fakeIdentity struct {
	users map[string]*identity.User
}

func (p *fakeIdentity) GetUser(ctx context.Context, id string) (*identity.User, error) {
	if u, ok := p.users[id]; ok {
		return u, nil
	}
	return nil, identity.ErrUserNotFound
}

func (p *fakeIdentity) ListUsers(ctx context.Context) ([]identity.User, error) { return nil, nil }
func (p *fakeIdentity) CreateUser(ctx context.Context, user identity.NewUser) (*identity.User, error) {
	return nil, nil
}
func (p *fakeIdentity) UpdateUserMetadata(ctx context.Context, id string, meta identity.Metadata) error {
	return nil
}
func (p *fakeIdentity) DeleteUser(ctx context.Context, id string) error { return nil }

func TestCreateSession(t *testing.T) {
	secret := []byte("test-secret")
	provider := &fakeIdentity{users: map[string]*identity.User{
		"u1": {ID: "u1", Role: constants.RoleAlumni},
	}}
	handlers := NewAuthHandlers(provider, secret, "frontend-key")

	router := chi.NewRouter()
	router.Post("/auth/session", handlers.CreateSession)

	t.Run("wrong api key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/session", strings.NewReader(`{"userId":"u1"}`))
		req.Header.Set("X-API-Key", "stolen-key")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/session", strings.NewReader(`{"userId":"ghost"}`))
		req.Header.Set("X-API-Key", "frontend-key")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("valid exchange", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/session", strings.NewReader(`{"userId":"u1"}`))
		req.Header.Set("X-API-Key", "frontend-key")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
		}

		resp := decodeEnvelope[sessionResponse](t, rec)
		if resp.Data == nil || resp.Data.Token == "" {
			t.Fatalf("missing token: %+v", resp)
		}
		claims, err := auth.ParseSessionToken(secret, resp.Data.Token)
		if err != nil {
			t.Fatalf("issued token must verify: %v", err)
		}
		if claims.CallerID != "u1" {
			t.Errorf("token subject = %q, want u1", claims.CallerID)
		}
	})
}

package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"alumnihub/portal/internal/api"
	"alumnihub/portal/internal/config"
	"alumnihub/portal/internal/db"
	"alumnihub/portal/internal/logging"
	"alumnihub/portal/internal/metrics"
	"alumnihub/portal/internal/middleware"
)

// RegisterRoutes builds the router: global middleware, health and
// metrics endpoints, and the API v1 surface.
func RegisterRoutes(cfg *config.Config, deps *api.Dependencies, upSince time.Time) http.Handler {
	r := chi.NewRouter()

	metricsReg := metrics.NewMetricsRegistry()

	r.Use(middleware.RequestID)
	r.Use(middleware.RateLimit)
	r.Use(middleware.Session([]byte(cfg.SessionSecret)))
	r.Use(middleware.Metrics(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	logging.Info("router initialized")

	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))
	r.Handle("/metrics", promhttp.Handler())

	authHandlers := api.NewAuthHandlers(deps.Provider, []byte(cfg.SessionSecret), cfg.IdentityAPIKey)
	eventHandlers := api.NewEventHandlers(deps.Services.Events)
	storyHandlers := api.NewStoryHandlers(deps.Services.Stories)
	mentorHandlers := api.NewMentorHandlers(deps.Services.Mentors, deps.Services.Messages)
	postHandlers := api.NewPostHandlers(deps.Services.Posts)
	internshipHandlers := api.NewInternshipHandlers(deps.Services.Internships)
	userHandlers := api.NewUserHandlers(deps.Services.Users)
	dashboardHandlers := api.NewDashboardHandlers(deps.Services.Dashboard)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Post("/auth/session", authHandlers.CreateSession)

		v1.Route("/events", func(events chi.Router) {
			events.Get("/", eventHandlers.ListEvents)
			events.Get("/recent", eventHandlers.RecentEvents)
			events.Get("/{id}", eventHandlers.GetEvent)
			events.Post("/", eventHandlers.CreateEvent)
			events.Patch("/{id}", eventHandlers.UpdateEvent)
			events.Post("/{id}/toggle", eventHandlers.ToggleEvent)
			events.Delete("/{id}", eventHandlers.DeleteEvent)
		})

		v1.Route("/stories", func(stories chi.Router) {
			stories.Get("/", storyHandlers.ListStories)
			stories.Get("/mine", storyHandlers.MyStories)
			stories.Get("/{id}", storyHandlers.GetStory)
			stories.Post("/", storyHandlers.SubmitStory)
			stories.Patch("/{id}", storyHandlers.UpdateStory)
			stories.Post("/{id}/toggle", storyHandlers.ToggleStory)
			stories.Delete("/{id}", storyHandlers.DeleteStory)
		})

		v1.Route("/mentors", func(mentors chi.Router) {
			mentors.Get("/", mentorHandlers.ListMentors)
			mentors.Get("/status", mentorHandlers.MentorStatus)
			mentors.Post("/", mentorHandlers.Apply)
			mentors.Get("/messages", mentorHandlers.Inbox)
			mentors.Post("/messages", mentorHandlers.SendMessage)
			mentors.Post("/messages/{id}/read", mentorHandlers.MarkMessageRead)
			mentors.Get("/{id}", mentorHandlers.GetMentor)
			mentors.Patch("/{id}/status", mentorHandlers.UpdateStatus)
			mentors.Delete("/{id}", mentorHandlers.DeleteMentor)
		})

		v1.Route("/posts", func(posts chi.Router) {
			posts.Get("/", postHandlers.ListPosts)
			posts.Get("/mine", postHandlers.MyPosts)
			posts.Get("/{id}", postHandlers.GetPost)
			posts.Post("/", postHandlers.CreatePost)
			posts.Patch("/{id}", postHandlers.UpdatePost)
			posts.Post("/{id}/like", postHandlers.LikePost)
			posts.Post("/{id}/comments", postHandlers.AddComment)
			posts.Delete("/{id}", postHandlers.DeletePost)
		})

		v1.Route("/internships", func(internships chi.Router) {
			internships.Get("/", internshipHandlers.ListInternships)
			internships.Get("/{id}", internshipHandlers.GetInternship)
			internships.Post("/", internshipHandlers.CreateInternship)
			internships.Delete("/{id}", internshipHandlers.DeleteInternship)
		})

		v1.Route("/users", func(users chi.Router) {
			users.Get("/me", userHandlers.Me)
			users.Post("/role", userHandlers.AssignRole)
			users.Post("/profile", userHandlers.SaveProfile)
		})

		v1.Route("/admin", func(admin chi.Router) {
			admin.Get("/users", userHandlers.ListUsers)
			admin.Post("/users", userHandlers.CreateUser)
			admin.Patch("/users/{id}", userHandlers.UpdateUser)
			admin.Delete("/users/{id}", userHandlers.DeleteUser)
			admin.Get("/stats", dashboardHandlers.PortalStats)
			admin.Get("/analytics", dashboardHandlers.Analytics)
		})
	})

	return r
}

package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"

	"github.com/Dosada05/tournament-engine/handlers"
	"github.com/Dosada05/tournament-engine/middleware"
)

// Settings управляет сквозными middleware маршрутизатора.
type Settings struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	// Metrics может быть nil, тогда /metrics не регистрируется
	Metrics http.Handler
}

func SetupRoutes(
	router *chi.Mux,
	logger *slog.Logger,
	settings Settings,
	scheduleHandler *handlers.ScheduleHandler,
	layoutHandler *handlers.LayoutHandler,
	ratingHandler *handlers.RatingHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)

	origins := settings.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Location", "Retry-After"},
		MaxAge:         300,
	}))

	router.Get("/healthz", handlers.Healthz)
	if settings.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", settings.Metrics)
	}

	router.Group(func(r chi.Router) {
		if settings.RateLimitRPS > 0 {
			r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(settings.RateLimitRPS, settings.RateLimitBurst)))
		}

		r.Route("/schedules", func(r chi.Router) {
			r.Post("/", scheduleHandler.GenerateSchedule)
			r.Post("/knockout/seed", scheduleHandler.SeedKnockout)
			r.Post("/knockout/advance", scheduleHandler.AdvanceKnockout)
		})

		r.Route("/layouts", func(r chi.Router) {
			r.Post("/", layoutHandler.ComputeLayout)
			r.Get("/{tournamentKey}", layoutHandler.GetPublishedLayout)
			r.Put("/{tournamentKey}", layoutHandler.PublishLayout)
		})

		r.Route("/ratings", func(r chi.Router) {
			r.Post("/", ratingHandler.ApplyResult)
			r.Post("/streaks", ratingHandler.Streaks)
		})
	})
}

package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/alumni/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// RouterOptions configures NewRouter. Redis and RateLimitPerMinute are
// optional; rate limiting is enabled only when both are set.
type RouterOptions struct {
	Logger             logging.Logger
	AllowedOrigins     []string
	Registry           *prometheus.Registry
	Redis              redis.UniversalClient
	RateLimitPerMinute int
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	if opts.Registry != nil {
		r.Use(Instrument(NewMetrics(opts.Registry)))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeOK(w, "", envelope{"status": "ok"})
	})
	if opts.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(api chi.Router) {
		if opts.Redis != nil && opts.RateLimitPerMinute > 0 {
			api.Use(RateLimit(opts.Redis, opts.RateLimitPerMinute, time.Minute, "ratelimit"))
		}
		api.Use(h.Session)

		api.Route("/auth", func(a chi.Router) {
			a.Post("/register", h.Register)
			a.Post("/login", h.Login)
			a.Post("/logout", h.Logout)
			a.Get("/me", h.Me)
		})

		api.Route("/introductions", func(i chi.Router) {
			i.Get("/", h.ListIntroductions)
			i.Post("/", h.CreateIntroduction)
			i.Get("/options", h.IntroductionOptions)
			i.Get("/{id}", h.GetIntroduction)
			i.Put("/{id}", h.UpdateIntroduction)
			i.Delete("/{id}", h.DeleteIntroduction)
		})

		api.Route("/admin/users", func(a chi.Router) {
			a.Get("/", h.PendingUsers)
			a.Patch("/{id}/approve", h.ApproveUser)
			a.Patch("/{id}/reject", h.RejectUser)
		})
	})

	return r
}

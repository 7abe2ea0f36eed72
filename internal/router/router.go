package router

import (
	"net/http"

	mem "bodycomp-notion/internal/adapters/storage/memory"
	"bodycomp-notion/internal/domain/journal"
	"bodycomp-notion/internal/domain/measurements"
	"bodycomp-notion/internal/middleware"
	"bodycomp-notion/internal/middleware/ratelimit"
	"bodycomp-notion/internal/platform/logger"
	"bodycomp-notion/internal/platform/metrics"
	"bodycomp-notion/internal/ports/auth"
	"bodycomp-notion/internal/ports/store"

	_ "bodycomp-notion/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Store             store.Store
	DefaultCollection string // NOTION_DATABASE; vacío => primera database listada

	// Opcional: si no viene, journal in-memory.
	Journal journal.Repository

	Limiter      ratelimit.Limiter // puede ser nil (sin rate limit)
	AuthVerifier auth.AuthVerifier // puede ser nil (sin token)

	Logger   logger.Logger
	Registry *prometheus.Registry // puede ser nil (sin /metrics)
}

// Handler es el router más el service de mediciones, para reutilizarlo
// desde otros orígenes (MQTT).
type Handler struct {
	http.Handler
	Measurements *measurements.Service
}

func NewRouter(opts Options) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	journalRepo := opts.Journal
	if journalRepo == nil {
		journalRepo = mem.NewJournalRepo(0)
	}

	// Services por módulo
	journalSvc := journal.NewService(journalRepo)
	measurementsSvc := measurements.NewService(opts.Store, opts.DefaultCollection, journalSvc, log)

	requireToken := middleware.RequireBearer(opts.AuthVerifier, log)
	limit := ratelimit.Middleware(opts.Limiter, log)

	// Rutas por módulo
	measurements.RegisterRoutes(r, measurementsSvc, requireToken, limit)
	r.Group(func(r chi.Router) {
		r.Use(requireToken)
		journal.RegisterRoutes(r, journalSvc)
	})

	if opts.Registry != nil {
		r.Handle("/metrics", metrics.Handler(opts.Registry))
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return &Handler{Handler: r, Measurements: measurementsSvc}
}

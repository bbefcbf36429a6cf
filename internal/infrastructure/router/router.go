package router

import (
	"net/http"
	"time"

	"launchboard-service/internal/interface/api"
	"launchboard-service/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures the HTTP router
type Options struct {
	CORSOrigins []string
	Gatherer    prometheus.Gatherer // nil uses the default registry
}

// NewRouter mounts the launch API, health and metrics endpoints
func NewRouter(launches *api.LaunchHandler, health *api.HealthHandler, log logger.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/health", health.Check)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/launches", func(r chi.Router) {
			r.Get("/", launches.ListLaunches)
			r.Post("/refresh", launches.RefreshLaunches)
			r.Get("/{id}", launches.GetLaunch)
		})
		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", launches.ListFavorites)
			r.Post("/{id}/toggle", launches.ToggleFavorite)
		})
	})

	return r
}

// requestLogger logs one line per request at debug level, errors at warn
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			fields := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).String(),
				"requestID", middleware.GetReqID(r.Context()),
			}
			if ww.Status() >= http.StatusInternalServerError {
				log.Warn("HTTP request failed", fields...)
				return
			}
			log.Debug("HTTP request", fields...)
		})
	}
}

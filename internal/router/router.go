package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/FACorreiaa/go-trip-itinerary/docs"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/trip"
)

// Config contains the handlers and limits the router mounts.
type Config struct {
	TripHandler    *trip.HandlerImpl
	AllowedOrigins []string
	// RequestsPerMinute caps trip requests per client IP. Zero disables the limit.
	RequestsPerMinute int
}

// SetupRouter builds the API routes. Server-wide middleware such as request
// IDs, logging and recovery is applied by the caller.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1/trips", func(r chi.Router) {
		if cfg.RequestsPerMinute > 0 {
			r.Use(httprate.LimitByIP(cfg.RequestsPerMinute, time.Minute))
		}
		r.Post("/resolve", cfg.TripHandler.ResolveTrip)
		r.Post("/filter", cfg.TripHandler.ApplyFilters)
	})

	return r
}

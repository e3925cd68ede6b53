// internal/server/server.go

package server

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"

	"github.com/Roach1197/The-Radar/internal/config"
	"github.com/Roach1197/The-Radar/internal/domain/radar"
	"github.com/Roach1197/The-Radar/internal/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server. natsConn may be nil when alerting is
// disabled; the live stream endpoint is only mounted when it is available.
func NewServer(
	cfg config.ServerConfig,
	alertSubject string,
	sweeper radar.Sweeper,
	natsConn *nats.Conn,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	radarHandler := handlers.NewRadarHandler(sweeper)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		r.Route("/v1", func(r chi.Router) {
			r.Use(apiKeyMiddleware(cfg.APIKey))

			r.Route("/radar", func(r chi.Router) {
				r.Get("/sweep", radarHandler.Sweep)
				r.Get("/multi-sweep", radarHandler.MultiSweep)
				r.Get("/deep-sweep", radarHandler.DeepSweep)
			})
		})
	})

	// WebSocket endpoint streaming opportunity alerts
	if natsConn != nil {
		router.Get("/ws/radar", handlers.RadarWebSocketHandler(natsConn, alertSubject))
	}

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// apiKeyMiddleware enforces the thin X-API-Key check. An empty configured
// key disables it.
func apiKeyMiddleware(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key != "" {
				provided := r.Header.Get("X-API-Key")
				if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
					http.Error(w, "invalid API key", http.StatusUnauthorized)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

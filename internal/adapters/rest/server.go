package rest

import (
	"brokerage-service/internal/core/port"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// MetricsPort - HTTP метрики и их выдача для /metrics
type MetricsPort interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
	// UploadsDir/UploadsPrefix: раздача загруженных файлов, когда медиа хранятся на диске
	UploadsDir    string
	UploadsPrefix string
}

// Handlers - набор обработчиков, собранных в composition root
type Handlers struct {
	Properties *PropertyHandlers
	Leads      *LeadHandlers
	Auth       *AuthHandlers
	Content    *ContentHandlers
}

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(cfg ServerConfig, handlers Handlers, authMiddleware *AuthMiddleware, metrics MetricsPort, baseLogger port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, handlers, authMiddleware, metrics, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// NewRouter собирает роутер; вынесен отдельно для тестов через httptest
func NewRouter(cfg ServerConfig, handlers Handlers, authMiddleware *AuthMiddleware, metrics MetricsPort, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	if metrics != nil {
		r.Use(metrics.Middleware)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	})
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}
	if cfg.UploadsDir != "" && strings.HasPrefix(cfg.UploadsPrefix, "/") {
		prefix := strings.TrimSuffix(cfg.UploadsPrefix, "/")
		fileServer := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get(prefix+"/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// публичные маршруты
		r.Get("/properties", handlers.Properties.ListProperties)
		r.Get("/properties/{propertyID}", handlers.Properties.GetProperty)
		r.Post("/contacts", handlers.Leads.CreateContact)
		r.Post("/inquiries", handlers.Leads.CreateInquiry)
		r.Post("/auth/login", handlers.Auth.Login)

		// только для администраторов
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/me", handlers.Auth.Me)

			r.Get("/properties", handlers.Properties.ListProperties)
			r.Post("/properties", handlers.Properties.CreateProperty)
			r.Post("/properties/generate-description", handlers.Content.GenerateDescription)
			r.Get("/properties/{propertyID}", handlers.Properties.GetProperty)
			r.Patch("/properties/{propertyID}", handlers.Properties.UpdateProperty)
			r.Put("/properties/{propertyID}", handlers.Properties.UpdateProperty)
			r.Delete("/properties/{propertyID}", handlers.Properties.DeleteProperty)

			r.Get("/contacts", handlers.Leads.ListContacts)
			r.Get("/inquiries", handlers.Leads.ListInquiries)

			r.Post("/users", handlers.Auth.CreateUser)
			r.Get("/users/{userID}", handlers.Auth.GetUser)

			r.Post("/media", handlers.Content.UploadMedia)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}

package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"employee-admin/internal/config"
	"employee-admin/internal/handler"
	"employee-admin/internal/middleware"
)

const loginPath = "/admin/employee/login"

type Handlers struct {
	Employee *handler.EmployeeHandler
	Docs     *handler.DocsHandler
}

// HealthFunc reports whether the backing store is reachable.
type HealthFunc func(ctx context.Context) error

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers, health HealthFunc) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM, loginPath)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins, cfg.AdminJWT.TokenHeader, cfg.UserJWT.TokenHeader))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.NotFound(middleware.NotFound)
	r.MethodNotAllowed(middleware.MethodNotAllowed)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if health != nil {
			if err := health(req.Context()); err != nil {
				slog.Error("health check failed", "error", err)
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if h.Docs != nil {
		r.Get("/openapi.yaml", h.Docs.OpenAPI)
		r.Get("/swagger", h.Docs.SwaggerUI)
	}

	r.Route("/admin/employee", func(emp chi.Router) {
		emp.Use(middleware.Timeout(cfg.RequestTimeout))
		emp.NotFound(middleware.NotFound)
		emp.MethodNotAllowed(middleware.MethodNotAllowed)

		emp.Post("/login", h.Employee.Login)
		emp.Post("/logout", h.Employee.Logout)

		emp.Group(func(protected chi.Router) {
			protected.Use(authMiddleware.RequireAuth)

			protected.Post("/", h.Employee.Save)
			protected.Put("/", h.Employee.Update)
			protected.Get("/page", h.Employee.Page)
			protected.Post("/status/{status}", h.Employee.SetStatus)
			protected.Get("/{id:[0-9]+}", h.Employee.GetByID)
		})
	})

	return r
}

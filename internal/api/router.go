// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"exptr-api/internal/api/handler"
	appmw "exptr-api/internal/api/middleware"
	"exptr-api/internal/service"
)

// NewRouter sets up and returns a new HTTP router. Signup and login stay
// public; everything else sits behind the bearer-token authenticator.
func NewRouter(
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	operationHandler *handler.OperationHandler,
	users service.UserService,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", userHandler.Signup)
		r.Post("/login", userHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(appmw.Authenticator(users, logger))
			r.Get("/", userHandler.GetByEmail)
			r.Put("/", userHandler.Update)
			r.Post("/logout", userHandler.Logout)
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Use(appmw.Authenticator(users, logger))
		r.Get("/", categoryHandler.List)
		r.Post("/", categoryHandler.Create)
		r.Put("/", categoryHandler.Update)
		r.Delete("/", categoryHandler.Delete)
	})

	r.Route("/operations", func(r chi.Router) {
		r.Use(appmw.Authenticator(users, logger))
		r.Get("/", operationHandler.Get)
		r.Get("/summary", operationHandler.Summary)
		r.Post("/", operationHandler.Create)
		r.Put("/", operationHandler.Update)
		r.Delete("/", operationHandler.Delete)
	})

	return r
}

package routes

import (
	"net/http"

	"github.com/cmartsolutions/bookstore-api/app"
	"github.com/cmartsolutions/bookstore-api/handlers"
	"github.com/cmartsolutions/bookstore-api/middleware"
	"github.com/cmartsolutions/bookstore-api/models"
	"github.com/cmartsolutions/bookstore-api/utils"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all application routes and middleware. The
// response normalizer is outermost so it observes every response,
// including 401/403 short-circuits from the auth middleware and the
// router's own 404/405.
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Normalize(deps.Logger))
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(deps.Authenticator, deps.TokenIssuer, deps.Logger)
	bookHandler := handlers.NewBookHandler(deps.BookService, deps.Logger)
	userHandler := handlers.NewUserHandler(deps.UserService, deps.Logger)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Logger)

	// Anonymous routes
	r.Get("/healthz", healthHandler.Liveness)
	r.Get("/readyz", healthHandler.Readiness)
	r.Post("/Auth/login", authHandler.Login)
	r.Post("/User/register", userHandler.Register)

	// Book catalog: authentication required on every route; writes are
	// role-gated.
	r.Route("/Books", func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequireAuth)

		r.Get("/", bookHandler.List)
		r.Get("/{id}", bookHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireRole(models.RoleAdmin, models.RoleModerator))
			r.Post("/add-one", bookHandler.Create)
			r.Post("/bulk-add", bookHandler.CreateBulk)
			r.Put("/{id}", bookHandler.Update)
			r.Patch("/{id}", bookHandler.Patch)
		})

		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireRole(models.RoleAdmin))
			r.Delete("/{id}", bookHandler.Delete)
		})
	})

	// Account management: admin-only except for reading a single user
	r.Route("/User", func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequireAuth)

		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireRole(models.RoleAdmin))
			r.Get("/", userHandler.List)
			r.Get("/unverified", userHandler.ListUnverified)
			r.Put("/{id}/verify", userHandler.Verify)
			r.Put("/{id}/roles", userHandler.UpdateRoles)
		})

		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireRole(models.RoleAdmin, models.RoleModerator, models.RoleReadOnly))
			r.Get("/{id}", userHandler.Get)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteNotFound(w, "Endpoint not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorText(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	return r
}

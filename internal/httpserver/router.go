package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"inventra/internal/assistant"
	"inventra/internal/auth"
	"inventra/internal/httpserver/handlers"
	"inventra/internal/models"
	"inventra/internal/services/account"
	"inventra/internal/services/audit"
	"inventra/internal/services/product"
)

// Deps are the services the API exposes.
type Deps struct {
	Accounts   *account.Service
	Products   *product.Service
	Assistant  *assistant.Responder
	Audit      *audit.Recorder
	Cookies    auth.Cookies
	CORSOrigin string
}

func NewRouter(d Deps, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	if d.CORSOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{d.CORSOrigin},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.Post("/api/auth/register", handlers.Register(d.Accounts, d.Cookies, lg))
	r.Post("/api/auth/login", handlers.Login(d.Accounts, d.Cookies, lg))
	r.Post("/api/auth/logout", handlers.Logout(d.Cookies))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.RequireSession(d.Accounts, lg))
		protected.Get("/api/auth/profile", handlers.Profile(d.Accounts, lg))
		protected.Get("/api/auth/check", handlers.CheckSession())

		protected.Get("/api/products", handlers.ListProducts(d.Products, lg))
		protected.Post("/api/products", handlers.CreateProduct(d.Products, lg))
		protected.Get("/api/products/{id}", handlers.GetProduct(d.Products, lg))
		protected.Put("/api/products/{id}", handlers.UpdateProduct(d.Products, lg))
		protected.Delete("/api/products/{id}", handlers.DeleteProduct(d.Products, lg))

		protected.Post("/api/analytics/chatbot", handlers.Chatbot(d.Assistant, lg))

		protected.Get("/api/logs", handlers.MyLogs(d.Audit, lg))
		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole(models.RoleAdmin))
			admin.Get("/api/admin/logs", handlers.AllLogs(d.Audit, lg))
		})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}

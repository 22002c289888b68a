package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/staff"
)

// RouterOptions configures the middleware stack.
type RouterOptions struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter mounts every route under /api. Card, customer and session
// routes need any signed-in staff member; card administration, customer
// deletion and staff management need an admin.
func NewRouter(h *Handler, log *zap.Logger, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		AllowCredentials: true,
	}))
	r.Use(requestTimeout(opts.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)

			r.Get("/sessions/current", h.CurrentSession)

			r.Route("/cards", func(r chi.Router) {
				r.With(h.requireRole(staff.RoleAdmin)).Get("/", h.ListCards)

				r.Route("/{code}", func(r chi.Router) {
					r.Get("/", h.GetCard)
					r.Post("/activation", h.ActivateCard)
					r.Post("/transactions", h.ApplyTransaction)
					r.Get("/transactions", h.GetHistory)
					r.Post("/pin", h.RevealCardPin)

					r.Group(func(r chi.Router) {
						r.Use(h.requireRole(staff.RoleAdmin))
						r.Delete("/", h.DeleteCard)
						r.Post("/reconcile", h.ReconcileCard)
					})
				})
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", h.ListCustomers)
				r.Post("/", h.CreateCustomer)
				r.Get("/{id}", h.GetCustomer)
				r.Put("/{id}", h.UpdateCustomer)
				r.With(h.requireRole(staff.RoleAdmin)).Delete("/{id}", h.DeleteCustomer)
			})

			r.Route("/staff", func(r chi.Router) {
				r.Use(h.requireRole(staff.RoleAdmin))
				r.Get("/", h.ListStaff)
				r.Post("/", h.CreateStaff)
				r.Put("/{id}", h.UpdateStaff)
				r.Delete("/{id}", h.DeleteStaff)
			})
		})
	})

	return r
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/handler"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/middleware"
)

// Handlers bundles the per-resource handlers the router mounts.
type Handlers struct {
	Product         *handler.ProductHandler
	Coupon          *handler.CouponHandler
	Order           *handler.OrderHandler
	User            *handler.UserHandler
	Newsletter      *handler.NewsletterHandler
	PaymentSettings *handler.PaymentSettingsHandler
	Report          *handler.ReportHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, jwtSecret string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: Recovery -> Logging -> CORS -> Authenticate
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.Authenticate(jwtSecret, logger))

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Public storefront surface. Guests can browse, validate
		// coupons and place orders.
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Get("/categories", h.Product.Categories)
			r.Get("/{id}", h.Product.GetByID)
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Post("/validate", h.Coupon.Validate)
			r.Post("/apply", h.Coupon.Apply)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Order.Create)
			r.With(middleware.RequireAuth).Get("/my", h.Order.ListMine)
			r.Get("/{id}", h.Order.GetByID)
			r.Put("/{id}/confirm-payment", h.Order.ConfirmPayment)
		})

		r.Route("/newsletter", func(r chi.Router) {
			r.Post("/subscribe", h.Newsletter.Subscribe)
			r.Post("/unsubscribe", h.Newsletter.Unsubscribe)
		})

		r.Get("/payment-settings", h.PaymentSettings.GetActive)

		// Profile requires a token.
		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/profile", h.User.GetProfile)
			r.Put("/profile", h.User.UpdateProfile)
		})

		// Back office.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Route("/products", func(r chi.Router) {
				r.Post("/", h.Product.Create)
				r.Post("/upload", h.Product.UploadImage)
				r.Put("/{id}", h.Product.Update)
				r.Delete("/{id}", h.Product.Delete)
			})

			r.Route("/coupons", func(r chi.Router) {
				r.Get("/", h.Coupon.List)
				r.Post("/", h.Coupon.Create)
				r.Get("/{id}", h.Coupon.GetByID)
				r.Put("/{id}", h.Coupon.Update)
				r.Delete("/{id}", h.Coupon.Delete)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.Order.List)
				r.Get("/{id}", h.Order.GetByID)
				r.Put("/{id}", h.Order.UpdateStatus)
			})

			r.Route("/payment-settings", func(r chi.Router) {
				r.Get("/", h.PaymentSettings.List)
				r.Post("/", h.PaymentSettings.Create)
				r.Put("/{id}", h.PaymentSettings.Update)
				r.Delete("/{id}", h.PaymentSettings.Delete)
				r.Put("/{id}/activate", h.PaymentSettings.Activate)
			})

			r.Get("/newsletter", h.Newsletter.List)
			r.Get("/reports/dashboard", h.Report.Dashboard)
		})
	})

	return r
}

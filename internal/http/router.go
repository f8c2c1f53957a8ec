package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(RealIP)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(Timeout)
	r.Use(CORS)

	r.Get("/healthz", handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", handler.Dashboard)
		r.Post("/dashboard/alert/dismiss", handler.DismissAlert)

		r.Get("/transactions", handler.ListTransactions)
		r.Post("/transactions", handler.CreateTransaction)

		r.Get("/products", handler.ListProducts)
		r.Post("/products", handler.CreateProduct)
		r.Get("/products/{id}", handler.GetProduct)
		r.Patch("/products/{id}", handler.PatchProduct)
		r.Delete("/products/{id}", handler.DeleteProduct)

		r.Get("/settings", handler.GetSettings)
		r.Put("/settings", handler.UpdateSettings)

		r.Get("/profile", handler.GetProfile)
		r.Put("/profile", handler.UpdateProfile)
		r.Post("/profile/force-owner", handler.ForceOwnerRole)

		r.Get("/reports/sales.xlsx", handler.ExportSalesReport)
	})

	return r
}

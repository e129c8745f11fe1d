package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Maeva109/FTHEARTIZONE/internal/cart"
	"github.com/Maeva109/FTHEARTIZONE/internal/checkout"
	"github.com/Maeva109/FTHEARTIZONE/internal/favorites"
	"github.com/Maeva109/FTHEARTIZONE/internal/payment"
)

type RouterConfig struct {
	CartStore      *cart.Store
	Checkout       checkout.Service
	Simulator      *payment.Simulator
	Catalog        Catalog
	Favorites      favorites.Store
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) http.Handler {
	cartHandler := NewCartHandler(cfg.CartStore, cfg.RequestTimeout)
	checkoutHandler := NewCheckoutHandler(cfg.Checkout, cfg.RequestTimeout)
	paymentHandler := NewPaymentHandler(cfg.Simulator, cfg.RequestTimeout)
	catalogHandler := NewCatalogHandler(cfg.Catalog, cfg.RequestTimeout)
	favoritesHandler := NewFavoritesHandler(cfg.Favorites, cfg.RequestTimeout)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware(cfg.CartStore))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/", cartHandler.AddItem)
			r.Delete("/", cartHandler.ClearCart)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Start)
			r.Get("/{id}", checkoutHandler.GetSession)
			r.Post("/{id}/contact", checkoutHandler.SubmitContact)
			r.Post("/{id}/shipping", checkoutHandler.SubmitShipping)
		})

		r.Route("/payment", func(r chi.Router) {
			r.Post("/{method}/{id}", paymentHandler.Submit)
			r.Get("/{method}/{id}", paymentHandler.Status)
		})

		r.Get("/products", catalogHandler.Products)
		r.Get("/artisans/stats", catalogHandler.ArtisanStats)
		r.Get("/admin/stats", catalogHandler.AdminStats)
		r.Post("/contact", catalogHandler.Contact)

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", favoritesHandler.List)
			r.Post("/", favoritesHandler.Toggle)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}

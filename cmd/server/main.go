package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"sports-package-store/internal/config"
	"sports-package-store/internal/handlers"
	"sports-package-store/internal/middleware"
	"sports-package-store/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize services; the catalog owns products, the cart service
	// owns per-user carts, the order service owns the order registry.
	productService := services.NewProductService()
	cartService := services.NewCartService(productService)
	orderService := services.NewOrderService(cartService)

	// Seed the catalog. A bad seed file leaves the catalog empty rather
	// than partially loaded; the server still starts.
	if err := productService.LoadFromFile(cfg.Catalog.ProductsFile); err != nil {
		log.Printf("Warning: catalog seed load failed: %v", err)
	}

	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.CORS.AllowedOrigins

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.RateLimit(rateLimiter))

	r.Get("/health", healthHandler(cfg))

	r.Route("/api", func(r chi.Router) {
		r.Mount("/products", productHandler.Routes())
		r.Mount("/users", cartHandler.Routes())
		r.Mount("/orders", orderHandler.Routes())
	})

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Printf("Sports package store listening on http://%s (%s)", addr, cfg.Server.Env)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}

var startTime = time.Now()

func healthHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":     true,
			"message":     "Sports package store is running",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"uptime":      time.Since(startTime).String(),
			"environment": cfg.Server.Env,
		})
	}
}

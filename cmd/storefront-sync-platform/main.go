package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/api/handlers"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/api/middleware"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/appstate"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/config"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/health"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/metrics"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/observability"
	service "github.com/aryanmalhotraofficial/storefront-sync-platform/internal/services"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/store"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/pkg/storecore"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracer, err := observability.InitTracer(context.Background(), &cfg.Tracing)
	if err != nil {
		slog.Error("❌ Error initializing tracing", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := store.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Redis connection closed")
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)
	coreClient := storecore.NewClient(&cfg.CoreAPI)
	guestStore := store.NewRedisGuestStore(redisClient, &cfg.GuestStore)
	state := appstate.New()

	cartService := service.NewCartService(guestStore, state)
	cartHandler := handlers.NewCartHandler(cartService)
	wishlistService := service.NewWishlistService(guestStore)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	reconciliationService := service.NewReconciliationService(guestStore, coreClient)
	walletService := service.NewWalletService(coreClient)
	walletHandler := handlers.NewWalletHandler(walletService)
	checkoutService := service.NewCheckoutService(coreClient, walletService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)
	sessionHandler := handlers.NewSessionHandler(authMiddleware, reconciliationService, state)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/guest/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/guest/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/guest/cart/items", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/guest/cart/items/{productID}", cartHandler.RemoveItem())
	routerMux.HandleFunc("DELETE /api/v1/guest/cart", cartHandler.Clear())
	routerMux.HandleFunc("GET /api/v1/guest/wishlist", wishlistHandler.GetWishlist())
	routerMux.HandleFunc("POST /api/v1/guest/wishlist/items", wishlistHandler.AddItem())
	routerMux.HandleFunc("DELETE /api/v1/guest/wishlist/items/{productID}", wishlistHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/v1/auth/session", sessionHandler.CreateSession())
	routerMux.HandleFunc("DELETE /api/v1/auth/session", sessionHandler.DeleteSession())
	routerMux.HandleFunc("GET /api/v1/state", sessionHandler.AppState())
	routerMux.HandleFunc("GET /api/v1/wallet", authMiddleware.Authenticate(walletHandler.GetBalance()))
	routerMux.HandleFunc("GET /api/v1/wallet/policy", authMiddleware.Authenticate(walletHandler.GetPolicy()))
	routerMux.HandleFunc("POST /api/v1/checkout/preview", authMiddleware.Authenticate(walletHandler.PreviewRedemption()))
	routerMux.HandleFunc("POST /api/v1/orders", authMiddleware.Authenticate(checkoutHandler.PlaceOrder()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}

}

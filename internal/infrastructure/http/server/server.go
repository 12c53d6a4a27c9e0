package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/lexnotes/storefront-service/internal/application/use_cases"
	"github.com/lexnotes/storefront-service/internal/config"
	"github.com/lexnotes/storefront-service/internal/infrastructure/auth"
	"github.com/lexnotes/storefront-service/internal/infrastructure/http/handlers"
	"github.com/lexnotes/storefront-service/internal/infrastructure/http/middleware"
	"github.com/lexnotes/storefront-service/internal/infrastructure/payments/stripe"
	"github.com/lexnotes/storefront-service/internal/infrastructure/persistence/postgres"
	"github.com/lexnotes/storefront-service/internal/infrastructure/persistence/redis"
	"github.com/lexnotes/storefront-service/internal/infrastructure/storage/s3"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

type Server struct {
	server            *http.Server
	logger            *logger.Logger
	authMiddleware    func(http.Handler) http.Handler
	healthHandler     *handlers.HealthHandler
	authHandler       *handlers.AuthHandler
	catalogHandler    *handlers.CatalogHandler
	checkoutHandler   *handlers.CheckoutHandler
	webhookHandler    *handlers.WebhookHandler
	downloadHandler   *handlers.DownloadHandler
	libraryHandler    *handlers.LibraryHandler
	submissionHandler *handlers.SubmissionHandler
}

func NewServer(cfg *config.Config, db *sql.DB, redisConn *redis.Connection, logger *logger.Logger) *Server {
	conn := postgres.NewConnectionFromDB(db)
	productRepo := postgres.NewProductRepository(conn)
	purchaseRepo := postgres.NewPurchaseRepository(conn)
	userRepo := postgres.NewUserRepository(conn)
	submissionRepo := postgres.NewSubmissionRepository(conn)

	cache := redis.NewCache(redisConn, logger)

	gateway := stripe.NewClient(cfg.Stripe)

	signer, err := s3.NewPresigner(context.Background(), cfg.Assets)
	if err != nil {
		logger.Fatal("Failed to configure asset signer", "error", err)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	if err != nil {
		logger.Fatal("Failed to configure token manager", "error", err)
	}

	reconcileUseCase := use_cases.NewReconcileUseCase(purchaseRepo, cache, logger)
	libraryUseCase := use_cases.NewLibraryUseCase(purchaseRepo, cache, logger)
	downloadUseCase := use_cases.NewDownloadUseCase(
		productRepo,
		purchaseRepo,
		signer,
		logger,
		time.Duration(cfg.Assets.URLTTLSeconds)*time.Second,
		time.Duration(cfg.Assets.PreviewTTLSeconds)*time.Second,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server:            server,
		logger:            logger,
		authMiddleware:    middleware.NewAuthMiddleware(tokens, cfg.Auth.CookieName),
		healthHandler:     handlers.NewHealthHandler(db, redisConn.GetClient(), logger),
		authHandler:       handlers.NewAuthHandler(userRepo, tokens, logger, cfg.Auth.CookieName, cfg.Auth.CookieSecure),
		catalogHandler:    handlers.NewCatalogHandler(productRepo, logger),
		checkoutHandler:   handlers.NewCheckoutHandler(userRepo, productRepo, gateway, logger),
		webhookHandler:    handlers.NewWebhookHandler(gateway, reconcileUseCase, logger),
		downloadHandler:   handlers.NewDownloadHandler(downloadUseCase, logger),
		libraryHandler:    handlers.NewLibraryHandler(libraryUseCase, logger),
		submissionHandler: handlers.NewSubmissionHandler(submissionRepo, logger),
	}
}

func (s *Server) ListenAndServe() error {
	s.server.Handler = s.setupRoutes()

	s.logger.Info("Starting HTTP server", "address", s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

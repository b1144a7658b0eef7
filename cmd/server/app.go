package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mercato/storefront-api/internal/config"
	"github.com/mercato/storefront-api/internal/platform/postgres"
	"github.com/mercato/storefront-api/internal/service"
	"github.com/mercato/storefront-api/internal/service/auth"
	"github.com/mercato/storefront-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	accountStore  store.AccountStore
	productStore  store.ProductStore
	cartItemStore store.CartItemStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	authService      service.AuthService
	accountService   service.AccountService
	productService   service.ProductService
	cartService      service.CartService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// and database connection that must be established first.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	log.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize credential primitives
	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BCryptCost)
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.accountStore = postgres.NewPostgresAccountStore(db, log)
	app.productStore = postgres.NewPostgresProductStore(db, log)
	app.cartItemStore = postgres.NewPostgresCartItemStore(db, log)

	// Initialize services
	app.authService, err = service.NewAuthService(
		app.accountStore,
		app.passwordHasher,
		app.passwordVerifier,
		app.jwtService,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	app.productService, err = service.NewProductService(
		app.productStore,
		app.accountStore,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %w", err)
	}

	app.cartService, err = service.NewCartService(
		app.cartItemStore,
		app.productStore,
		app.accountStore,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart service: %w", err)
	}

	app.accountService, err = service.NewAccountService(
		app.accountStore,
		app.productStore,
		app.cartItemStore,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	log.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

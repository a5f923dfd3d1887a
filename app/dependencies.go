package app

import (
	"context"
	"fmt"

	"github.com/cmartsolutions/bookstore-api/auth"
	"github.com/cmartsolutions/bookstore-api/config"
	"github.com/cmartsolutions/bookstore-api/middleware"
	"github.com/cmartsolutions/bookstore-api/repositories"
	"github.com/cmartsolutions/bookstore-api/repositories/postgres"
	"github.com/cmartsolutions/bookstore-api/services"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies. This is the central
// wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repositories
	Books repositories.BookRepository
	Users repositories.UserRepository

	// Services
	BookService services.BookService
	UserService services.UserService

	// Auth
	Authenticator  *auth.Authenticator
	TokenIssuer    *auth.TokenIssuer
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initRepositories()
	deps.initServices()
	deps.initAuth(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	db, err := postgres.NewDB(cfg.Database, d.Logger)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	d.DB = db
	return nil
}

func (d *Dependencies) initRepositories() {
	d.Books = postgres.NewBookRepository(d.DB.DB, d.Logger)
	d.Users = postgres.NewUserRepository(d.DB.DB, d.Logger)
	d.Logger.Info("repositories initialized")
}

func (d *Dependencies) initServices() {
	d.BookService = services.NewBookService(d.Books, d.Logger)
	d.UserService = services.NewUserService(d.Users, d.Logger)
	d.Logger.Info("services initialized")
}

func (d *Dependencies) initAuth(cfg *config.Config) {
	tokenCfg := auth.TokenConfig{
		SigningKey: []byte(cfg.JWT.SigningKey),
		Issuer:     cfg.JWT.Issuer,
		Audience:   cfg.JWT.Audience,
		Lifetime:   cfg.JWT.Lifetime,
	}

	d.Authenticator = auth.NewAuthenticator(d.Users, d.Logger)
	d.TokenIssuer = auth.NewTokenIssuer(tokenCfg)
	d.AuthMiddleware = middleware.NewAuthMiddleware(auth.NewTokenVerifier(tokenCfg), d.Logger)
	d.Logger.Info("auth initialized",
		zap.String("issuer", cfg.JWT.Issuer),
		zap.String("audience", cfg.JWT.Audience),
		zap.Duration("token_lifetime", cfg.JWT.Lifetime))
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close() error {
	d.Logger.Info("shutting down dependencies")

	var errs []error
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}
	return nil
}

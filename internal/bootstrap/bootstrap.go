package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/creditbridge/internal/app/controllers"
	appMigrations "github.com/yigit/creditbridge/internal/app/migrations"
	appRepos "github.com/yigit/creditbridge/internal/app/repositories"
	appRoutes "github.com/yigit/creditbridge/internal/app/routes"
	appServices "github.com/yigit/creditbridge/internal/app/services"
	"github.com/yigit/creditbridge/internal/config"
	"github.com/yigit/creditbridge/internal/db"
	appMiddleware "github.com/yigit/creditbridge/internal/middleware"
	pkgAuth "github.com/yigit/creditbridge/internal/pkg/auth"
	"github.com/yigit/creditbridge/internal/pkg/email"
	"github.com/yigit/creditbridge/internal/pkg/logger"
	"github.com/yigit/creditbridge/internal/pkg/notify"
	"github.com/yigit/creditbridge/internal/pkg/websocket"
	"github.com/yigit/creditbridge/internal/seed"
)

// DefaultConfigPath is where the config file is looked up when none is given
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// feedHistorySize is how many recent queue events a newly connected admin is sent
const feedHistorySize = 50

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store             appRepos.Store
	JWTService        *pkgAuth.JWTService
	EmailService      email.EmailService
	Hub               *websocket.Hub // nil when the live feed is disabled
	Notifier          appServices.Notifier
	ResolutionService appServices.ResolutionService
	CatalogService    appServices.CatalogService
	AuthService       appServices.AuthService

	AuthController            *appControllers.AuthController
	TransferRequestController *appControllers.TransferRequestController
	PendingRequestController  *appControllers.PendingRequestController
	CatalogController         *appControllers.CatalogController
	FeedHandler               *websocket.Handler
	AuthMiddleware            *appMiddleware.AuthMiddleware
	Logger                    zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase opens the pool and checks the database answers.
func ConnectDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// RunMigrations applies every pending embedded migration.
func RunMigrations(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	migrator, err := appMigrations.NewMigrator(database.Pool)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer migrator.Close()

	if err := migrator.Up(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}

	version, err := migrator.Version(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	lgr.Info().Int64("version", version).Msg("Database migrations successfully applied.")
	return nil
}

// SetupDatabase connects, migrates and seeds the database.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := ConnectDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := RunMigrations(ctx, database, lgr); err != nil {
		database.Close()
		return nil, err
	}

	// Seed failures are logged; the API can still serve what exists.
	if err := seed.CreateDefaultData(ctx, database.Pool, appRepos.NewPostgresStore(database), cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	return buildDependencies(cfg, appRepos.NewPostgresStore(database), lgr)
}

func buildDependencies(cfg *config.Config, store appRepos.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Store: store, Logger: lgr}

	accessTokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access token expiration: %w", err)
	}
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessTokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.SMTP.BaseURL,
	}, cfg.Notification.AdminEmails, lgr.With().Str("component", "email").Logger())

	// A nil *Hub must not reach the fanout as a non-nil Publisher.
	var feed notify.Publisher
	if cfg.Notification.LiveFeed {
		deps.Hub = websocket.NewHub(feedHistorySize, lgr.With().Str("component", "feed").Logger())
		deps.FeedHandler = websocket.NewHandler(deps.Hub, lgr)
		feed = deps.Hub
	}
	deps.Notifier = notify.NewFanout(deps.EmailService, feed, lgr)

	deps.ResolutionService = appServices.NewResolutionService(
		store,
		deps.Notifier,
		appServices.ResolutionConfig{
			HomeSchoolID:         cfg.Institution.HomeSchoolID,
			PrecedentMaxAgeYears: cfg.Institution.PrecedentMaxAgeYears,
		},
		lgr.With().Str("component", "resolution").Logger(),
	)
	deps.CatalogService = appServices.NewCatalogService(store, cfg.Institution.HomeSchoolID, lgr)
	deps.AuthService = appServices.NewAuthService(store, deps.JWTService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.TransferRequestController = appControllers.NewTransferRequestController(deps.ResolutionService, lgr)
	deps.PendingRequestController = appControllers.NewPendingRequestController(deps.ResolutionService, lgr)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.TransferRequestController,
		deps.PendingRequestController,
		deps.CatalogController,
		deps.FeedHandler,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

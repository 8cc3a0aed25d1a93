package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/clubhub/internal/app/controllers"
	appMigrations "github.com/yigit/clubhub/internal/app/migrations"
	appRepos "github.com/yigit/clubhub/internal/app/repositories"
	appRoutes "github.com/yigit/clubhub/internal/app/routes"
	appServices "github.com/yigit/clubhub/internal/app/services"
	"github.com/yigit/clubhub/internal/config"
	"github.com/yigit/clubhub/internal/db"
	appMiddleware "github.com/yigit/clubhub/internal/middleware"
	pkgAuth "github.com/yigit/clubhub/internal/pkg/auth"
	"github.com/yigit/clubhub/internal/pkg/filestorage"
	"github.com/yigit/clubhub/internal/pkg/helpers"
	"github.com/yigit/clubhub/internal/pkg/logger"
	"github.com/yigit/clubhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	format := strings.ToLower(cfg.Logging.Format)
	logger.Configure(logger.Config{
		Level:   logger.LogLevel(cfg.Logging.Level),
		Pretty:  format == "pretty" || format == "text",
		Service: "clubhub",
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds the admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	migrationsDir := cfg.Database.MigrationsPath
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool, logger.Component("migrator"))
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	account := seed.AdminAccount{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}
	users := appRepos.NewUserRepository(database.Pool)
	if err := seed.EnsureAdmin(ctx, users, database, account, logger.Component("seed")); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed admin account, proceeding anyway...")
	}

	return database, nil
}

// NewJWTService builds the token service from the JWT config section.
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, strings.TrimRight(baseURL, "/")+"/uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = NewJWTService(cfg)
	deps.Services = appServices.NewServices(deps.Repos, database, deps.JWTService, deps.FileStorage, cfg.Leaderboard.Limit)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	svc := deps.Services
	deps.Controllers = &appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(svc.AuthService, deps.FileStorage, logger.Component("auth_controller")),
		User:       appControllers.NewUserController(svc.UserService, svc.LeaderService, svc.Policy),
		Club:       appControllers.NewClubController(svc.ClubService, svc.Policy),
		Membership: appControllers.NewMembershipController(svc.MembershipService, svc.Policy),
		Event:      appControllers.NewEventController(svc.EventService, svc.Policy),
		Message:    appControllers.NewMessageController(svc.MessageService, svc.Policy),
		Search:     appControllers.NewSearchController(svc.SearchService, svc.Policy),
		Admin:      appControllers.NewAdminController(svc.AdminService, svc.LeaderService, svc.Policy),
	}

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
	router.Use(appMiddleware.Recovery(lgr), appMiddleware.RequestLogger(logger.Component("http")))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}

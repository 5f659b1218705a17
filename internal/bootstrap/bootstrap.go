package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/trainhub/internal/app/controllers"
	appMigrations "github.com/yigit/trainhub/internal/app/migrations"
	appRepos "github.com/yigit/trainhub/internal/app/repositories"
	"github.com/yigit/trainhub/internal/app/repositories/memory"
	appRoutes "github.com/yigit/trainhub/internal/app/routes"
	appServices "github.com/yigit/trainhub/internal/app/services"
	"github.com/yigit/trainhub/internal/config"
	"github.com/yigit/trainhub/internal/db"
	appMiddleware "github.com/yigit/trainhub/internal/middleware"
	pkgAuth "github.com/yigit/trainhub/internal/pkg/auth"
	"github.com/yigit/trainhub/internal/pkg/logger"
	"github.com/yigit/trainhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	JWTService     *pkgAuth.JWTService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := logger.Logger()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured store, migrates it and seeds it. The
// returned func releases the store.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, func(), error) {
	var (
		repos   *appRepos.Repositories
		release = func() {}
	)

	switch cfg.Server.Store {
	case config.StorePostgres:
		database, err := db.NewPostgresDB(ctx, cfg, lgr)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}

		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database.Pool, lgr).Up(ctx); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}

		repos = appRepos.NewRepositories(database.Pool)
		release = database.Close
	default:
		lgr.Info().Msg("Using in-memory store")
		repos = memory.NewRepositories()
	}

	if cfg.Server.Seed {
		if err := seed.CreateDefaultData(ctx, repos, pkgAuth.NewPasswords(cfg.JWT.BcryptCost), lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}
	return repos, release, nil
}

// BuildDependencies initializes services, middleware and controllers.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	secret := cfg.JWT.Secret
	if secret == "" {
		secret = uuid.NewString()
		lgr.Warn().Msg("No JWT secret configured, sessions will not survive a restart")
	}

	deps := &Dependencies{Repos: repos, Logger: lgr}
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:         secret,
		SessionExpiration: cfg.SessionExpiration(),
		TokenIssuer:       cfg.JWT.Issuer,
	})
	deps.Services = appServices.NewServices(repos, deps.JWTService, pkgAuth.NewPasswords(cfg.JWT.BcryptCost), lgr)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, cfg.Server.RequireAuth)

	deps.Controllers = appRoutes.Controllers{
		Auth:          appControllers.NewAuthController(deps.Services.Auth, lgr),
		Users:         appControllers.NewUserController(deps.Services.Users),
		Students:      appControllers.NewStudentController(deps.Services.Students),
		Trainers:      appControllers.NewTrainerController(deps.Services.Trainers),
		Courses:       appControllers.NewCourseController(deps.Services.Courses),
		Registrations: appControllers.NewRegistrationController(deps.Services.Registrations),
		Grades:        appControllers.NewGradeController(deps.Services.Grades),
	}
	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	appMiddleware.UseValidation()

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(deps.Logger))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	return router
}

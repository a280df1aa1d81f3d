package container

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/rithm-app/rithm-backend/internal/config"
	"github.com/rithm-app/rithm-backend/internal/delivery/http"
	"github.com/rithm-app/rithm-backend/internal/delivery/http/handler"
	"github.com/rithm-app/rithm-backend/internal/delivery/http/middleware"
	"github.com/rithm-app/rithm-backend/internal/infrastructure/database"
	"github.com/rithm-app/rithm-backend/internal/infrastructure/email"
	"github.com/rithm-app/rithm-backend/internal/infrastructure/gemini"
	"github.com/rithm-app/rithm-backend/internal/infrastructure/server"
	"github.com/rithm-app/rithm-backend/internal/logging"
	"github.com/rithm-app/rithm-backend/internal/repository/postgres"
	redisrepo "github.com/rithm-app/rithm-backend/internal/repository/redis"
	"github.com/rithm-app/rithm-backend/internal/usecase/auth"
	"github.com/rithm-app/rithm-backend/internal/usecase/feed"
	"github.com/rithm-app/rithm-backend/internal/usecase/gate"
	"github.com/rithm-app/rithm-backend/internal/usecase/match"
	"github.com/rithm-app/rithm-backend/internal/usecase/profile"
	"github.com/rithm-app/rithm-backend/internal/usecase/swipe"
)

// Container holds all application dependencies. Collaborator handles are
// built once at process start and injected; nothing global, nothing
// per-request.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redisclient.Client
	Server *server.Server
	Gemini *gemini.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	logger := logging.New(cfg.Logging)

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		return nil, err
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize Gemini client; analysis is advisory, so a failure here
	// only disables the screenshot feature.
	var geminiClient *gemini.Client
	if cfg.Gemini.APIKey != "" {
		geminiClient, err = gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			logger.Warn("gemini client unavailable, screenshot analysis disabled", "error", err)
			geminiClient = nil
		}
	} else {
		logger.Info("no gemini api key configured, screenshot analysis disabled")
	}

	// Match notification is best-effort; without a Resend key we simply
	// record matches silently.
	var notifier swipe.MatchNotifier
	if cfg.Email.ResendAPIKey != "" {
		notifier = email.NewSender(cfg.Email)
	} else {
		logger.Info("no resend api key configured, match emails disabled")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	sessionRepo := redisrepo.NewSessionRepository(redisClient)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(userRepo, sessionRepo, cfg.JWT, logger)
	profileUseCase := profile.NewProfileUseCase(profileRepo, analyzerOrNil(geminiClient), logger)
	feedUseCase := feed.NewFeedUseCase(profileRepo, swipeRepo, logger)
	swipeUseCase := swipe.NewSwipeUseCase(swipeRepo, matchRepo, profileRepo, userRepo, notifier, logger)
	matchUseCase := match.NewMatchUseCase(matchRepo, profileRepo, logger)
	gateUseCase := gate.NewGateUseCase(profileRepo, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	feedHandler := handler.NewFeedHandler(feedUseCase)
	swipeHandler := handler.NewSwipeHandler(swipeUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)
	gateHandler := handler.NewGateHandler(gateUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		feedHandler,
		swipeHandler,
		matchHandler,
		gateHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, logger)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Gemini: geminiClient,
	}, nil
}

// analyzerOrNil keeps the profile usecase's interface field a true nil when
// the client is absent, instead of a typed nil that dodges nil checks.
func analyzerOrNil(client *gemini.Client) profile.ImageAnalyzer {
	if client == nil {
		return nil
	}
	return client
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Error("failed to close redis", "error", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}

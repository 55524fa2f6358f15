package main

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pawnsgambit/club-api/internal/auth"
	"github.com/pawnsgambit/club-api/internal/cms"
	"github.com/pawnsgambit/club-api/internal/config"
	"github.com/pawnsgambit/club-api/internal/content"
	"github.com/pawnsgambit/club-api/internal/database"
	"github.com/pawnsgambit/club-api/internal/handler"
	"github.com/pawnsgambit/club-api/internal/middleware"
	"github.com/pawnsgambit/club-api/internal/notify"
	"github.com/pawnsgambit/club-api/internal/queue"
	"github.com/pawnsgambit/club-api/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	rdb := config.NewRedisClient()

	bus := notify.NewBus()
	client := cms.New(cms.Config{
		BaseURL:  cfg.CMSBaseURL,
		MediaURL: cfg.CMSMediaURL,
		APIToken: cfg.CMSAPIToken,
		Timeout:  cfg.CMSTimeout,
		CacheTTL: cfg.CMSCacheTTL,
	}, bus, logger)

	store, err := sessionStore(cfg, rdb)
	if err != nil {
		logger.Fatal("session store init failed", zap.Error(err))
	}
	// The manager binds the stored token to the CMS client and reacts to
	// auth errors; handlers use the stateless API for per-request tokens.
	_ = auth.NewManager(client, store, bus, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.Identity())

	router.RegisterRoutes(e)
	router.RegisterContent(e, router.ContentHandlers{
		Events:     handler.NewEventsHandler(content.NewEvents(client), logger),
		Podcasts:   handler.NewPodcastsHandler(content.NewPodcasts(client)),
		Community:  handler.NewCommunityHandler(content.NewCommunity(client)),
		News:       handler.NewNewsHandler(content.NewNews(client)),
		About:      handler.NewAboutHandler(content.NewAbout(client)),
		Volunteers: handler.NewVolunteersHandler(content.NewVolunteers(client)),
	},
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	)
	router.RegisterAuth(e, handler.NewAuthHandler(auth.NewAPI(client), bus, logger))

	// Consume activity messages in the background; the loop reconnects on
	// broker failures and never takes the server down.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			logger.Error("activity consumer stopped", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// sessionStore picks the persistence backend for the auth session per the
// SESSION_STORE setting.
func sessionStore(cfg config.Config, rdb *redis.Client) (auth.Store, error) {
	switch cfg.SessionStore {
	case "redis":
		if rdb == nil {
			return nil, errors.New("SESSION_STORE=redis but redis is not reachable")
		}
		return auth.NewRedisStore(rdb, "session"), nil
	case "mysql":
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, err
		}
		return auth.NewSQLStore(db), nil
	default:
		return auth.NewMemoryStore(), nil
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	return logger
}

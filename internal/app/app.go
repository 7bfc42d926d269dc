package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Kim-wonder/routineon/internal/config"
	"github.com/Kim-wonder/routineon/internal/httpserver"
	"github.com/Kim-wonder/routineon/internal/httpserver/deps"
	"github.com/Kim-wonder/routineon/internal/index"
	"github.com/Kim-wonder/routineon/internal/logger"
	"github.com/Kim-wonder/routineon/internal/notify"
	"github.com/Kim-wonder/routineon/internal/push"
	"github.com/Kim-wonder/routineon/internal/redis"
	"github.com/Kim-wonder/routineon/internal/seed"
	redisstore "github.com/Kim-wonder/routineon/internal/store/redis"
	"github.com/Kim-wonder/routineon/internal/version"
	"github.com/Kim-wonder/routineon/internal/youtube"

	"github.com/go-playground/validator/v10"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	engine      *notify.Engine
	importer    *seed.Importer
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	memIndex := index.NewMemoryIndex()
	store := redisstore.NewStore(redisClient)

	// Prime the memory index so the engine's first tick sees stored alarms
	syncer := notify.NewSyncer(store, memIndex, loggerClient)
	if err := syncer.Sync(context.Background()); err != nil {
		loggerClient.Warn("failed to sync from redis on startup, starting empty",
			logger.Error(err))
	}

	// Push channel is optional: init failure degrades to in-app reminders
	var sender push.Sender
	if cfg.FCMCredentialsFile != "" {
		fcm, err := push.NewFCMSender(context.Background(), cfg.FCMCredentialsFile, cfg.FCMDeviceToken)
		if err != nil {
			loggerClient.Warn("failed to initialize push channel, reminders are in-app only",
				logger.Error(err))
		} else {
			loggerClient.Info("push channel initialized")
			sender = fcm
		}
	} else {
		loggerClient.Info("no push credentials configured, reminders are in-app only")
	}

	engine := notify.NewEngine(memIndex, store, sender, loggerClient, notify.Options{
		PollInterval:  cfg.PollInterval,
		TriggerWindow: cfg.TriggerWindow,
		RetryInterval: cfg.RetryInterval,
		MaxRetries:    cfg.MaxRetries,
	})

	// Seed importer (if a seed file is configured)
	var importer *seed.Importer
	var seedReloadTrigger chan struct{}
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured, initializing importer",
			logger.String("file", cfg.SeedFile))
		seedReloadTrigger = make(chan struct{}, 1)
		importer = seed.NewImporter(cfg.SeedFile, store, memIndex, loggerClient, seedReloadTrigger)
	} else {
		loggerClient.Info("seed file not configured, seeding disabled")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:              loggerClient,
		StartTime:           time.Now(),
		Version:             version.Version,
		Commit:              version.Commit,
		BuildDate:           version.BuildDate,
		GoVersion:           version.GoVersion,
		TimeNow:             time.Now,
		AllowedHosts:        cfg.AllowedHosts,
		AllowedCIDRS:        cfg.AllowedCIDRS,
		TrustProxy:          cfg.TrustProxy,
		RedisClient:         redisClient,
		Store:               store,
		MemoryIndex:         memIndex,
		Engine:              engine,
		YouTube:             youtube.NewClient(cfg.OEmbedEndpoint, cfg.FetchTimeout),
		Validate:            validator.New(),
		SeedReloadTrigger:   seedReloadTrigger,
		ResolveBurst:        cfg.ResolveBurst,
		ResolveRefillPerMin: cfg.ResolveRefillPerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		engine:      engine,
		importer:    importer,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting RoutineOn v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("RoutineOn %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial seed import runs before the engine so seeded alarms schedule
	// from the first tick.
	if a.importer != nil {
		if err := a.importer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start seed importer: %w", err)
		}
		a.logger.Info("seed importer started")
	}

	if err := a.engine.Start(ctx); err != nil {
		return fmt.Errorf("failed to start notification engine: %w", err)
	}
	a.logger.Info("notification engine started",
		logger.Duration("poll_interval", a.cfg.PollInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.engine.Stop()
	if a.importer != nil {
		a.importer.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ RoutineOn stopped cleanly")
	return nil
}

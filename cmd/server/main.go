package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	httpapi "userhub/internal/adapters/http"
	"userhub/internal/adapters/http/request"
	"userhub/internal/adapters/http/response"
	"userhub/internal/adapters/http/validator"
	"userhub/internal/adapters/memory"
	"userhub/internal/adapters/postgres"
	"userhub/internal/adapters/redis"
	"userhub/internal/audit"
	"userhub/internal/config"
	"userhub/internal/core/auth"
	"userhub/internal/core/token"
	"userhub/internal/core/user"
	"userhub/internal/domain"
	"userhub/internal/event"
	"userhub/internal/logger"
	"userhub/internal/workers"
)

const auditStreamMaxLen = 10000

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	var userRepo domain.UserRepository
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("storage: using in-memory user store, data is lost on restart")
		userRepo = memory.NewUserRepository()
	default:
		if cfg.MigrateOnStart {
			if err := postgres.MigrateUp(cfg.DatabaseURL, log); err != nil {
				return err
			}
		}

		dbPool, err := postgres.InitDB(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return err
		}
		defer dbPool.Close()

		userRepo = postgres.NewUserRepository(dbPool)
	}

	bus := event.New(log)

	var (
		redisClient *goredis.Client
		recorder    audit.Recorder
	)
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return err
		}
		defer client.Close()

		redisClient = client
		recorder = redis.NewAuditStream(client, auditStreamMaxLen)
	}
	audit.Register(bus, log, recorder)

	codec, err := token.NewCodec([]byte(cfg.JWTSecret), cfg.JWTExpiry)
	if err != nil {
		return err
	}
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	authOpts := []auth.Option{auth.WithBus(bus)}
	if redisClient != nil {
		authOpts = append(authOpts, auth.WithLimiter(redis.NewLoginLimiter(redisClient, cfg.LoginMaxAttempts, cfg.LoginLockout)))
	} else {
		log.Warn("auth: REDIS_URL not set, login throttling disabled")
	}

	authService, err := auth.NewService(userRepo, codec, hasher, log, authOpts...)
	if err != nil {
		return err
	}
	userService := user.NewService(userRepo, hasher, bus, log)

	decoder := request.NewJSONDecoder()
	writer := response.NewJSONWriter(log)
	v := validator.New()

	router := httpapi.NewRouter(cfg, &httpapi.RouterDeps{
		Auth: httpapi.NewAuthHandler(authService, log, decoder, writer, v),
		User: httpapi.NewUserHandler(userService, log, decoder, writer, v),

		Tokens: codec,
		Users:  userRepo,
		Writer: writer,
		Log:    log,
	})

	srv := httpapi.NewServer(router, cfg.Address)

	manager := workers.NewManager(log, workers.ManagerConfig{
		PurgeInterval: cfg.UserPurgeInterval,
		PurgeAfter:    cfg.UserPurgeAfter,
	}, workers.NewScheduler(log), userRepo, bus)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http: starting server", "address", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http: server shutdown error", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		return manager.Run(gctx)
	})

	return g.Wait()
}

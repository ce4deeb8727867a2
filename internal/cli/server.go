package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"millionaire-quiz-service/internal/app"
	"millionaire-quiz-service/internal/config"
	filestore "millionaire-quiz-service/internal/infra/file"
	"millionaire-quiz-service/internal/infra/memory"
	pgstore "millionaire-quiz-service/internal/infra/postgres"
	redisinfra "millionaire-quiz-service/internal/infra/redis"
	"millionaire-quiz-service/internal/session"
	transport "millionaire-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz builder server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	zerolog.TimeFieldFormat = time.RFC3339
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	store, cleanup, err := buildStore(ctx, cfg, redisClient, log)
	if err != nil {
		return err
	}
	defer cleanup()

	shareTTL := config.TTLDuration(cfg.Share.TTL, 24*time.Hour)
	var codes app.ShareCodeStore
	if redisClient != nil {
		codes = redisinfra.NewShareStore(redisClient, shareTTL)
	} else {
		codes = memory.NewShareStore(shareTTL)
	}

	sessionCfg := session.Config{
		AdvanceDelay:       config.TTLDuration(cfg.Session.AdvanceDelay, 0),
		PhoneFriendSeconds: cfg.Session.PhoneFriendSeconds,
	}

	service := app.NewContestantService(store, codes, sessionCfg, log)

	router := mux.NewRouter()
	transport.NewHandler(service, log).Register(router)
	router.HandleFunc("/ws/play", transport.NewPlayHandler(service, log).ServePlay)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("backend", storageBackend(cfg)).Msg("starting quiz builder service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	case <-ctx.Done():
		log.Info().Msg("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildStore selects the contestant backend per config. The Postgres store
// gets migrations applied on start and, when Redis is configured, a
// read-through cache in front of it.
func buildStore(ctx context.Context, cfg config.Config, redisClient *redis.Client, log zerolog.Logger) (app.ContestantStore, func(), error) {
	noop := func() {}
	switch storageBackend(cfg) {
	case "memory":
		return memory.NewContestantStore(), noop, nil
	case "file":
		path := cfg.Storage.File.Path
		if path == "" {
			path = "data/contestants.json"
		}
		return filestore.NewContestantStore(path), noop, nil
	case "postgres":
		if cfg.Postgres.URL == "" {
			return nil, noop, fmt.Errorf("storage backend postgres requires a postgres url")
		}
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, noop, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, noop, err
		}
		var store app.ContestantStore = pgstore.NewContestantStore(pool)
		if redisClient != nil {
			cacheTTL := config.TTLDuration(cfg.Cache.TTL, 10*time.Minute)
			store = redisinfra.NewContestantCache(redisClient, store, cacheTTL)
		}
		log.Info().Msg("connected to postgres")
		return store, pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func storageBackend(cfg config.Config) string {
	if cfg.Storage.Backend == "" {
		return "memory"
	}
	return cfg.Storage.Backend
}

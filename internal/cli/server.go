package cli

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flagforge/internal/app"
	"flagforge/internal/config"
	"flagforge/internal/infra/memory"
	pgstore "flagforge/internal/infra/postgres"
	redisinfra "flagforge/internal/infra/redis"
	"flagforge/internal/token"
	transport "flagforge/internal/transport/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the flagforge server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := cfg.Server.Port
	if portFlag != "" {
		finalPort = portFlag
	}

	secret := cfg.Session.Secret
	if secret == "" {
		secret = "dev-insecure-session-secret"
		log.Println("warning: session secret not configured, using an insecure development default")
	}
	tokens := token.NewManager(secret, config.TTLDuration(cfg.Session.TTL, 7*24*time.Hour))

	var (
		users      app.UserStore
		challenges app.ChallengeStore
		attempts   app.AttemptStore
		reader     app.StatsReader
	)

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}

		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
		db := bun.NewDB(sqldb, pgdialect.New())
		defer db.Close()

		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()

		users = pgstore.NewUserStore(db)
		challenges = pgstore.NewChallengeStore(db)
		attempts = pgstore.NewAttemptStore(db)
		reader = pgstore.NewStatsReader(pool)
	} else {
		log.Println("warning: postgres not configured, using volatile in-memory stores")
		memUsers := memory.NewUserStore()
		memChallenges := memory.NewChallengeStore()
		memAttempts := memory.NewAttemptStore()
		users = memUsers
		challenges = memChallenges
		attempts = memAttempts
		reader = memory.NewStatsReader(memUsers, memChallenges, memAttempts)
	}

	feed := app.NewSolveFeed()
	listeners := []app.SolveListener{feed}

	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache := redisinfra.NewLeaderboardCache(redisClient, reader, config.TTLDuration(cfg.Redis.TTL, time.Minute))
		reader = cache
		listeners = append(listeners, cache)
	}

	accounts := app.NewAccountService(users, nil)
	catalog := app.NewCatalogService(challenges, reader)
	submissions := app.NewSubmissionService(challenges, attempts, listeners...)
	stats := app.NewStatsService(reader, users, challenges, attempts)

	srv := transport.NewServer(accounts, catalog, submissions, stats, feed, tokens, cfg.Session.CookieName)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting flagforge on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

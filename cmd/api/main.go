package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"imagestudio/internal/adapter/repo"
	"imagestudio/internal/domain"
	"imagestudio/internal/editor"
	"imagestudio/internal/gallery"
	"imagestudio/internal/generation"
	"imagestudio/internal/http/handlers"
	httpapi "imagestudio/internal/http/httpapi"
	"imagestudio/internal/infra"
	"imagestudio/internal/storage"
)

func main() {
	_ = godotenv.Load(".env", ".env.local")

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storagePath := cfg.StoragePath
	if !filepath.IsAbs(storagePath) {
		if abs, err := filepath.Abs(storagePath); err == nil {
			storagePath = abs
		}
	}
	files, err := storage.NewFileStore(storagePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure storage")
	}
	if n, err := gallery.EnsureSeedAssets(ctx, files, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed gallery assets")
	} else if n > 0 {
		logger.Info().Int("count", n).Msg("seeded gallery placeholders")
	}

	var jobs domain.JobRepository = repo.NewMemoryJobRepository()
	if cfg.UsesDatabase() {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		pgJobs := repo.NewJobRepository(infra.NewSQLRunner(pool, logger))
		if err := pgJobs.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare jobs table")
		}
		jobs = pgJobs
		logger.Info().Msg("jobs stored in postgres")
	}

	simulator := generation.NewSimulator(jobs, cfg.GenerationDelay, logger)
	defer simulator.Close()

	sessions := editor.NewStore()
	go sweepSessions(ctx, sessions, cfg.SessionIdleTTL, logger)

	app := handlers.NewApp(
		cfg,
		logger,
		sessions,
		gallery.New(gallery.SeedItems(time.Now().UTC())),
		jobs,
		simulator,
		files,
	)
	server := infra.NewHTTPServer(cfg, httpapi.NewRouter(app))

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// sweepSessions drops editor sessions whose dialog was abandoned without
// closing.
func sweepSessions(ctx context.Context, sessions *editor.Store, ttl time.Duration, logger infra.Logger) {
	ticker := time.NewTicker(max(ttl/4, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(ttl); n > 0 {
				logger.Info().Int("count", n).Msg("swept idle editor sessions")
			}
		}
	}
}

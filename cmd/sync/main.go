package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gorm.io/gorm"

	"github.com/danny/worldly/internal/archive"
	"github.com/danny/worldly/internal/config"
	"github.com/danny/worldly/internal/logger"
	"github.com/danny/worldly/internal/repository"
	"github.com/danny/worldly/internal/service"
	"github.com/danny/worldly/internal/source/lastfm"
	"github.com/danny/worldly/internal/source/strava"
	"github.com/danny/worldly/internal/source/tmdb"
	"github.com/danny/worldly/internal/source/trakt"
)

func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "worldly-sync",
	})
	logger.SetDefaultLogger(appLogger)

	// Parse command line flags
	sourceFlag := flag.String("source", "", "Comma-separated sources to sync (default: all configured)")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize raw-payload archive when configured
	var arc archive.Store
	if cfg.Archive.Enabled {
		s3Store, err := archive.NewS3Store(&archive.S3Config{
			Endpoint:  cfg.Archive.Endpoint,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			UseSSL:    cfg.Archive.UseSSL,
			Bucket:    cfg.Archive.Bucket,
			Region:    cfg.Archive.Region,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize archive storage")
		}
		arc = s3Store
	}

	syncers, missing := buildSyncers(cfg, db, arc)

	requested := splitSources(*sourceFlag)
	if len(requested) > 0 {
		// An explicitly requested source must be fully configured.
		for _, name := range requested {
			if reason, ok := missing[name]; ok {
				appLogger.WithField("source", name).Fatalf("Source not configured: %s", reason)
			}
		}
	} else {
		for name, reason := range missing {
			appLogger.WithField("source", name).Warnf("Skipping unconfigured source: %s", reason)
		}
	}

	runner := service.NewRunner(repository.NewSyncRunRepository(db), syncers...)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	if err := runner.Run(ctx, requested); err != nil {
		appLogger.WithError(err).Fatal("Sync failed")
	}
	// Unconfigured sources are skipped, not silently forgiven: the run
	// still exits non-zero so a cron alert fires.
	if len(requested) == 0 && len(missing) > 0 {
		appLogger.Fatalf("%d source(s) skipped for missing configuration", len(missing))
	}
	appLogger.Info("All syncs completed")
}

// buildSyncers constructs a syncer per configured source. Sources with
// missing credentials are reported in the second return value instead of
// being registered.
func buildSyncers(cfg *config.Config, db *gorm.DB, arc archive.Store) ([]service.Syncer, map[string]string) {
	timeout := cfg.Sync.HTTPTimeout
	var syncers []service.Syncer
	missing := make(map[string]string)

	if cfg.Lastfm.APIKey == "" || cfg.Lastfm.Username == "" {
		missing["lastfm"] = "LASTFM_API_KEY and LASTFM_USERNAME are required"
	} else {
		syncers = append(syncers, service.NewLastfmSyncer(
			lastfm.NewClient(cfg.Lastfm.APIKey, cfg.Lastfm.Username, timeout),
			repository.NewScrobbleRepository(db),
			arc,
			cfg.Lastfm.PageSize,
			cfg.Lastfm.Delay,
			cfg.Sync.BatchSize,
		))
	}

	if cfg.Strava.ClientID == "" || cfg.Strava.ClientSecret == "" || cfg.Strava.RefreshToken == "" {
		missing["strava"] = "STRAVA_CLIENT_ID, STRAVA_CLIENT_SECRET and STRAVA_REFRESH_TOKEN are required"
	} else {
		syncers = append(syncers, service.NewStravaSyncer(
			strava.NewClient(cfg.Strava.ClientID, cfg.Strava.ClientSecret, cfg.Strava.RefreshToken, timeout),
			repository.NewActivityRepository(db),
			arc,
			cfg.Strava.PerPage,
			cfg.Strava.Delay,
		))
	}

	// Export-file loaders have directory defaults and fail at run time
	// when the export is absent.
	syncers = append(syncers, service.NewBookLoader(
		repository.NewBookRepository(db),
		cfg.Goodreads.ExportDir,
	))
	syncers = append(syncers, service.NewFilmLoader(
		repository.NewFilmRepository(db),
		cfg.Letterboxd.ExportDir,
	))

	if cfg.TMDB.APIKey == "" {
		missing["tmdb"] = "TMDB_API_KEY is required"
	} else {
		syncers = append(syncers, service.NewFilmEnricher(
			tmdb.NewClient(cfg.TMDB.APIKey, timeout),
			repository.NewFilmRepository(db),
			repository.NewEnrichmentRepository(db),
			cfg.TMDB.Delay,
		))
	}

	if cfg.Trakt.ClientID == "" || cfg.Trakt.AccessToken == "" {
		missing["trakt"] = "TRAKT_CLIENT_ID and TRAKT_ACCESS_TOKEN are required"
	} else {
		syncers = append(syncers, service.NewTraktSyncer(
			trakt.NewClient(cfg.Trakt.ClientID, cfg.Trakt.AccessToken, cfg.Trakt.Username, timeout),
			repository.NewWatchRepository(db),
			arc,
			cfg.Trakt.PageSize,
			cfg.Trakt.Delay,
		))
	}

	return syncers, missing
}

// splitSources parses the -source flag value.
func splitSources(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	sources := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sources = append(sources, strings.ToLower(s))
		}
	}
	return sources
}

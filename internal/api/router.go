package api

import (
	"github.com/gin-gonic/gin"

	"github.com/danny/worldly/internal/api/handler"
	"github.com/danny/worldly/internal/api/middleware"
	"github.com/danny/worldly/internal/logger"
	"github.com/danny/worldly/internal/repository"
)

// Repositories bundles the read-side stores the API serves from.
type Repositories struct {
	Scrobbles  *repository.ScrobbleRepository
	Activities *repository.ActivityRepository
	Books      *repository.BookRepository
	Films      *repository.FilmRepository
	Enrichment *repository.EnrichmentRepository
	History    *repository.WatchRepository
	Syncs      *repository.SyncRunRepository
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	repos Repositories,
	log *logger.Logger,
	mode string,
	cors middleware.CORSConfig,
) *gin.Engine {
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cors))

	healthHandler := handler.NewHealthHandler()
	scrobbleHandler := handler.NewScrobbleHandler(repos.Scrobbles)
	activityHandler := handler.NewActivityHandler(repos.Activities)
	bookHandler := handler.NewBookHandler(repos.Books)
	filmHandler := handler.NewFilmHandler(repos.Films, repos.Enrichment)
	watchHandler := handler.NewWatchHandler(repos.History)
	syncHandler := handler.NewSyncHandler(repos.Syncs)
	statsHandler := handler.NewStatsHandler(
		repos.Scrobbles, repos.Activities, repos.Books,
		repos.Films, repos.Enrichment, repos.History,
	)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/scrobbles", scrobbleHandler.ListScrobbles)
		v1.GET("/activities", activityHandler.ListActivities)
		v1.GET("/books", bookHandler.ListBooks)
		v1.GET("/films", filmHandler.ListFilms)
		v1.GET("/enrichment", filmHandler.ListEnrichment)
		v1.GET("/enrichment/lookup", filmHandler.GetEnrichment)
		v1.GET("/history", watchHandler.ListHistory)
		v1.GET("/syncs", syncHandler.ListSyncs)
		v1.GET("/stats", statsHandler.GetStats)
	}

	return r
}

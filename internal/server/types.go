package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/placepix/placepix/internal/imager"
	"github.com/placepix/placepix/internal/stats"
)

// imagerInterface defines the methods needed by the server from an image
// renderer.
type imagerInterface interface {
	Render(ctx context.Context, w io.Writer, spec imager.Spec) error
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	imager       imagerInterface
	store        *stats.Store
	pipeline     *stats.Pipeline
	rateLimiter  *RateLimiter
	corsOrigin   string
	maxDimension int
	topCount     int
	liveInterval time.Duration
}

// Config holds server configuration.
type Config struct {
	Host           string
	Port           int
	CORSOrigin     string
	TimeoutSec     int
	MaxDimension   int
	RecentCapacity int
	TopCount       int
	LiveInterval   time.Duration
	Image          imager.Config
	RateLimit      RateLimitConfig
}

// RateLimitConfig holds per-client rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	RequestsPerHour   int
	MaxImagesPerDay   int64
	MaxPixelsPerDay   int64
}

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// NewServer creates a new placepix server instance.
func NewServer(config Config) (*Server, error) {
	renderer, err := imager.NewRenderer(config.Image)
	if err != nil {
		return nil, err
	}

	store := stats.NewStore(config.RecentCapacity)

	s := &Server{
		imager:       renderer,
		store:        store,
		pipeline:     stats.NewPipeline(store),
		corsOrigin:   config.CORSOrigin,
		maxDimension: config.MaxDimension,
		topCount:     config.TopCount,
		liveInterval: config.LiveInterval,
	}
	if s.maxDimension <= 0 {
		s.maxDimension = 2000
	}
	if s.topCount <= 0 {
		s.topCount = stats.DefaultTopCount
	}
	if s.liveInterval <= 0 {
		s.liveInterval = 2 * time.Second
	}

	if config.RateLimit.Enabled {
		s.rateLimiter = NewRateLimiter(
			config.RateLimit.RequestsPerMinute,
			config.RateLimit.RequestsPerHour,
			config.RateLimit.MaxImagesPerDay,
			config.RateLimit.MaxPixelsPerDay,
		)
	}

	return s, nil
}

// Store exposes the stats store, mainly for tests and the CLI.
func (s *Server) Store() *stats.Store {
	return s.store
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/img/{width}/{height}", s.corsMiddleware(s.imageHandler))
	mux.HandleFunc("/stats", s.corsMiddleware(s.resetStatsHandler))
	mux.HandleFunc("/stats/paths/recent", s.corsMiddleware(s.recentPathsHandler))
	mux.HandleFunc("/stats/sizes/recent", s.corsMiddleware(s.recentSizesHandler))
	mux.HandleFunc("/stats/texts/recent", s.corsMiddleware(s.recentTextsHandler))
	mux.HandleFunc("/stats/sizes/top", s.corsMiddleware(s.topSizesHandler))
	mux.HandleFunc("/stats/referrers/top", s.corsMiddleware(s.topReferrersHandler))
	mux.HandleFunc("/stats/live", s.statsLiveHandler)
	mux.Handle("/metrics", promhttp.Handler())
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/placepix/placepix/internal/imager"
	"github.com/placepix/placepix/internal/server"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the placeholder image HTTP server",
	Long: `Start an HTTP server that generates placeholder images and tracks
request statistics.

The server provides the following endpoints:
  GET    /img/{width}/{height}  - Generate a placeholder PNG
  GET    /stats/paths/recent    - Recently requested URLs
  GET    /stats/sizes/recent    - Recently requested sizes
  GET    /stats/texts/recent    - Recently requested texts
  GET    /stats/sizes/top       - Most requested sizes
  GET    /stats/referrers/top   - Most frequent referrers
  DELETE /stats                 - Clear all statistics
  GET    /stats/live            - Live statistics over WebSocket
  GET    /health                - Health check endpoint
  GET    /metrics               - Prometheus metrics

Examples:
  placepix serve
  placepix serve --port 8080
  placepix serve --host 0.0.0.0 --max-dimension 4000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host, _ = cmd.Flags().GetString("host")
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		corsOrigin := cfg.Server.CORSOrigin
		if cmd.Flags().Changed("cors-origin") {
			corsOrigin, _ = cmd.Flags().GetString("cors-origin")
		}

		timeout := cfg.Server.TimeoutSec
		if cmd.Flags().Changed("timeout") {
			timeout, _ = cmd.Flags().GetInt("timeout")
		}

		shutdownTimeout := cfg.Server.ShutdownTimeout
		if cmd.Flags().Changed("shutdown-timeout") {
			shutdownTimeout, _ = cmd.Flags().GetInt("shutdown-timeout")
		}

		maxDimension := cfg.Image.MaxDimension
		if cmd.Flags().Changed("max-dimension") {
			maxDimension, _ = cmd.Flags().GetInt("max-dimension")
		}

		background := cfg.Image.Background
		if cmd.Flags().Changed("background") {
			background, _ = cmd.Flags().GetString("background")
		}

		foreground := cfg.Image.Foreground
		if cmd.Flags().Changed("foreground") {
			foreground, _ = cmd.Flags().GetString("foreground")
		}

		rateLimitEnabled := cfg.Server.RateLimit.Enabled
		if cmd.Flags().Changed("rate-limit-enabled") {
			rateLimitEnabled, _ = cmd.Flags().GetBool("rate-limit-enabled")
		}

		requestsPerMinute := cfg.Server.RateLimit.RequestsPerMinute
		if cmd.Flags().Changed("requests-per-minute") {
			requestsPerMinute, _ = cmd.Flags().GetInt("requests-per-minute")
		}

		requestsPerHour := cfg.Server.RateLimit.RequestsPerHour
		if cmd.Flags().Changed("requests-per-hour") {
			requestsPerHour, _ = cmd.Flags().GetInt("requests-per-hour")
		}

		maxImagesPerDay := cfg.Server.RateLimit.MaxImagesPerDay
		if cmd.Flags().Changed("max-images-per-day") {
			maxImagesPerDay, _ = cmd.Flags().GetInt64("max-images-per-day")
		}

		maxPixelsPerDay := cfg.Server.RateLimit.MaxPixelsPerDay
		if cmd.Flags().Changed("max-pixels-per-day") {
			maxPixelsPerDay, _ = cmd.Flags().GetInt64("max-pixels-per-day")
		}

		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", port)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		serverConfig := server.Config{
			Host:           host,
			Port:           port,
			CORSOrigin:     corsOrigin,
			TimeoutSec:     timeout,
			MaxDimension:   maxDimension,
			RecentCapacity: cfg.Stats.RecentCapacity,
			TopCount:       cfg.Stats.TopCount,
			LiveInterval:   time.Duration(cfg.Stats.LiveIntervalSec) * time.Second,
			Image: imager.Config{
				Background: background,
				Foreground: foreground,
			},
			RateLimit: server.RateLimitConfig{
				Enabled:           rateLimitEnabled,
				RequestsPerMinute: requestsPerMinute,
				RequestsPerHour:   requestsPerHour,
				MaxImagesPerDay:   maxImagesPerDay,
				MaxPixelsPerDay:   maxPixelsPerDay,
			},
		}

		srv, err := server.NewServer(serverConfig)
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}

		mux := http.NewServeMux()
		srv.SetupRoutes(mux)

		httpServer := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       time.Duration(timeout) * time.Second,
			WriteTimeout:      time.Duration(timeout) * time.Second,
		}

		go func() {
			slog.Info("Starting placepix server", "host", host, "port", port)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("Server error", "error", err)
				cancel()
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal", "signal", sig.String())
		case <-ctx.Done():
			slog.Info("Context cancelled, initiating shutdown")
		}

		slog.Info("Starting graceful shutdown", "timeout", fmt.Sprintf("%ds", shutdownTimeout))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
			time.Duration(shutdownTimeout)*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		} else {
			slog.Info("HTTP server shutdown completed")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("host", "H", "localhost", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")
	serveCmd.Flags().String("cors-origin", "*", "CORS allowed origins")
	serveCmd.Flags().Int("timeout", 30, "request timeout in seconds")
	serveCmd.Flags().Int("shutdown-timeout", 10, "shutdown timeout in seconds")
	// Image customization flags
	serveCmd.Flags().Int("max-dimension", 2000, "maximum width, height or square size in pixels")
	serveCmd.Flags().String("background", "#EEEEEE", "image background color (hex)")
	serveCmd.Flags().String("foreground", "#AAAAAA", "frame and text color (hex)")
	// Rate limiting flags
	serveCmd.Flags().Bool("rate-limit-enabled", false, "enable rate limiting")
	serveCmd.Flags().Int("requests-per-minute", 120, "maximum requests per minute per client")
	serveCmd.Flags().Int("requests-per-hour", 2000, "maximum requests per hour per client")
	serveCmd.Flags().Int64("max-images-per-day", 10000, "maximum images rendered per day per client")
	serveCmd.Flags().Int64("max-pixels-per-day", 4_000_000_000, "maximum pixels rendered per day per client")
}

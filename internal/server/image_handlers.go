package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/placepix/placepix/internal/imager"
	"github.com/placepix/placepix/internal/mempool"
	"github.com/placepix/placepix/internal/stats"
)

// imageHandler serves generated placeholder images. Order matters:
// validation first (no stats on rejected requests), then rate limiting, then
// stats, then rendering. Stats are applied before the render so downstream
// failure or cancellation never leaves the store partially updated.
func (s *Server) imageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := ValidateImageRequest(
		r.PathValue("width"),
		r.PathValue("height"),
		r.URL.Query(),
		s.maxDimension,
	)
	if err != nil {
		imagesRenderedTotal.WithLabelValues("rejected").Inc()
		s.writeStatus(w, r, validationStatus(err), err)
		return
	}

	if s.rateLimiter != nil {
		pixels := int64(req.Width) * int64(req.Height)
		if req.Square >= 1 {
			pixels = int64(req.Square) * int64(req.Square)
		}
		if err := s.rateLimiter.Allow(getClientIP(r), pixels); err != nil {
			imagesRenderedTotal.WithLabelValues("throttled").Inc()
			s.handleRateLimitError(w, r, err)
			return
		}
	}

	s.pipeline.Record(stats.Hit{
		Path:      r.URL.Path,
		Size:      stats.Size{W: req.Width, H: req.Height},
		Square:    req.Square,
		HasSquare: req.HasSquare,
		Text:      req.Text,
		HasText:   req.HasText,
		Referrer:  r.Referer(),
	})

	spec := imager.Spec{
		Width:     req.Width,
		Height:    req.Height,
		Square:    req.Square,
		HasSquare: req.HasSquare,
		Text:      req.Text,
	}

	// Render into a buffer so a failed render can still produce a clean 500.
	start := time.Now()
	buf := mempool.GetBuffer()
	defer mempool.PutBuffer(buf)
	if err := s.imager.Render(r.Context(), buf, spec); err != nil {
		imagesRenderedTotal.WithLabelValues("error").Inc()
		s.writeStatus(w, r, http.StatusInternalServerError, err)
		return
	}

	imagesRenderedTotal.WithLabelValues("success").Inc()
	renderDuration.Observe(time.Since(start).Seconds())
	imageSizeBytes.Observe(float64(buf.Len()))

	w.Header().Set("Content-Type", "image/png")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write image response", "path", r.URL.Path, "error", err)
	}
}

// writeStatus responds with a bare status code. Details are logged
// server-side only; clients never see error bodies on image or stats
// endpoints.
func (s *Server) writeStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	if err != nil {
		slog.Error("Request failed", "path", r.URL.Path, "status", status, "error", err)
	}
	w.WriteHeader(status)
}

// handleRateLimitError responds 429 with informative headers and no body.
func (s *Server) handleRateLimitError(w http.ResponseWriter, r *http.Request, err error) {
	var rateErr *RateLimitError
	var quotaErr *QuotaExceededError
	switch {
	case errors.As(err, &rateErr):
		rateLimitHits.WithLabelValues(rateErr.Type).Inc()
		w.Header().Set("X-RateLimit-Type", rateErr.Type)
		w.Header().Set("Retry-After", formatSeconds(rateErr.RetryAfter))
		s.writeStatus(w, r, http.StatusTooManyRequests, err)
	case errors.As(err, &quotaErr):
		rateLimitHits.WithLabelValues(quotaErr.Type).Inc()
		w.Header().Set("X-Quota-Type", quotaErr.Type)
		w.Header().Set("X-Quota-Resets", quotaErr.Resets.Format(http.TimeFormat))
		s.writeStatus(w, r, http.StatusTooManyRequests, err)
	default:
		s.writeStatus(w, r, http.StatusInternalServerError, err)
	}
}

func formatSeconds(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

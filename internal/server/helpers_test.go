package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/placepix/placepix/internal/imager"
)

// failingImager is an imagerInterface that always fails, for exercising the
// render error path.
type failingImager struct{}

func (f *failingImager) Render(ctx context.Context, w io.Writer, spec imager.Spec) error {
	return errors.New("render failed")
}

// newTestServer creates a server with test defaults and its routed mux.
func newTestServer(t *testing.T) (*Server, *http.ServeMux) {
	t.Helper()

	srv, err := NewServer(Config{
		CORSOrigin:   "*",
		MaxDimension: 2000,
		TopCount:     10,
		LiveInterval: 50 * time.Millisecond,
		Image:        imager.DefaultConfig(),
	})
	require.NoError(t, err)

	mux := http.NewServeMux()
	srv.SetupRoutes(mux)
	return srv, mux
}

// doRequest runs one request through the mux and returns the recorder.
func doRequest(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

package support

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/placepix/placepix/internal/imager"
	"github.com/placepix/placepix/internal/server"
)

// TestContext holds per-scenario state: one in-process server and the last
// HTTP exchange.
type TestContext struct {
	srv        *server.Server
	httpServer *httptest.Server

	LastStatusCode int
	LastBody       []byte
	LastHeaders    http.Header
}

// NewTestContext starts a fresh server instance for a scenario.
func NewTestContext() (*TestContext, error) {
	srv, err := server.NewServer(server.Config{
		CORSOrigin:   "*",
		MaxDimension: 2000,
		TopCount:     10,
		LiveInterval: 100 * time.Millisecond,
		Image:        imager.DefaultConfig(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	return &TestContext{
		srv:        srv,
		httpServer: httptest.NewServer(mux),
	}, nil
}

// BaseURL returns the server's base URL.
func (testCtx *TestContext) BaseURL() string {
	return testCtx.httpServer.URL
}

// Cleanup shuts down the scenario's server.
func (testCtx *TestContext) Cleanup() error {
	if testCtx.httpServer != nil {
		testCtx.httpServer.Close()
		testCtx.httpServer = nil
	}
	return nil
}

// do performs one request and captures the response.
func (testCtx *TestContext) do(method, path string, headers map[string]string) error {
	req, err := http.NewRequest(method, testCtx.httpServer.URL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := testCtx.httpServer.Client().Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	testCtx.LastStatusCode = resp.StatusCode
	testCtx.LastBody = body
	testCtx.LastHeaders = resp.Header
	return nil
}

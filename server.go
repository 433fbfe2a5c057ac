package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olgasafonova/wikipedia-mcp-server/metrics"
)

// DefaultMaxBodySize caps MCP request bodies (1 MB)
const DefaultMaxBodySize = 1 << 20

// Known HTTP routes; anything else is reported as "other" in metrics
const (
	mcpPath     = "/mcp"
	metricsPath = "/metrics"
	healthPath  = "/health"
)

// SecurityConfig configures the HTTP middleware
type SecurityConfig struct {
	MaxBodySize int64
}

// SecurityMiddleware limits request bodies and records HTTP metrics
type SecurityMiddleware struct {
	next   http.Handler
	logger *slog.Logger
	config SecurityConfig
}

// NewSecurityMiddleware wraps next
func NewSecurityMiddleware(next http.Handler, logger *slog.Logger, config SecurityConfig) *SecurityMiddleware {
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = DefaultMaxBodySize
	}
	return &SecurityMiddleware{next: next, logger: logger, config: config}
}

func (m *SecurityMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer recoverPanic(m.logger, "http "+r.URL.Path)

	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	if r.Body != nil {
		r.Body = http.MaxBytesReader(rec, r.Body, m.config.MaxBodySize)
	}
	m.next.ServeHTTP(rec, r)

	metrics.RecordHTTPRequest(methodLabel(r.Method), routeLabel(r.URL.Path), strconv.Itoa(rec.status), time.Since(start).Seconds())
	m.logger.Debug("HTTP request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"remote", r.RemoteAddr)
}

// routeLabel bounds the path label cardinality
func routeLabel(path string) string {
	switch path {
	case mcpPath, metricsPath, healthPath:
		return path
	default:
		return metrics.OtherLabel
	}
}

// methodLabel bounds the method label cardinality
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions:
		return method
	default:
		return metrics.OtherLabel
	}
}

// statusRecorder captures the response status. It forwards Flush so
// streamed MCP responses still reach the client incrementally.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// healthHandler reports liveness
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok","service":"` + ServerName + `","version":"` + ServerVersion + `"}`))
}

// newHTTPHandler routes MCP, metrics and health endpoints
func newHTTPHandler(server *mcp.Server, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(mcpPath, mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil))
	mux.Handle(metricsPath, promhttp.Handler())
	mux.HandleFunc(healthPath, healthHandler)

	return NewSecurityMiddleware(mux, logger, SecurityConfig{MaxBodySize: DefaultMaxBodySize})
}

// serveHTTP runs the HTTP server until ctx is canceled
func serveHTTP(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer recoverPanic(logger, "http server")
		logger.Info("HTTP transport listening", "addr", addr, "mcp", mcpPath, "metrics", metricsPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("Shutting down HTTP transport")
		return srv.Shutdown(shutdownCtx)
	}
}

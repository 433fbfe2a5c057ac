// Wikipedia MCP Server - A Model Context Protocol server for Wikipedia
// Provides tools for searching, reading, and sampling Wikipedia articles
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olgasafonova/wikipedia-mcp-server/internal/config"
	"github.com/olgasafonova/wikipedia-mcp-server/internal/wikipedia"
	"github.com/olgasafonova/wikipedia-mcp-server/tools"
	"github.com/olgasafonova/wikipedia-mcp-server/tracing"
)

// recoverPanic logs a panic that escaped a goroutine instead of crashing silently
func recoverPanic(logger *slog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
	}
}

const (
	ServerName    = "wikipedia-mcp-server"
	ServerVersion = "1.0.0"
)

const serverInstructions = `Wikipedia MCP Server provides read-only access to Wikipedia.

Available tools:
- search_wikipedia: Search articles by keyword
- get_wikipedia_article: Get details for one article (categories, links, images, optional content)
- get_random_wikipedia: Get random articles

All tools accept "lang" (default "ja") to select the language edition.

Configure via environment variables:
- WIKIPEDIA_SITE_URL: Site root template (default https://{lang}.wikipedia.org)
- WIKIPEDIA_USER_AGENT: User-Agent sent to Wikipedia
- WIKIPEDIA_TIMEOUT: Per-request timeout (e.g. 15s, default none)`

func main() {
	httpAddr := flag.String("http", "", "Serve the streamable HTTP transport on this address (e.g. :8080) instead of stdio")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", ServerName, ServerVersion)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	level, _ := cfg.Level()
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		logger.Warn("Tracing disabled", "error", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(shutdownCtx); err != nil {
				logger.Warn("Tracing shutdown failed", "error", err)
			}
		}()
	}

	client := wikipedia.NewClient(cfg.SiteURL,
		wikipedia.WithLogger(logger),
		wikipedia.WithUserAgent(cfg.UserAgent),
		wikipedia.WithTimeout(cfg.Timeout),
	)

	server, err := newServer(client, logger)
	if err != nil {
		log.Fatalf("Failed to register tools: %v", err)
	}

	logger.Info("Starting Wikipedia MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"site_url", cfg.SiteURL,
		"transport", transportName(cfg.HTTPAddr),
	)

	if cfg.HTTPAddr != "" {
		err = serveHTTP(ctx, cfg.HTTPAddr, newHTTPHandler(server, logger), logger)
	} else {
		err = server.Run(ctx, &mcp.StdioTransport{})
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Server error: %v", err)
	}
}

// newServer creates the MCP server and registers the tool table
func newServer(client *wikipedia.Client, logger *slog.Logger) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	if err := tools.NewHandlerRegistry(client, logger).RegisterAll(server); err != nil {
		return nil, err
	}
	return server, nil
}

func transportName(httpAddr string) string {
	if httpAddr != "" {
		return "http"
	}
	return "stdio"
}

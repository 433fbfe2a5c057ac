package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"

	apierrors "github.com/olgasafonova/wikipedia-mcp-server/internal/errors"
	"github.com/olgasafonova/wikipedia-mcp-server/internal/wikipedia"
	"github.com/olgasafonova/wikipedia-mcp-server/metrics"
	"github.com/olgasafonova/wikipedia-mcp-server/tracing"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	client *wikipedia.Client
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *wikipedia.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		client: client,
		logger: logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) error {
	for _, spec := range toolTable {
		if err := h.registerByName(server, spec); err != nil {
			return fmt.Errorf("register %s: %w", spec.Name, err)
		}
	}
	h.logger.Info("Registered all tools", "count", len(toolTable))
	return nil
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) error {
	tool := h.buildTool(spec)

	var err error
	switch spec.Method {
	case "Search":
		if tool.InputSchema, err = searchSchema(); err == nil {
			register(h, server, tool, spec, h.client.SearchMCP)
		}
	case "GetArticle":
		if tool.InputSchema, err = articleSchema(); err == nil {
			register(h, server, tool, spec, h.client.GetArticleMCP)
		}
	case "GetRandom":
		if tool.InputSchema, err = randomSchema(); err == nil {
			register(h, server, tool, spec, h.client.GetRandomMCP)
		}
	default:
		err = fmt.Errorf("unknown method %q", spec.Method)
	}
	return err
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Title:       spec.Title,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
// Failures never surface as protocol errors; they become "<phrase>: <message>" text.
func register[Args any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (string, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (result *mcp.CallToolResult, _ any, _ error) {
		defer h.recoverPanic(spec, &result)

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		tracing.AddToolAttributes(span, spec.Name, spec.Category)
		span.SetAttributes(attribute.Bool("mcp.tool.readonly", spec.ReadOnly))

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		text, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		tracing.SetStatus(span, err)
		if err != nil {
			metrics.RecordRequest(spec.Name, duration, false)
			h.logger.Warn("Tool failed",
				"tool", spec.Name,
				"error_code", apierrors.Code(err),
				"error", err)
			return failureResult(spec, err), nil, nil
		}

		metrics.RecordRequest(spec.Name, duration, true)
		metrics.RecordOutput(spec.Name, utf8.RuneCountInString(text))
		h.logExecution(spec, args, text)
		return textResult(text), nil, nil
	})
}

// textResult wraps text in a single-item content envelope
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// failureResult renders an error with the tool's failure phrase
func failureResult(spec ToolSpec, err error) *mcp.CallToolResult {
	return textResult(spec.FailurePhrase + ": " + err.Error())
}

// recoverPanic recovers from panics in tool handlers and replaces the
// result with a failure envelope.
func (h *HandlerRegistry) recoverPanic(spec ToolSpec, result **mcp.CallToolResult) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(spec.Name).Inc()
		h.logger.Error("Panic recovered",
			"tool", spec.Name,
			"panic", rec,
			"stack", string(debug.Stack()))
		*result = failureResult(spec, fmt.Errorf("internal error: %v", rec))
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args any, output string) {
	attrs := []any{"tool", spec.Name, "category", spec.Category}

	switch a := args.(type) {
	case wikipedia.SearchArgs:
		attrs = append(attrs, "lang", a.Lang, "query", a.Query, "limit", a.Limit)
	case wikipedia.GetArticleArgs:
		attrs = append(attrs, "lang", a.Lang, "title", a.Title, "include_content", a.IncludeContent)
	case wikipedia.RandomArgs:
		attrs = append(attrs, "lang", a.Lang, "count", a.Count)
	}

	attrs = append(attrs, "output_chars", utf8.RuneCountInString(output))
	h.logger.Info("Tool executed", attrs...)
}

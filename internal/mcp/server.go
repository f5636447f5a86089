package mcp

import (
	"context"
	"encoding/json"
	"io"
	stdlog "log"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"
	srv "github.com/mark3labs/mcp-go/server"

	"github.com/Laisky/baseline-mcp/internal/baseline"
	"github.com/Laisky/baseline-mcp/internal/mcp/tools"
	"github.com/Laisky/baseline-mcp/internal/metrics"
)

// Server is the stream adapter: an mcp-go server exposing the registered
// tools over a line-delimited JSON-RPC stream.
type Server struct {
	mcpServer *srv.MCPServer
	registry  *tools.Registry
	logger    logSDK.Logger
}

// NewServer registers every tool in registry with their input schemas.
func NewServer(registry *tools.Registry, logger logSDK.Logger) (*Server, error) {
	if registry == nil {
		return nil, errors.New("tool registry is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	mcpServer := srv.NewMCPServer(
		ServerName,
		ServerVersion,
		srv.WithToolCapabilities(false),
		srv.WithInstructions(serverInstructions),
		srv.WithRecovery(),
		srv.WithHooks(newMCPHooks(logger.Named("mcp_hooks"))),
	)

	s := &Server{
		mcpServer: mcpServer,
		registry:  registry,
		logger:    logger.Named("mcp"),
	}

	for _, tool := range registry.List() {
		mcpServer.AddTool(tool.Definition(), s.toolHandler(tool))
	}

	return s, nil
}

// AvailableToolNames returns the names of the registered tools in registration order.
func (s *Server) AvailableToolNames() []string {
	if s == nil {
		return nil
	}
	return s.registry.Names()
}

// HandleMessage processes one raw JSON-RPC message and returns the reply,
// or nil for notifications.
func (s *Server) HandleMessage(ctx context.Context, raw json.RawMessage) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, raw)
}

// ServeStdio serves requests read from in and writes replies to out until
// in is exhausted or ctx is cancelled. Requests are processed one at a time.
// Cancellation is not an error.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer, errLog io.Writer) error {
	stdio := srv.NewStdioServer(s.mcpServer)
	srv.WithWorkerPoolSize(1)(stdio)
	if errLog != nil {
		stdio.SetErrorLogger(stdlog.New(errLog, "", stdlog.LstdFlags))
	}

	s.logger.Info("serving mcp over stdio", zap.Strings("tools", s.AvailableToolNames()))
	err := stdio.Listen(ctx, in, out)
	switch {
	case err == nil:
		s.logger.Info("stdio input closed")
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.logger.Info("stdio server stopped", zap.Error(err))
		return nil
	default:
		return errors.Wrap(err, "listen stdio")
	}
}

// toolHandler wraps tool with schema validation and the tool-response envelope.
// Failures are reported as tool results flagged with isError.
func (s *Server) toolHandler(tool tools.Tool) srv.ToolHandlerFunc {
	def := tool.Definition()
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startAt := time.Now()
		args := argumentsMap(req.Params.Arguments)
		logger := s.logger.With(zap.String("tool", def.Name))

		if err := validateArguments(def.InputSchema, args); err != nil {
			logger.Debug("reject tool arguments", zap.Error(err))
			metrics.ToolCalls.WithLabelValues(def.Name, TransportStdio, metrics.StatusInvalid).Inc()
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, err := tool.Call(ctx, args)
		if err != nil {
			status := metrics.StatusError
			if baseline.IsValidation(err) {
				status = metrics.StatusInvalid
			}
			metrics.ToolCalls.WithLabelValues(def.Name, TransportStdio, status).Inc()
			logger.Warn("tool call failed", zap.Error(err), zap.Duration("cost", time.Since(startAt)))
			return mcp.NewToolResultError(toolErrorText(err)), nil
		}

		metrics.ToolCalls.WithLabelValues(def.Name, TransportStdio, metrics.StatusSuccess).Inc()
		logger.Debug("tool call succeeded", zap.Duration("cost", time.Since(startAt)))
		return mcp.NewToolResultText(text), nil
	}
}

// toolErrorText renders err for a tool error result.
func toolErrorText(err error) string {
	switch {
	case baseline.IsValidation(err):
		return err.Error()
	case baseline.IsUpstream(err):
		return "upstream request failed: " + err.Error()
	default:
		return "internal error: " + err.Error()
	}
}

func argumentsMap(raw any) map[string]any {
	switch value := raw.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return value
	case json.RawMessage:
		args := map[string]any{}
		if err := json.Unmarshal(value, &args); err != nil {
			return map[string]any{}
		}
		return args
	default:
		return map[string]any{}
	}
}

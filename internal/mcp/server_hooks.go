package mcp

import (
	"context"
	"encoding/json"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"
	srv "github.com/mark3labs/mcp-go/server"

	"github.com/Laisky/baseline-mcp/library"
)

// hookLogBodyLimit bounds the request/response payload attached to hook logs.
const hookLogBodyLimit = 2048

// hookLogger logs the lifecycle of requests handled by the mcp-go server.
type hookLogger struct {
	logger logSDK.Logger
}

func newMCPHooks(logger logSDK.Logger) *srv.Hooks {
	if logger == nil {
		return nil
	}

	h := &hookLogger{logger: logger}
	hooks := &srv.Hooks{}
	hooks.AddBeforeAny(h.received)
	hooks.AddOnSuccess(h.succeeded)
	hooks.AddOnError(h.failed)
	hooks.AddAfterCallTool(h.toolCalled)

	return hooks
}

func (h *hookLogger) received(ctx context.Context, id any, method mcp.MCPMethod, message any) {
	fields := hookLogFields(ctx, id, method)
	if message != nil {
		fields = append(fields, zap.String("request", hookPayload(message)))
	}
	h.logger.Debug("mcp request received", fields...)
}

// succeeded logs protocol-level successes. Tool calls are reported by toolCalled.
func (h *hookLogger) succeeded(ctx context.Context, id any, method mcp.MCPMethod, message any, result any) {
	if method == mcp.MethodToolsCall {
		return
	}

	fields := hookLogFields(ctx, id, method)
	if result != nil {
		fields = append(fields, zap.String("response", hookPayload(result)))
	}
	h.logger.Info("mcp request succeeded", fields...)
}

func (h *hookLogger) failed(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
	fields := append(hookLogFields(ctx, id, method), zap.Error(err))
	if shouldDowngradeMCPErrorLog(method, err) {
		h.logger.Debug("mcp capability not offered", fields...)
		return
	}
	h.logger.Error("mcp request failed", fields...)
}

// toolCalled logs a finished tool call, at warn level when the result is flagged isError.
func (h *hookLogger) toolCalled(ctx context.Context, id any, req *mcp.CallToolRequest, result any) {
	fields := hookLogFields(ctx, id, mcp.MethodToolsCall)
	if req != nil {
		fields = append(fields, zap.String("tool", req.Params.Name))
	}
	fields = append(fields, zap.String("response", hookPayload(result)))

	if toolResultIsError(result) {
		h.logger.Warn("baseline tool returned an error result", fields...)
		return
	}
	h.logger.Info("baseline tool call succeeded", fields...)
}

func toolResultIsError(result any) bool {
	switch r := result.(type) {
	case *mcp.CallToolResult:
		return r != nil && r.IsError
	case mcp.CallToolResult:
		return r.IsError
	default:
		return false
	}
}

// shouldDowngradeMCPErrorLog reports whether a request failure is a client asking
// for a capability this server does not declare.
func shouldDowngradeMCPErrorLog(method mcp.MCPMethod, err error) bool {
	if err == nil {
		return false
	}

	switch method {
	case mcp.MethodResourcesList, mcp.MethodResourcesTemplatesList, mcp.MethodPromptsList:
		return errors.Is(err, srv.ErrUnsupported)
	default:
		return false
	}
}

func hookLogFields(ctx context.Context, id any, method mcp.MCPMethod) []zap.Field {
	fields := []zap.Field{
		zap.Any("request_id", id),
		zap.String("method", string(method)),
	}

	if session := srv.ClientSessionFromContext(ctx); session != nil {
		fields = append(fields, zap.String("session_id", session.SessionID()))
	}

	return fields
}

// hookPayload renders a hook payload as JSON truncated to hookLogBodyLimit.
func hookPayload(payload any) string {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unencodable payload>"
	}

	out, truncated := library.TruncateForLog(raw, hookLogBodyLimit)
	if truncated {
		return out + "...(truncated)"
	}
	return out
}

package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/baseline-mcp/internal/baseline"
	"github.com/Laisky/baseline-mcp/internal/mcp/tools"
	"github.com/Laisky/baseline-mcp/internal/metrics"
)

// JSONRPCVersion is the only envelope version accepted by the stateless adapter.
const JSONRPCVersion = "2.0"

// Stateless methods.
const (
	methodInitialize  = "initialize"
	methodInitialized = "notifications/initialized"
	methodPing        = "ping"
	methodToolsList   = "tools/list"
	methodToolsCall   = "tools/call"
)

var nullID = json.RawMessage("null")

// Request is a JSON-RPC request envelope.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	ID      json.RawMessage `json:"id,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// CallParams are the params of a tools/call request.
type CallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Response is a JSON-RPC response envelope. Exactly one of Result and Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is the error member of a JSON-RPC response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// ServerInfo describes this server in the initialize result.
type ServerInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// InitializeResult is the result of the initialize handshake.
type InitializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      ServerInfo     `json:"serverInfo"`
}

// PingResult is the result of ping.
type PingResult struct {
	Status string `json:"status"`
	TS     int64  `json:"ts"`
}

// ToolsListResult is the result of tools/list.
type ToolsListResult struct {
	Tools []mcp.Tool `json:"tools"`
}

// HealthDocument is returned for read-only requests to the stateless adapter.
type HealthDocument struct {
	Name           string   `json:"name"`
	Version        string   `json:"version"`
	Status         string   `json:"status"`
	Deployment     string   `json:"deployment"`
	TS             int64    `json:"ts"`
	AvailableTools []string `json:"available_tools"`
	DataSource     string   `json:"data_source"`
}

// Dispatcher is the stateless adapter: every call decodes one JSON-RPC
// envelope, executes it, and returns one response. It keeps no state
// between calls.
type Dispatcher struct {
	registry *tools.Registry
	logger   logSDK.Logger
	now      func() time.Time
}

// DispatcherOption customizes a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDispatcher constructs a Dispatcher serving the tools in registry.
func NewDispatcher(registry *tools.Registry, logger logSDK.Logger, opts ...DispatcherOption) (*Dispatcher, error) {
	if registry == nil {
		return nil, errors.New("tool registry is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	d := &Dispatcher{
		registry: registry,
		logger:   logger.Named("jsonrpc"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Health returns the static status document.
func (d *Dispatcher) Health() HealthDocument {
	return HealthDocument{
		Name:           ServerName,
		Version:        ServerVersion,
		Status:         "ok",
		Deployment:     "standalone",
		TS:             d.now().UnixMilli(),
		AvailableTools: d.registry.Names(),
		DataSource:     DataSource,
	}
}

// Dispatch executes the JSON-RPC envelope in body. It never panics and never
// returns nil: every failure is reported in the response's Error member.
func (d *Dispatcher) Dispatch(ctx context.Context, body []byte) (resp *Response) {
	id := nullID
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic in jsonrpc dispatch", zap.Any("panic", r), zap.Stack("stack"))
			resp = internalErrorResponse(id, fmt.Sprint(r))
		}
	}()

	if !json.Valid(body) {
		d.logger.Warn("invalid json body", zap.Int("size", len(body)))
		return internalErrorResponse(nullID, "request body is not valid JSON")
	}

	req := new(Request)
	if err := json.Unmarshal(body, req); err != nil {
		return errorResponse(nullID, baseline.CodeInvalidRequest, "Invalid Request", nil)
	}
	if len(bytes.TrimSpace(req.ID)) > 0 {
		id = req.ID
	}

	if req.JSONRPC != JSONRPCVersion {
		return errorResponse(id, baseline.CodeInvalidRequest, "Invalid JSON-RPC version", nil)
	}

	logger := d.logger.With(zap.String("method", req.Method), zap.ByteString("request_id", id))
	logger.Debug("jsonrpc request received")

	var (
		result any
		rpcErr *RPCError
	)
	switch req.Method {
	case methodInitialize:
		result = InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    map[string]any{"tools": map[string]any{}},
			ServerInfo: ServerInfo{
				Name:        ServerName,
				Version:     ServerVersion,
				Description: serverDescription,
			},
		}
	case methodInitialized:
		result = map[string]any{}
	case methodPing:
		result = PingResult{Status: "pong", TS: d.now().UnixMilli()}
	case methodToolsList:
		result = ToolsListResult{Tools: d.registry.Definitions()}
	case methodToolsCall:
		result, rpcErr = d.callTool(ctx, logger, req.Params)
	default:
		rpcErr = &RPCError{Code: baseline.CodeMethodNotFound, Message: "Method not found: " + req.Method}
	}

	if rpcErr != nil {
		logger.Debug("jsonrpc request failed", zap.Int("code", rpcErr.Code), zap.String("message", rpcErr.Message))
		return &Response{JSONRPC: JSONRPCVersion, ID: id, Error: rpcErr}
	}

	return &Response{JSONRPC: JSONRPCVersion, ID: id, Result: result}
}

func (d *Dispatcher) callTool(ctx context.Context, logger logSDK.Logger, raw json.RawMessage) (any, *RPCError) {
	params := new(CallParams)
	if len(bytes.TrimSpace(raw)) > 0 && !bytes.Equal(bytes.TrimSpace(raw), nullID) {
		if err := json.Unmarshal(raw, params); err != nil {
			return nil, &RPCError{Code: baseline.CodeInvalidParams, Message: "Invalid params", Data: err.Error()}
		}
	}

	if params.Name == "" {
		return nil, &RPCError{Code: baseline.CodeInvalidParams, Message: "Tool name is required"}
	}

	tool, ok := d.registry.Lookup(params.Name)
	if !ok {
		return nil, &RPCError{Code: baseline.CodeMethodNotFound, Message: "Unknown tool: " + params.Name}
	}

	args := params.Arguments
	if args == nil {
		args = map[string]any{}
	}

	startAt := time.Now()
	text, err := tool.Call(ctx, args)
	if err != nil {
		code := baseline.ErrorCode(err)
		if code == baseline.CodeInvalidParams {
			metrics.ToolCalls.WithLabelValues(params.Name, TransportHTTP, metrics.StatusInvalid).Inc()
			return nil, &RPCError{Code: code, Message: err.Error()}
		}

		metrics.ToolCalls.WithLabelValues(params.Name, TransportHTTP, metrics.StatusError).Inc()
		logger.Warn("tool call failed",
			zap.String("tool", params.Name),
			zap.Error(err),
			zap.Duration("cost", time.Since(startAt)),
		)
		return nil, internalError(err.Error())
	}

	metrics.ToolCalls.WithLabelValues(params.Name, TransportHTTP, metrics.StatusSuccess).Inc()
	logger.Debug("tool call succeeded",
		zap.String("tool", params.Name),
		zap.Duration("cost", time.Since(startAt)),
	)
	return mcp.NewToolResultText(text), nil
}

func internalError(data string) *RPCError {
	return &RPCError{Code: baseline.CodeInternalError, Message: "Internal error", Data: data}
}

func internalErrorResponse(id json.RawMessage, data string) *Response {
	return &Response{JSONRPC: JSONRPCVersion, ID: id, Error: internalError(data)}
}

func errorResponse(id json.RawMessage, code int, message string, data any) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error:   &RPCError{Code: code, Message: message, Data: data},
	}
}

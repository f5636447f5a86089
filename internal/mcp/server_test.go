package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Laisky/errors/v2"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/baseline-mcp/internal/baseline"
	"github.com/Laisky/baseline-mcp/internal/mcp/tools"
	"github.com/Laisky/baseline-mcp/library/log"
)

type fakeSearcher struct {
	features []baseline.Feature
	err      error
	calls    int
	limit    int
}

func (f *fakeSearcher) SearchFeatures(_ context.Context, _ []string, limit int) ([]baseline.Feature, error) {
	f.calls++
	f.limit = limit
	return f.features, f.err
}

func newTestRegistry(t *testing.T, searcher baseline.FeatureSearcher, settings ToolsSettings) *tools.Registry {
	t.Helper()

	svc, err := baseline.NewService(searcher, log.Logger.Named("test_service"))
	require.NoError(t, err)
	registry, err := NewToolRegistry(svc, settings)
	require.NoError(t, err)
	return registry
}

func allTools() ToolsSettings {
	return ToolsSettings{BaselineStatusEnabled: true, BaselineSummaryEnabled: true}
}

func newTestServer(t *testing.T, searcher baseline.FeatureSearcher) *Server {
	t.Helper()

	srv, err := NewServer(newTestRegistry(t, searcher, allTools()), log.Logger.Named("test_mcp"))
	require.NoError(t, err)
	return srv
}

// callTool drives a tools/call request through the mcp-go server.
func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcpgo.CallToolResult {
	t.Helper()

	raw, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params":  map[string]any{"name": name, "arguments": args},
	})
	require.NoError(t, err)

	msg := srv.HandleMessage(context.Background(), raw)
	resp, ok := msg.(mcpgo.JSONRPCResponse)
	require.True(t, ok, "unexpected message %T: %+v", msg, msg)

	switch result := resp.Result.(type) {
	case *mcpgo.CallToolResult:
		return result
	case mcpgo.CallToolResult:
		return &result
	default:
		t.Fatalf("unexpected result %T", resp.Result)
		return nil
	}
}

func resultText(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()

	require.Len(t, result.Content, 1)
	textContent, ok := result.Content[0].(mcpgo.TextContent)
	require.True(t, ok)
	return textContent.Text
}

func TestNewServerRequiresDependencies(t *testing.T) {
	srv, err := NewServer(nil, log.Logger)
	require.Nil(t, srv)
	require.Error(t, err)

	srv, err = NewServer(newTestRegistry(t, &fakeSearcher{}, allTools()), nil)
	require.Nil(t, srv)
	require.Error(t, err)
}

func TestServerAvailableToolNames(t *testing.T) {
	var nilServer *Server
	require.Empty(t, nilServer.AvailableToolNames())

	srv := newTestServer(t, &fakeSearcher{})
	require.Equal(t, []string{tools.BaselineStatusToolName, tools.BaselineSummaryToolName}, srv.AvailableToolNames())
}

func TestServerListsTools(t *testing.T) {
	srv := newTestServer(t, &fakeSearcher{})

	msg := srv.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":7,"method":"tools/list"}`))
	resp, ok := msg.(mcpgo.JSONRPCResponse)
	require.True(t, ok)

	var result mcpgo.ListToolsResult
	switch r := resp.Result.(type) {
	case mcpgo.ListToolsResult:
		result = r
	case *mcpgo.ListToolsResult:
		result = *r
	default:
		t.Fatalf("unexpected result %T", resp.Result)
	}
	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{tools.BaselineStatusToolName, tools.BaselineSummaryToolName}, names)
}

func TestServerStatusToolSuccess(t *testing.T) {
	searcher := &fakeSearcher{features: []baseline.Feature{{Name: "CSS Grid"}}}
	srv := newTestServer(t, searcher)

	result := callTool(t, srv, tools.BaselineStatusToolName, map[string]any{"query": []any{"css", "grid"}, "limit": 4})
	require.False(t, result.IsError)
	require.Contains(t, resultText(t, result), "# 🌐 Baseline Status: **css grid**")
	require.Equal(t, 4, searcher.limit)
}

func TestServerStatusToolRejectsSchemaViolations(t *testing.T) {
	cases := map[string]map[string]any{
		"missing query":    {},
		"non array query":  {"query": "grid"},
		"non string item":  {"query": []any{1}},
		"limit too small":  {"query": []any{"grid"}, "limit": 0},
		"limit too large":  {"query": []any{"grid"}, "limit": 21},
		"limit not number": {"query": []any{"grid"}, "limit": "5"},
		"flag not boolean": {"query": []any{"grid"}, "include_specs": "no"},
	}

	for name, args := range cases {
		searcher := &fakeSearcher{}
		srv := newTestServer(t, searcher)

		result := callTool(t, srv, tools.BaselineStatusToolName, args)
		require.True(t, result.IsError, name)
		require.Zero(t, searcher.calls, name)
	}
}

func TestServerStatusToolUpstreamError(t *testing.T) {
	searcher := &fakeSearcher{err: &baseline.FetchError{URL: "u", StatusCode: 500, Err: errors.New("boom")}}
	srv := newTestServer(t, searcher)

	result := callTool(t, srv, tools.BaselineStatusToolName, map[string]any{"query": []any{"grid"}})
	require.True(t, result.IsError)
	require.Contains(t, resultText(t, result), "upstream request failed")
}

func TestServerSummaryTool(t *testing.T) {
	srv := newTestServer(t, &fakeSearcher{})

	first := callTool(t, srv, tools.BaselineSummaryToolName, nil)
	second := callTool(t, srv, tools.BaselineSummaryToolName, map[string]any{})
	require.False(t, first.IsError)
	require.Equal(t, baseline.Summary, resultText(t, first))
	require.Equal(t, resultText(t, first), resultText(t, second))
}

func TestServerDisabledToolIsNotRegistered(t *testing.T) {
	registry := newTestRegistry(t, &fakeSearcher{}, ToolsSettings{BaselineSummaryEnabled: true})
	srv, err := NewServer(registry, log.Logger.Named("test_mcp"))
	require.NoError(t, err)
	require.Equal(t, []string{tools.BaselineSummaryToolName}, srv.AvailableToolNames())

	msg := srv.HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"get_web_feature_baseline_status","arguments":{"query":["grid"]}}}`))
	_, isErr := msg.(mcpgo.JSONRPCError)
	require.True(t, isErr)
}

func TestServeStdioRoundTrip(t *testing.T) {
	srv := newTestServer(t, &fakeSearcher{})

	in := strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get_baseline_summary","arguments":{}}}`,
	}, "\n") + "\n")
	out := new(safeBuffer)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, srv.ServeStdio(ctx, in, out, io.Discard))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `"serverInfo"`)
	require.Contains(t, lines[1], "Web Platform Baseline")
}

func TestServeStdioStopsOnCancel(t *testing.T) {
	srv := newTestServer(t, &fakeSearcher{})

	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.ServeStdio(ctx, reader, io.Discard, io.Discard)
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("stdio server did not stop")
	}
}

func TestArgumentsMap(t *testing.T) {
	require.Empty(t, argumentsMap(nil))
	require.Equal(t, map[string]any{"a": float64(1)}, argumentsMap(json.RawMessage(`{"a":1}`)))
	require.Empty(t, argumentsMap(json.RawMessage(`[1]`)))
	require.Empty(t, argumentsMap("text"))
}

// safeBuffer serializes writes from the stdio worker and reader goroutines.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

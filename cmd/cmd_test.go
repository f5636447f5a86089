package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/baseline-mcp/internal/baseline"
)

func TestRenderOutput(t *testing.T) {
	md := "# Title\n\nsome **bold** text"

	out, err := renderOutput(md, "")
	require.NoError(t, err)
	require.Equal(t, md, out)

	out, err = renderOutput(md, "Markdown")
	require.NoError(t, err)
	require.Equal(t, md, out)

	out, err = renderOutput(md, formatHTML)
	require.NoError(t, err)
	require.Contains(t, out, "<h1")
	require.Contains(t, out, "<strong>bold</strong>")

	out, err = renderOutput(md, formatTerminal)
	require.NoError(t, err)
	require.Contains(t, out, "bold")
	require.NotContains(t, out, "**")

	_, err = renderOutput(md, "pdf")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown format "pdf"`)
}

func TestQueryFromFlagsDefaults(t *testing.T) {
	flags := pflag.NewFlagSet("query", pflag.ContinueOnError)
	addQueryFlags(flags)
	require.NoError(t, flags.Parse(nil))

	q, err := queryFromFlags(flags, []string{"css", "grid"})
	require.NoError(t, err)
	require.Equal(t, baseline.NewQuery("css", "grid"), q)
}

func TestQueryFromFlagsOverrides(t *testing.T) {
	flags := pflag.NewFlagSet("query", pflag.ContinueOnError)
	addQueryFlags(flags)
	require.NoError(t, flags.Parse([]string{"--limit", "3", "--no-usage", "--no-specs"}))

	q, err := queryFromFlags(flags, []string{"grid"})
	require.NoError(t, err)
	require.Equal(t, []string{"grid"}, q.Terms)
	require.Equal(t, 3, q.Limit)
	require.True(t, q.IncludeBrowserDetails)
	require.False(t, q.IncludeUsageStats)
	require.True(t, q.IncludeTestResults)
	require.False(t, q.IncludeSpecs)
}

func TestQueryFromFlagsMissingFlag(t *testing.T) {
	flags := pflag.NewFlagSet("query", pflag.ContinueOnError)
	_, err := queryFromFlags(flags, []string{"grid"})
	require.Error(t, err)
}

func TestWriteStdioBanner(t *testing.T) {
	var buf bytes.Buffer
	writeStdioBanner(&buf, []string{"a", "b"}, "https://api.webstatus.dev")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, []string{
		"🏠 Baseline MCP Server running on stdio",
		"📊 Available tools: a, b",
		"🌐 Data source: https://api.webstatus.dev",
	}, lines)
}

func TestWriteStdioShutdown(t *testing.T) {
	var buf bytes.Buffer
	writeStdioShutdown(&buf)
	require.Equal(t, "📴 Shutting down...\n", buf.String())
}

func TestMetricsHandlerServesPrometheus(t *testing.T) {
	rec := httptest.NewRecorder()
	metricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")

	rec = httptest.NewRecorder()
	metricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCMD.Commands() {
		names = append(names, c.Name())
	}
	require.Subset(t, names, []string{"api", "query", "stdio", "summary"})
}

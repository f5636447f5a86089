package mcp

import (
	"testing"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/baseline-mcp/internal/mcp/tools"
)

func TestToolEnabledKey(t *testing.T) {
	require.Equal(t, "settings.tools.get_baseline_summary.enabled", ToolEnabledKey(tools.BaselineSummaryToolName))
}

func TestParseConfigBool(t *testing.T) {
	cases := []struct {
		raw  any
		want bool
		ok   bool
	}{
		{raw: true, want: true, ok: true},
		{raw: false, want: false, ok: true},
		{raw: 1, want: true, ok: true},
		{raw: int64(0), want: false, ok: true},
		{raw: float64(2), want: true, ok: true},
		{raw: "yes", want: true, ok: true},
		{raw: "FALSE", want: false, ok: true},
		{raw: "maybe", ok: false},
		{raw: []string{"x"}, ok: false},
	}

	for _, tc := range cases {
		got, ok := ParseConfigBool(tc.raw)
		require.Equal(t, tc.ok, ok, tc.raw)
		require.Equal(t, tc.want, got, tc.raw)
	}
}

func TestLoadToolsSettingsFromConfig(t *testing.T) {
	statusKey := ToolEnabledKey(tools.BaselineStatusToolName)
	summaryKey := ToolEnabledKey(tools.BaselineSummaryToolName)
	t.Cleanup(func() {
		gconfig.S.Set(statusKey, nil)
		gconfig.S.Set(summaryKey, nil)
	})

	gconfig.S.Set(statusKey, nil)
	gconfig.S.Set(summaryKey, nil)
	settings := LoadToolsSettingsFromConfig()
	require.True(t, settings.BaselineStatusEnabled)
	require.True(t, settings.BaselineSummaryEnabled)

	gconfig.S.Set(statusKey, "false")
	gconfig.S.Set(summaryKey, "garbage")
	settings = LoadToolsSettingsFromConfig()
	require.False(t, settings.BaselineStatusEnabled)
	require.True(t, settings.BaselineSummaryEnabled)
}

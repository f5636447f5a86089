// Package mcp provides the protocol adapters that expose the Baseline tools.
package mcp

import (
	gconfig "github.com/Laisky/go-config/v2"

	"github.com/Laisky/baseline-mcp/internal/mcp/tools"
)

// ToolsSettings captures runtime configuration for enabling or disabling individual MCP tools.
type ToolsSettings struct {
	BaselineStatusEnabled  bool
	BaselineSummaryEnabled bool
}

// ToolEnabledKey returns the configuration key toggling the named tool.
func ToolEnabledKey(toolName string) string {
	return "settings.tools." + toolName + ".enabled"
}

// LoadToolsSettingsFromConfig reads the tools configuration and returns a ToolsSettings instance.
// By default, all tools are enabled unless explicitly disabled in the configuration.
func LoadToolsSettingsFromConfig() ToolsSettings {
	return ToolsSettings{
		BaselineStatusEnabled:  boolFromConfig(ToolEnabledKey(tools.BaselineStatusToolName), true),
		BaselineSummaryEnabled: boolFromConfig(ToolEnabledKey(tools.BaselineSummaryToolName), true),
	}
}

// ParseConfigBool interprets a raw configuration value as a boolean.
// ok is false when the value is present but not recognizable.
func ParseConfigBool(value any) (result bool, ok bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	case float64:
		return v != 0, true
	case string:
		switch v {
		case "true", "True", "TRUE", "1", "yes", "Yes", "YES":
			return true, true
		case "false", "False", "FALSE", "0", "no", "No", "NO":
			return false, true
		}
	}

	return false, false
}

// boolFromConfig retrieves a boolean configuration value with a default fallback.
func boolFromConfig(key string, def bool) bool {
	value := gconfig.S.Get(key)
	if value == nil {
		return def
	}

	if v, ok := ParseConfigBool(value); ok {
		return v
	}
	return def
}

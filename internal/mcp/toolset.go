package mcp

import (
	"github.com/Laisky/errors/v2"

	"github.com/Laisky/baseline-mcp/internal/baseline"
	"github.com/Laisky/baseline-mcp/internal/mcp/tools"
)

// NewToolRegistry builds the registry of enabled tools shared by both adapters.
func NewToolRegistry(service *baseline.Service, settings ToolsSettings) (*tools.Registry, error) {
	if service == nil {
		return nil, errors.New("baseline service is required")
	}

	var enabled []tools.Tool
	if settings.BaselineStatusEnabled {
		tool, err := tools.NewBaselineStatusTool(service)
		if err != nil {
			return nil, errors.Wrap(err, "new baseline status tool")
		}
		enabled = append(enabled, tool)
	}
	if settings.BaselineSummaryEnabled {
		tool, err := tools.NewBaselineSummaryTool(service)
		if err != nil {
			return nil, errors.Wrap(err, "new baseline summary tool")
		}
		enabled = append(enabled, tool)
	}

	if len(enabled) == 0 {
		return nil, errors.New("at least one tool must be enabled")
	}

	return tools.NewRegistry(enabled...)
}

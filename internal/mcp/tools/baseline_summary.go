package tools

import (
	"context"

	"github.com/Laisky/errors/v2"
	mcp "github.com/mark3labs/mcp-go/mcp"
)

// BaselineSummaryToolName is the registered name of the summary tool.
const BaselineSummaryToolName = "get_baseline_summary"

// SummaryService returns the static Baseline overview.
type SummaryService interface {
	BaselineSummary() string
}

// BaselineSummaryTool implements the get_baseline_summary tool.
type BaselineSummaryTool struct {
	service SummaryService
}

// NewBaselineSummaryTool constructs a BaselineSummaryTool backed by service.
func NewBaselineSummaryTool(service SummaryService) (*BaselineSummaryTool, error) {
	if service == nil {
		return nil, errors.New("summary service is required")
	}

	return &BaselineSummaryTool{service: service}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *BaselineSummaryTool) Definition() mcp.Tool {
	return mcp.NewTool(
		BaselineSummaryToolName,
		mcp.WithDescription("Get overview of the Baseline system and status categories"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

// Call ignores args and returns the summary document.
func (t *BaselineSummaryTool) Call(_ context.Context, _ map[string]any) (string, error) {
	return t.service.BaselineSummary(), nil
}

package tools

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/Laisky/errors/v2"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/baseline-mcp/internal/baseline"
)

// BaselineStatusToolName is the registered name of the status lookup tool.
const BaselineStatusToolName = "get_web_feature_baseline_status"

const (
	argQuery                 = "query"
	argIncludeBrowserDetails = "include_browser_details"
	argIncludeUsageStats     = "include_usage_stats"
	argIncludeTestResults    = "include_test_results"
	argIncludeSpecs          = "include_specs"
	argLimit                 = "limit"
)

// StatusService renders baseline status for a query.
type StatusService interface {
	BaselineStatus(ctx context.Context, q baseline.Query) (string, error)
}

// BaselineStatusTool implements the get_web_feature_baseline_status tool.
type BaselineStatusTool struct {
	service StatusService
}

// NewBaselineStatusTool constructs a BaselineStatusTool backed by service.
func NewBaselineStatusTool(service StatusService) (*BaselineStatusTool, error) {
	if service == nil {
		return nil, errors.New("status service is required")
	}

	return &BaselineStatusTool{service: service}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *BaselineStatusTool) Definition() mcp.Tool {
	return mcp.NewTool(
		BaselineStatusToolName,
		mcp.WithDescription("Get comprehensive baseline information for web platform features"),
		mcp.WithArray(
			argQuery,
			mcp.Required(),
			mcp.Description("Search terms for web features"),
			mcp.WithStringItems(),
		),
		mcp.WithBoolean(
			argIncludeBrowserDetails,
			mcp.Description("Include browser implementation details"),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean(
			argIncludeUsageStats,
			mcp.Description("Include usage statistics"),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean(
			argIncludeTestResults,
			mcp.Description("Include test results"),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean(
			argIncludeSpecs,
			mcp.Description("Include specification links"),
			mcp.DefaultBool(true),
		),
		mcp.WithNumber(
			argLimit,
			mcp.Description("Maximum number of results"),
			mcp.Min(baseline.MinLimit),
			mcp.Max(baseline.MaxLimit),
			mcp.DefaultNumber(baseline.DefaultLimit),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Call parses args into a query and renders the matching features.
func (t *BaselineStatusTool) Call(ctx context.Context, args map[string]any) (string, error) {
	q, err := ParseStatusArguments(args)
	if err != nil {
		return "", err
	}

	return t.service.BaselineStatus(ctx, q)
}

// ParseStatusArguments converts raw tool arguments into a baseline.Query.
// query must be an array of strings; the flags default to true and limit
// defaults to baseline.DefaultLimit. Numeric limits are not range checked
// here since the request translator clamps them.
func ParseStatusArguments(args map[string]any) (baseline.Query, error) {
	terms, err := parseTerms(args[argQuery])
	if err != nil {
		return baseline.Query{}, err
	}

	q := baseline.NewQuery(terms...)
	flags := []struct {
		key string
		dst *bool
	}{
		{argIncludeBrowserDetails, &q.IncludeBrowserDetails},
		{argIncludeUsageStats, &q.IncludeUsageStats},
		{argIncludeTestResults, &q.IncludeTestResults},
		{argIncludeSpecs, &q.IncludeSpecs},
	}
	for _, flag := range flags {
		if *flag.dst, err = optionalBool(args, flag.key, true); err != nil {
			return baseline.Query{}, err
		}
	}

	if q.Limit, err = optionalLimit(args); err != nil {
		return baseline.Query{}, err
	}

	return q, nil
}

func parseTerms(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		terms := make([]string, 0, len(v))
		for i, item := range v {
			term, ok := item.(string)
			if !ok {
				return nil, baseline.NewValidationError(argQuery, "query item %d must be a string", i)
			}
			terms = append(terms, term)
		}
		return terms, nil
	default:
		return nil, baseline.NewValidationError(argQuery, "Query parameter is required and must be an array")
	}
}

func optionalBool(args map[string]any, key string, def bool) (bool, error) {
	switch v := args[key].(type) {
	case nil:
		return def, nil
	case bool:
		return v, nil
	default:
		return false, baseline.NewValidationError(key, "%s must be a boolean", key)
	}
}

func optionalLimit(args map[string]any) (int, error) {
	var value float64
	switch v := args[argLimit].(type) {
	case nil:
		return baseline.DefaultLimit, nil
	case float64:
		value = v
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, baseline.NewValidationError(argLimit, "limit must be a number")
		}
		value = f
	case string:
		// numeric strings are coerced, as JSON clients often send them
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, baseline.NewValidationError(argLimit, "limit must be a number")
		}
		value = f
	default:
		return 0, baseline.NewValidationError(argLimit, "limit must be a number")
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, baseline.NewValidationError(argLimit, "limit must be a finite number")
	}
	// saturate before the int conversion; the translator clamps the rest
	value = math.Max(math.Min(value, baseline.MaxLimit+1), baseline.MinLimit-1)
	return int(math.Trunc(value)), nil
}

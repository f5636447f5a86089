package mcp

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"

	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/baseline-mcp/internal/baseline"
)

// validateArguments checks args against the subset of JSON schema the tool
// definitions use: required, type, items, minimum and maximum.
// Unknown arguments are ignored.
func validateArguments(schema mcp.ToolInputSchema, args map[string]any) error {
	for _, name := range schema.Required {
		if value, ok := args[name]; !ok || value == nil {
			return baseline.NewValidationError(name, "%s is required", name)
		}
	}

	for _, name := range slices.Sorted(maps.Keys(args)) {
		prop, ok := schema.Properties[name].(map[string]any)
		if !ok {
			continue
		}
		if err := validateValue(name, prop, args[name]); err != nil {
			return err
		}
	}

	return nil
}

func validateValue(path string, prop map[string]any, value any) error {
	if value == nil {
		return nil
	}

	switch prop["type"] {
	case "array":
		items, ok := arrayItems(value)
		if !ok {
			return baseline.NewValidationError(path, "%s must be an array", path)
		}
		itemSchema, _ := prop["items"].(map[string]any)
		if itemSchema == nil {
			return nil
		}
		for i, item := range items {
			itemPath := path + "[" + strconv.Itoa(i) + "]"
			if item == nil {
				return baseline.NewValidationError(path, "%s must not be null", itemPath)
			}
			if err := validateValue(itemPath, itemSchema, item); err != nil {
				return err
			}
		}
	case "string":
		if _, ok := value.(string); !ok {
			return baseline.NewValidationError(path, "%s must be a string", path)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return baseline.NewValidationError(path, "%s must be a boolean", path)
		}
	case "number":
		n, ok := numberValue(value)
		if !ok {
			return baseline.NewValidationError(path, "%s must be a number", path)
		}
		if minimum, ok := numberValue(prop["minimum"]); ok && n < minimum {
			return baseline.NewValidationError(path, "%s must be greater than or equal to %v", path, minimum)
		}
		if maximum, ok := numberValue(prop["maximum"]); ok && n > maximum {
			return baseline.NewValidationError(path, "%s must be less than or equal to %v", path, maximum)
		}
	}

	return nil
}

func arrayItems(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		items := make([]any, 0, len(v))
		for _, item := range v {
			items = append(items, item)
		}
		return items, true
	default:
		return nil, false
	}
}

func numberValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

package cmd

import (
	"fmt"
	"net/url"
	"strings"

	errors "github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"

	"github.com/Laisky/baseline-mcp/internal/mcp"
	"github.com/Laisky/baseline-mcp/internal/mcp/tools"
	"github.com/Laisky/baseline-mcp/library/config"
)

// configGetter retrieves raw configuration values by dotted key path.
type configGetter func(key string) any

// validateStartupConfig validates startup configuration from the shared config source.
// It returns an error when any configured value is malformed or violates constraints.
func validateStartupConfig() error {
	return validateStartupConfigWithGetter(func(key string) any {
		return gconfig.S.Get(key)
	})
}

// validateStartupConfigWithGetter validates startup configuration via a key-value getter.
// It accepts a value getter and returns nil when all configured values are valid.
func validateStartupConfigWithGetter(get configGetter) error {
	if get == nil {
		return errors.New("config getter is nil")
	}

	validationErrs := make([]string, 0)

	validateBaselineConfig(get, &validationErrs)
	validateToolsConfig(get, &validationErrs)
	validateLoggerConfig(get, &validationErrs)

	if len(validationErrs) == 0 {
		return nil
	}

	return errors.Errorf("invalid configuration:\n - %s", strings.Join(validationErrs, "\n - "))
}

// validateBaselineConfig validates the upstream API settings.
func validateBaselineConfig(get configGetter, errs *[]string) {
	validateOptionalHTTPURL(get, config.APIBaseURLKey, errs)
}

// validateToolsConfig validates per-tool enable toggles.
func validateToolsConfig(get configGetter, errs *[]string) {
	for _, name := range []string{tools.BaselineStatusToolName, tools.BaselineSummaryToolName} {
		validateOptionalBool(get, mcp.ToolEnabledKey(name), errs)
	}
}

// validateLoggerConfig validates the log level.
func validateLoggerConfig(get configGetter, errs *[]string) {
	raw := get("log-level")
	if raw == nil {
		return
	}

	lvl, parseErr := parseStrictString(raw)
	if parseErr != nil {
		appendValidationError(errs, "log-level must be a string")
		return
	}

	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug", "info", "warn", "error":
	default:
		appendValidationError(errs, "log-level must be one of [debug, info, warn, error]")
	}
}

// validateOptionalBool validates an optionally configured boolean key.
// It accepts a getter, the key, and an error collector pointer and appends validation errors.
func validateOptionalBool(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	if _, ok := mcp.ParseConfigBool(raw); !ok {
		appendValidationError(errs, "%s must be a boolean", key)
	}
}

// validateOptionalHTTPURL validates an optionally configured absolute http(s) URL key.
func validateOptionalHTTPURL(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, parseErr := parseStrictString(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be a string URL", key)
		return
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		appendValidationError(errs, "%s must not be empty", key)
		return
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		appendValidationError(errs, "%s must be a valid absolute URL", key)
		return
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		appendValidationError(errs, "%s must use http or https", key)
	}
}

// parseStrictString parses a value as a strict string.
// It accepts a raw value and returns the parsed string and an error when parsing fails.
func parseStrictString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", errors.Errorf("unsupported string type %T", value)
	}
}

// appendValidationError appends a formatted validation error to the collector.
// It accepts an error slice pointer, a format string, and format arguments, and has no return value.
func appendValidationError(errs *[]string, format string, args ...any) {
	if errs == nil {
		return
	}
	*errs = append(*errs, fmt.Sprintf(format, args...))
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Laisky/baseline-mcp/library/log"
)

// DefaultAPIBaseURL is the public webstatus.dev API.
const DefaultAPIBaseURL = "https://api.webstatus.dev"

// APIBaseURLKey is the config file key holding the upstream API base URL.
const APIBaseURLKey = "settings.baseline.api_base_url"

// Env holds the settings that may be supplied through environment variables.
type Env struct {
	APIBaseURL string `env:"BASELINE_API_BASE_URL"`
	// LegacyAPIBaseURL keeps deployments that export API_BASE_URL working.
	LegacyAPIBaseURL string `env:"API_BASE_URL"`
	Listen           string `env:"BASELINE_LISTEN"`
}

// ParseEnv loads Env from the process environment.
func ParseEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}

// LoadDotEnv loads variables from path into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "stat env file %q", path)
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "load env file %q", path)
	}

	log.Logger.Debug("load env file", zap.String("path", path))
	return nil
}

// LoadFromFile loads the YAML settings file into the shared config.
func LoadFromFile(cfgPath string) {
	gconfig.Shared.Set("cfg_dir", filepath.Dir(cfgPath))
	if err := gconfig.Shared.LoadFromFile(cfgPath); err != nil {
		log.Logger.Panic("load configuration",
			zap.Error(err),
			zap.String("config", cfgPath))
	}

	log.Logger.Info("load configuration",
		zap.String("config", cfgPath))
}

// ResolveAPIBaseURL picks the upstream base URL by precedence:
// explicit flag, environment, config file, then DefaultAPIBaseURL.
func ResolveAPIBaseURL(flagValue string, e Env, fileValue string) string {
	for _, candidate := range []string{flagValue, e.APIBaseURL, e.LegacyAPIBaseURL, fileValue} {
		if v := strings.TrimSpace(candidate); v != "" {
			return v
		}
	}
	return DefaultAPIBaseURL
}

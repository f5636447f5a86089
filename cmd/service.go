package cmd

import (
	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"

	"github.com/Laisky/baseline-mcp/internal/baseline"
	"github.com/Laisky/baseline-mcp/internal/mcp"
	"github.com/Laisky/baseline-mcp/internal/mcp/tools"
	"github.com/Laisky/baseline-mcp/library/config"
	"github.com/Laisky/baseline-mcp/library/log"
)

// apiBaseURL returns the upstream base url resolved during initialize.
func apiBaseURL() string {
	if v := gconfig.Shared.GetString(config.APIBaseURLKey); v != "" {
		return v
	}
	return config.DefaultAPIBaseURL
}

func newBaselineService() (*baseline.Service, error) {
	client, err := baseline.NewClient(apiBaseURL(),
		baseline.WithLogger(log.Logger.Named("baseline_client")),
	)
	if err != nil {
		return nil, errors.Wrap(err, "new baseline client")
	}

	svc, err := baseline.NewService(client, log.Logger.Named("baseline_service"))
	if err != nil {
		return nil, errors.Wrap(err, "new baseline service")
	}

	return svc, nil
}

func newToolRegistry() (*tools.Registry, error) {
	svc, err := newBaselineService()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	registry, err := mcp.NewToolRegistry(svc, mcp.LoadToolsSettingsFromConfig())
	if err != nil {
		return nil, errors.Wrap(err, "new tool registry")
	}

	return registry, nil
}

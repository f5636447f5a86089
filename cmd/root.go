// Package cmd command line
package cmd

import (
	"context"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/baseline-mcp/library/config"
	"github.com/Laisky/baseline-mcp/library/log"
)

var rootCMD = &cobra.Command{
	Use:   "baseline-mcp",
	Short: "baseline-mcp",
	Long:  `MCP server reporting Web Platform Baseline status from webstatus.dev`,
	Args:  gcmd.NoExtraArgs,
}

// initialize binds flags and loads settings for cmd. Every subcommand calls
// it from PreRunE before touching the shared configuration.
func initialize(ctx context.Context, cmd *cobra.Command) error {
	if err := gconfig.Shared.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind pflags")
	}

	if err := setupSettings(ctx, cmd); err != nil {
		return errors.Wrap(err, "setup settings")
	}
	if err := setupLogger(ctx); err != nil {
		return errors.Wrap(err, "setup logger")
	}
	if err := validateStartupConfig(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func setupSettings(ctx context.Context, cmd *cobra.Command) error {
	// mode
	if gconfig.Shared.GetBool("debug") {
		gconfig.Shared.Set("log-level", "debug")
	}

	if err := config.LoadDotEnv(gconfig.Shared.GetString("env-file")); err != nil {
		return errors.WithStack(err)
	}

	// load configuration
	if cfgPath := gconfig.Shared.GetString("config"); cfgPath != "" {
		config.LoadFromFile(cfgPath)
	}

	envCfg, err := config.ParseEnv()
	if err != nil {
		return errors.WithStack(err)
	}

	apiBase := config.ResolveAPIBaseURL(
		gconfig.Shared.GetString("api-base-url"),
		envCfg,
		gconfig.Shared.GetString(config.APIBaseURLKey),
	)
	gconfig.Shared.Set(config.APIBaseURLKey, apiBase)

	if envCfg.Listen != "" {
		if flag := cmd.Flags().Lookup("listen"); flag != nil && !flag.Changed {
			gconfig.Shared.Set("listen", envCfg.Listen)
		}
	}

	return nil
}

func setupLogger(ctx context.Context) error {
	lvl := gconfig.Shared.GetString("log-level")
	if err := log.Logger.ChangeLevel(glog.Level(lvl)); err != nil {
		return errors.Wrapf(err, "change log level to %q", lvl)
	}

	log.Logger.Debug("logger ready", zap.String("level", lvl))
	return nil
}

// preRun is shared by every subcommand as its PreRunE.
func preRun(cmd *cobra.Command, args []string) error {
	return initialize(cmd.Context(), cmd)
}

func init() {
	rootCMD.PersistentFlags().Bool("debug", false, "run in debug mode")
	rootCMD.PersistentFlags().StringP("config", "c", "", "optional YAML settings file path")
	rootCMD.PersistentFlags().String("env-file", ".env", "optional dotenv file loaded before reading the environment")
	rootCMD.PersistentFlags().String("log-level", "info", "`debug/info/error`")
	rootCMD.PersistentFlags().String("api-base-url", "",
		"webstatus.dev API base url, overrides BASELINE_API_BASE_URL and the config file")
}

// Execute execute root command
func Execute() {
	if err := rootCMD.Execute(); err != nil {
		glog.Shared.Panic("start", zap.Error(err))
	}
}

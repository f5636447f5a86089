// Package log is a logging package that provides functions to log messages.
package log

import (
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
)

// Logger is the process-wide logger. It writes to stderr so the stdio
// transport keeps stdout for protocol frames.
var Logger logSDK.Logger

func init() {
	var err error
	if Logger, err = newLogger("baseline"); err != nil {
		logSDK.Shared.Panic("new logger", zap.Error(err))
	}
}

func newLogger(name string) (logSDK.Logger, error) {
	return logSDK.New(
		logSDK.WithName(name),
		logSDK.WithEncoding(logSDK.EncodingConsole),
		logSDK.WithLevel(logSDK.LevelInfo),
		logSDK.WithOutputPaths([]string{"stderr"}),
	)
}

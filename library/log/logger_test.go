package log

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoggerWritesToStderrOnly verifies log lines never reach stdout,
// which carries protocol frames in stdio mode.
func TestLoggerWritesToStderrOnly(t *testing.T) {
	stdoutR, stdoutW, err := os.Pipe()
	require.NoError(t, err)
	stderrR, stderrW, err := os.Pipe()
	require.NoError(t, err)

	origStdout, origStderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = stdoutW, stderrW
	logger, err := newLogger("test")
	os.Stdout, os.Stderr = origStdout, origStderr
	require.NoError(t, err)

	logger.Info("hello from the logger")

	require.NoError(t, stdoutW.Close())
	require.NoError(t, stderrW.Close())

	stdout, err := io.ReadAll(stdoutR)
	require.NoError(t, err)
	stderr, err := io.ReadAll(stderrR)
	require.NoError(t, err)

	require.Empty(t, string(stdout))
	require.Contains(t, string(stderr), "hello from the logger")
}

func TestSharedLoggerReady(t *testing.T) {
	require.NotNil(t, Logger)
}

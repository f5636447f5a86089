package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Laisky/errors/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/spf13/cobra"

	"github.com/Laisky/baseline-mcp/internal/mcp"
	"github.com/Laisky/baseline-mcp/library/log"
)

var stdioCMD = &cobra.Command{
	Use:     "stdio",
	Short:   "serve MCP over stdin/stdout",
	Long:    `serve the Baseline tools to an MCP client over newline-delimited JSON-RPC on stdin/stdout`,
	Args:    gcmd.NoExtraArgs,
	PreRunE: preRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStdio(cmd.Context())
	},
}

func runStdio(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := newToolRegistry()
	if err != nil {
		return errors.WithStack(err)
	}

	server, err := mcp.NewServer(registry, log.Logger.Named("mcp"))
	if err != nil {
		return errors.Wrap(err, "new mcp server")
	}

	writeStdioBanner(os.Stderr, server.AvailableToolNames(), apiBaseURL())
	err = server.ServeStdio(ctx, os.Stdin, os.Stdout, os.Stderr)
	if ctx.Err() != nil {
		writeStdioShutdown(os.Stderr)
	}
	return err
}

// writeStdioBanner prints the startup banner. It must never go to stdout.
func writeStdioBanner(w io.Writer, toolNames []string, dataSource string) {
	fmt.Fprintln(w, "🏠 "+mcp.ServerName+" running on "+mcp.TransportStdio)
	fmt.Fprintln(w, "📊 Available tools: "+strings.Join(toolNames, ", "))
	fmt.Fprintln(w, "🌐 Data source: "+dataSource)
}

// writeStdioShutdown announces a signal-triggered stop.
func writeStdioShutdown(w io.Writer) {
	fmt.Fprintln(w, "📴 Shutting down...")
}

func init() {
	rootCMD.AddCommand(stdioCMD)
}

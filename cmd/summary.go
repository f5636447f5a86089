package cmd

import (
	"fmt"

	"github.com/Laisky/errors/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/spf13/cobra"

	"github.com/Laisky/baseline-mcp/internal/baseline"
)

var summaryCMD = &cobra.Command{
	Use:   "summary",
	Short: "print the Baseline status overview",
	Args:  gcmd.NoExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return errors.Wrap(err, "read format flag")
		}

		out, err := renderOutput(baseline.Summary, format)
		if err != nil {
			return errors.WithStack(err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	summaryCMD.Flags().String("format", formatMarkdown, "`markdown/html/terminal`")
	rootCMD.AddCommand(summaryCMD)
}

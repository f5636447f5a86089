package cmd

import (
	"fmt"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Laisky/baseline-mcp/internal/baseline"
)

var queryCMD = &cobra.Command{
	Use:     "query <terms...>",
	Short:   "look up the baseline status of features once",
	Long:    `search webstatus.dev for the given terms and print the same report the MCP tool returns`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: preRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := queryFromFlags(cmd.Flags(), args)
		if err != nil {
			return errors.WithStack(err)
		}
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return errors.Wrap(err, "read format flag")
		}

		svc, err := newBaselineService()
		if err != nil {
			return errors.WithStack(err)
		}

		text, err := svc.BaselineStatus(cmd.Context(), q)
		if err != nil {
			return errors.Wrap(err, "baseline status")
		}

		out, err := renderOutput(text, format)
		if err != nil {
			return errors.WithStack(err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

// queryFromFlags builds a baseline.Query from the query subcommand flags.
func queryFromFlags(flags *pflag.FlagSet, terms []string) (baseline.Query, error) {
	q := baseline.NewQuery(terms...)

	limit, err := flags.GetInt("limit")
	if err != nil {
		return q, errors.Wrap(err, "read limit flag")
	}
	q.Limit = limit

	toggles := []struct {
		flag   string
		target *bool
	}{
		{"no-browsers", &q.IncludeBrowserDetails},
		{"no-usage", &q.IncludeUsageStats},
		{"no-tests", &q.IncludeTestResults},
		{"no-specs", &q.IncludeSpecs},
	}
	for _, t := range toggles {
		off, err := flags.GetBool(t.flag)
		if err != nil {
			return q, errors.Wrapf(err, "read %s flag", t.flag)
		}
		*t.target = !off
	}

	return q, nil
}

// addQueryFlags registers the flags read by queryFromFlags.
func addQueryFlags(flags *pflag.FlagSet) {
	flags.Int("limit", baseline.DefaultLimit, "maximum number of features, clamped to [1, 20]")
	flags.Bool("no-browsers", false, "omit per-browser implementation details")
	flags.Bool("no-usage", false, "omit usage statistics")
	flags.Bool("no-tests", false, "omit WPT test results")
	flags.Bool("no-specs", false, "omit specification links")
	flags.String("format", formatMarkdown, "`markdown/html/terminal`")
}

func init() {
	addQueryFlags(queryCMD.Flags())
	rootCMD.AddCommand(queryCMD)
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"episodecheck/internal/api"
	"episodecheck/internal/querycache"
	"episodecheck/internal/seriescheck"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var purge, jsonOutput, showQueries, strict bool

	cmd := &cobra.Command{
		Use:   "check <series-item>",
		Short: "Check the episode data of a series",
		Long: "Check that the episodes of a series form a single 'follows' / 'followed by' chain\n" +
			"and that each season holds the number of episodes it declares.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runCheck(cmd, ctx, args[0], purge)
			if err != nil {
				return err
			}
			if jsonOutput {
				if err := writeJSON(cmd, api.FromResult(result)); err != nil {
					return err
				}
			} else {
				printReport(cmd, result, showQueries)
			}
			if strict && result.Failures() > 0 {
				return fmt.Errorf("%s failed", plural(result.Failures(), "check", "checks"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Ignore cached query results and refresh them")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&showQueries, "queries", false, "Also list every query that was run")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any check fails")
	return cmd
}

// runCheck opens a session, runs one check and closes the session again.
func runCheck(cmd *cobra.Command, ctx *commandContext, item string, purge bool) (*seriescheck.Result, error) {
	reqCtx := requestContext(cmd)
	if purge {
		reqCtx = querycache.WithPurge(reqCtx)
	}
	sess, err := ctx.openSession(reqCtx, false)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	return sess.checker.Check(reqCtx, strings.TrimSpace(item))
}

func printReport(cmd *cobra.Command, result *seriescheck.Result, showQueries bool) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	for _, line := range renderSectionHeader(fmt.Sprintf("%s (%s)", result.SeriesName, result.SeriesItem), colorize) {
		fmt.Fprintln(out, line)
	}
	if result.NoEpisodes {
		fmt.Fprintln(out, paint("No episodes were found; checking the season statements instead.", ansiYellow, colorize))
	} else {
		fmt.Fprintf(out, "Episodes: %s in %s, ordered: %s\n",
			plural(len(result.Episodes), "episode", "episodes"),
			plural(len(result.Seasons), "season", "seasons"),
			yesNo(result.Ordered))
	}

	rows := make([][]string, 0, len(result.Report))
	for _, item := range result.Report {
		rows = append(rows, []string{resultLabel(item, colorize), item.Message})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable([]string{"Result", "Message"}, rows, nil, 0, 100))
	}
	failed := result.Failures()
	fmt.Fprintf(out, "%d passed, %d failed\n", len(result.Report)-failed, failed)

	if showQueries {
		queryRows := make([][]string, 0, len(result.Queries))
		for _, q := range result.Queries {
			queryRows = append(queryRows, []string{q.Reason, q.Query})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable([]string{"Reason", "Query"}, queryRows, nil, 40, 100))
	}
}

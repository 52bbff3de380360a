package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"episodecheck/internal/api"
)

func newSeriesCommand(ctx *commandContext) *cobra.Command {
	var search string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "series",
		Short: "List television series, or search them by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reqCtx := requestContext(cmd)
			sess, err := ctx.openSession(reqCtx, false)
			if err != nil {
				return err
			}
			defer sess.Close()
			out := cmd.OutOrStdout()

			if text := strings.TrimSpace(search); text != "" {
				hits, err := sess.checker.Search(reqCtx, text)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, api.SearchResponse{Query: text, Hits: api.FromSearchHits(hits)})
				}
				if len(hits) == 0 {
					fmt.Fprintf(out, "No series named like %q\n", text)
					return nil
				}
				rows := make([][]string, 0, len(hits))
				for _, hit := range hits {
					rows = append(rows, []string{hit.Item, hit.Name, strings.Join(hit.Languages, ", ")})
				}
				fmt.Fprintln(out, renderTable([]string{"Item", "Name", "Languages"}, rows, nil, 0, 60, 40))
				return nil
			}

			series, err := sess.checker.AllSeries(reqCtx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, api.SeriesListResponse{Series: api.FromSeries(series)})
			}
			rows := make([][]string, 0, len(series))
			for _, s := range series {
				rows = append(rows, []string{s.Item, s.Label})
			}
			fmt.Fprintln(out, renderTable([]string{"Item", "Label"}, rows, nil, 0, 80))
			fmt.Fprintln(out, plural(len(series), "series", "series"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only series with a label containing this text")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

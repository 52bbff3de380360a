package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"episodecheck/internal/api"
)

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var purge, jsonOutput bool

	cmd := &cobra.Command{
		Use:   "episodes <series-item>",
		Short: "List the episodes of a series per season",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runCheck(cmd, ctx, args[0], purge)
			if err != nil {
				return err
			}
			if jsonOutput {
				seasons := make([]api.Season, 0, len(result.Seasons))
				for _, group := range result.Seasons {
					seasons = append(seasons, api.FromSeasonGroup(group))
				}
				return writeJSON(cmd, seasons)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if len(result.Episodes) == 0 {
				fmt.Fprintf(out, "No episodes found for %s (%s)\n", result.SeriesName, result.SeriesItem)
				return nil
			}
			if !result.Ordered {
				fmt.Fprintln(out, paint("The episodes do not form a single chain; they are listed in query order.", ansiYellow, colorize))
			}
			position := 0
			for _, group := range result.Seasons {
				season := api.FromSeasonGroup(group)
				for _, line := range renderSectionHeader(season.Label, colorize) {
					fmt.Fprintln(out, line)
				}
				rows := make([][]string, 0, len(group.Episodes))
				for _, ep := range group.Episodes {
					position++
					rows = append(rows, []string{
						fmt.Sprint(position),
						ep.Item,
						ep.Name,
						optionalInt(ep.EpisodeNumber),
						optionalInt(ep.NumberInSeason),
						optionalString(ep.ProductionCode),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Item", "Name", "No.", "In season", "Production code"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Ignore cached query results and refresh them")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the seasons as JSON")
	return cmd
}

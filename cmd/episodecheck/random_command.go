package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"episodecheck/internal/api"
	"episodecheck/internal/seriescheck"
)

func newRandomCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "random <series-item>",
		Short: "Pick a random episode of a series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runCheck(cmd, ctx, args[0], false)
			if err != nil {
				return err
			}
			ep, ok := seriescheck.Random(result, nil)
			if !ok {
				return fmt.Errorf("no episodes found for %s", result.SeriesItem)
			}
			if jsonOutput {
				return writeJSON(cmd, api.RandomEpisodeResponse{
					SeriesItem: result.SeriesItem,
					SeriesName: result.SeriesName,
					Episode:    api.FromEpisode(ep),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ep.LabelWithItem())
			if ep.SeasonNumber != nil && ep.NumberInSeason != nil {
				fmt.Fprintf(out, "Season %d, episode %d of %s\n", *ep.SeasonNumber, *ep.NumberInSeason, result.SeriesName)
			} else if ep.EpisodeNumber != nil {
				fmt.Fprintf(out, "Episode %d of %s\n", *ep.EpisodeNumber, result.SeriesName)
			} else {
				fmt.Fprintf(out, "Episode of %s\n", result.SeriesName)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the episode as JSON")
	return cmd
}

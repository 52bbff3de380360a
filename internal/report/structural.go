package report

import (
	"episodecheck/internal/diagnostic"
	"episodecheck/internal/episode"
)

// Structural checks declared per-season episode counts against the groups
// actually found, then reports episodes without a series ordinal. Items are
// returned in season order followed by the series-wide check.
func Structural(groups []episode.SeasonGroup, episodes []*episode.Episode) []diagnostic.Item {
	var items []diagnostic.Item
	for _, group := range groups {
		season := group.Key.String()
		if len(group.Episodes) == 0 {
			items = append(items, diagnostic.Fail("There were no episodes at all found in season %s!", season))
			continue
		}
		declared := group.Episodes[0].EpisodesInSeason
		found := len(group.Episodes)
		switch {
		case declared == nil:
			items = append(items, diagnostic.Fail("Season %s was missing the 'number of episodes' (P1113) statement", season))
		case *declared == found:
			items = append(items, diagnostic.Pass("The number of episodes found in season %s (%d) matched the 'number of episodes' (P1113) statement", season, found))
		default:
			items = append(items, diagnostic.Fail("The number of episodes actually found in season %s (%d) was different from the number of episodes suggested by the 'number of episodes' (P1113) statement (%d)",
				season, found, *declared))
		}
	}

	missing := 0
	for _, ep := range episodes {
		if ep.EpisodeNumber == nil {
			missing++
		}
	}
	if missing > 0 {
		items = append(items, diagnostic.Fail("%d episodes were missing an episode number, which should be specified as a 'series ordinal' (P1545) qualifier to the 'series' (P179) statement linking the episode to the series", missing))
	}
	return items
}

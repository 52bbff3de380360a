package report

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"episodecheck/internal/diagnostic"
	"episodecheck/internal/episode"
	"episodecheck/internal/sparql"
)

// season is one row of the seasons-with-totals query.
type season struct {
	item     string
	number   *int
	declared *int
}

// Aggregate inspects a series through its season-level statements: the
// declared number of seasons, the seasons found with their ordinals and
// declared episode counts, and the episodes that are 'part of' those seasons.
// The first two queries are fetched concurrently; items are emitted in a
// fixed order regardless.
func Aggregate(ctx context.Context, q sparql.Querier, seriesItem string) ([]diagnostic.Item, error) {
	var (
		countResult   *sparql.Result
		seasonsResult *sparql.Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := q.Run(gctx, sparql.NumberOfSeasons(seriesItem),
			fmt.Sprintf("Checking if %s has a 'number of seasons' property", seriesItem))
		if err != nil {
			return fmt.Errorf("number of seasons: %w", err)
		}
		countResult = res
		return nil
	})
	g.Go(func() error {
		res, err := q.Run(gctx, sparql.SeasonsWithEpisodeTotals(seriesItem),
			fmt.Sprintf("Finding all seasons of %s", seriesItem))
		if err != nil {
			return fmt.Errorf("seasons with totals: %w", err)
		}
		seasonsResult = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var items []diagnostic.Item

	expected, countItem, err := declaredSeasonCount(countResult.Values("numberOfSeasons"))
	if err != nil {
		return nil, err
	}
	items = append(items, countItem)

	seasons, err := bindSeasons(seasonsResult.Bindings)
	if err != nil {
		return nil, err
	}
	if expected != nil {
		if *expected == len(seasons) {
			items = append(items, diagnostic.Pass("The number of seasons actually found matched the 'number of seasons' (P2437)"))
		} else {
			items = append(items, diagnostic.Fail("The number of seasons actually found (%d) didn't match the 'number of seasons' (P2437) value %d",
				len(seasons), *expected))
		}
	}
	if len(seasons) == 0 {
		items = append(items, diagnostic.Fail("No seasons were found at all - they should have a 'series' (P179) relationship to %s", seriesItem))
	}
	seasonIDs := make([]string, 0, len(seasons))
	for _, s := range seasons {
		seasonIDs = append(seasonIDs, s.item)
		if s.number == nil {
			items = append(items, diagnostic.Fail("No 'season ordinal' (P1545) qualifier was found for the 'series' (P179) statement for season %s", s.item))
		}
		if s.declared == nil {
			items = append(items, diagnostic.Fail("No 'number of episodes' (P1113) statement for season %s", s.item))
		}
	}

	var rows []sparql.Binding
	if len(seasonIDs) > 0 {
		res, err := q.Run(ctx, sparql.EpisodesFromSeasons(seriesItem, seasonIDs),
			"Finding the episodes directly from season items")
		if err != nil {
			return nil, fmt.Errorf("episodes from seasons: %w", err)
		}
		rows = res.Bindings
	}
	if len(rows) == 0 {
		items = append(items, diagnostic.Fail("Found no episodes with a 'part of' (P361) relationship to any season of the series"))
		return items, nil
	}

	partOf := make(map[string]int, len(seasons))
	for _, row := range rows {
		if v, ok := row.Lookup(episode.FieldSeason); ok {
			partOf[episode.ItemID(v)]++
		}
	}
	for _, s := range seasons {
		if s.declared == nil {
			continue
		}
		found := partOf[s.item]
		if found == *s.declared {
			items = append(items, diagnostic.Pass("The number of episodes that were 'part of' (P361) season %s matched the number of episodes expected from the 'number of episodes' (P1113) for the season: %d",
				s.item, found))
		} else {
			items = append(items, diagnostic.Fail("The number of episodes that were 'part of' (P361) season %s (%d) didn't match the number of episodes expected from the 'number of episodes' (P1113) for the season (%d)",
				s.item, found, *s.declared))
		}
	}

	for _, row := range rows {
		raw, _ := row.Lookup(episode.FieldEpisode)
		item := episode.ItemID(raw)
		if _, ok := row.Lookup("seriesStatement"); !ok {
			items = append(items, diagnostic.Fail("The episode %s was missing a 'series' (P179) statement linking it to %s", item, seriesItem))
			continue
		}
		if _, ok := row.Lookup(episode.FieldEpisodeNumber); !ok {
			items = append(items, diagnostic.Fail("The episode %s's 'series' (P179) statement linking it to %s lacked a 'series ordinal' (P1545) qualifier", item, seriesItem))
		}
	}
	return items, nil
}

func declaredSeasonCount(values []string) (*int, diagnostic.Item, error) {
	switch len(values) {
	case 0:
		return nil, diagnostic.Fail("No 'number of seasons' (P2437) property found"), nil
	case 1:
		n, err := episode.ParseInt("numberOfSeasons", values[0])
		if err != nil {
			return nil, diagnostic.Item{}, err
		}
		return &n, diagnostic.Pass("Found the 'number of seasons' (P2437): %s", values[0]), nil
	default:
		return nil, diagnostic.Fail("Multiple equally truthy statements for 'number of seasons' (P2437): %s", strings.Join(values, ", ")), nil
	}
}

func bindSeasons(rows []sparql.Binding) ([]season, error) {
	seasons := make([]season, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		raw, ok := row.Lookup(episode.FieldSeason)
		if !ok {
			return nil, &episode.MissingFieldError{Field: episode.FieldSeason}
		}
		s := season{item: episode.ItemID(raw)}
		if _, dup := seen[s.item]; dup {
			continue
		}
		seen[s.item] = struct{}{}
		if v, ok := row.Lookup(episode.FieldSeasonNumber); ok {
			n, err := episode.ParseInt(episode.FieldSeasonNumber, v)
			if err != nil {
				return nil, err
			}
			s.number = &n
		}
		if v, ok := row.Lookup(episode.FieldEpisodesInSeason); ok {
			n, err := episode.ParseInt(episode.FieldEpisodesInSeason, v)
			if err != nil {
				return nil, err
			}
			s.declared = &n
		}
		seasons = append(seasons, s)
	}
	return seasons, nil
}

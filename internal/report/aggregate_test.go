package report_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"episodecheck/internal/diagnostic"
	"episodecheck/internal/episode"
	"episodecheck/internal/report"
	"episodecheck/internal/testsupport"
)

const (
	countQuery   = "SELECT ?numberOfSeasons WHERE"
	seasonsQuery = "SELECT ?season ?seasonNumber ?episodesInSeason WHERE"
	partOfQuery  = "VALUES ?season"
)

func TestAggregateNoSeasonCount(t *testing.T) {
	q := (&testsupport.FakeQuerier{}).
		Select(countQuery).
		Select(seasonsQuery)

	items, err := report.Aggregate(context.Background(), q, "Q100")
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	want := []diagnostic.Item{
		diagnostic.Fail("No 'number of seasons' (P2437) property found"),
		diagnostic.Fail("No seasons were found at all - they should have a 'series' (P179) relationship to Q100"),
		diagnostic.Fail("Found no episodes with a 'part of' (P361) relationship to any season of the series"),
	}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("got %#v want %#v", items, want)
	}
	for _, call := range q.Calls() {
		if strings.Contains(call.Query, partOfQuery) {
			t.Fatalf("did not expect an episodes-from-seasons query with no seasons: %q", call.Query)
		}
	}
	if len(q.Calls()) != 2 {
		t.Fatalf("expected 2 queries, got %d", len(q.Calls()))
	}
}

func TestAggregateFullReport(t *testing.T) {
	q := (&testsupport.FakeQuerier{}).
		Select(countQuery, testsupport.Row("numberOfSeasons", "3")).
		Select(seasonsQuery,
			testsupport.Row(episode.FieldSeason, "Q50", episode.FieldSeasonNumber, "1", episode.FieldEpisodesInSeason, "2"),
			testsupport.Row(episode.FieldSeason, "Q51", episode.FieldEpisodesInSeason, "3"),
			testsupport.Row(episode.FieldSeason, "Q52", episode.FieldSeasonNumber, "3"),
		).
		Select(partOfQuery,
			testsupport.Row(episode.FieldEpisode, "Q1", episode.FieldSeason, "Q50", "seriesStatement", "S1", episode.FieldEpisodeNumber, "1"),
			testsupport.Row(episode.FieldEpisode, "Q2", episode.FieldSeason, "Q50", "seriesStatement", "S2"),
			testsupport.Row(episode.FieldEpisode, "Q3", episode.FieldSeason, "Q51"),
		)

	items, err := report.Aggregate(context.Background(), q, "Q100")
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	want := []diagnostic.Item{
		diagnostic.Pass("Found the 'number of seasons' (P2437): 3"),
		diagnostic.Pass("The number of seasons actually found matched the 'number of seasons' (P2437)"),
		diagnostic.Fail("No 'season ordinal' (P1545) qualifier was found for the 'series' (P179) statement for season Q51"),
		diagnostic.Fail("No 'number of episodes' (P1113) statement for season Q52"),
		diagnostic.Pass("The number of episodes that were 'part of' (P361) season Q50 matched the number of episodes expected from the 'number of episodes' (P1113) for the season: 2"),
		diagnostic.Fail("The number of episodes that were 'part of' (P361) season Q51 (1) didn't match the number of episodes expected from the 'number of episodes' (P1113) for the season (3)"),
		diagnostic.Fail("The episode Q2's 'series' (P179) statement linking it to Q100 lacked a 'series ordinal' (P1545) qualifier"),
		diagnostic.Fail("The episode Q3 was missing a 'series' (P179) statement linking it to Q100"),
	}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("got\n%#v\nwant\n%#v", items, want)
	}

	var partOf string
	for _, call := range q.Calls() {
		if strings.Contains(call.Query, partOfQuery) {
			partOf = call.Query
		}
	}
	if !strings.Contains(partOf, "wd:Q50 wd:Q51 wd:Q52") {
		t.Fatalf("expected season values in query, got %q", partOf)
	}
}

func TestAggregateConflictingSeasonCounts(t *testing.T) {
	q := (&testsupport.FakeQuerier{}).
		Select(countQuery, testsupport.Row("numberOfSeasons", "2"), testsupport.Row("numberOfSeasons", "3")).
		Select(seasonsQuery, testsupport.Row(episode.FieldSeason, "Q50", episode.FieldSeasonNumber, "1", episode.FieldEpisodesInSeason, "0")).
		Select(partOfQuery)

	items, err := report.Aggregate(context.Background(), q, "Q100")
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	want := []diagnostic.Item{
		diagnostic.Fail("Multiple equally truthy statements for 'number of seasons' (P2437): 2, 3"),
		diagnostic.Fail("Found no episodes with a 'part of' (P361) relationship to any season of the series"),
	}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("got %#v want %#v", items, want)
	}
}

func TestAggregateSeasonCountMismatch(t *testing.T) {
	q := (&testsupport.FakeQuerier{}).
		Select(countQuery, testsupport.Row("numberOfSeasons", "2")).
		Select(seasonsQuery, testsupport.Row(episode.FieldSeason, "Q50", episode.FieldSeasonNumber, "1", episode.FieldEpisodesInSeason, "1")).
		Select(partOfQuery, testsupport.Row(episode.FieldEpisode, "Q1", episode.FieldSeason, "Q50", "seriesStatement", "S1", episode.FieldEpisodeNumber, "1"))

	items, err := report.Aggregate(context.Background(), q, "Q100")
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %#v", items)
	}
	if want := "The number of seasons actually found (1) didn't match the 'number of seasons' (P2437) value 2"; items[1].Message != want || items[1].Passed {
		t.Fatalf("got %#v want failure %q", items[1], want)
	}
}

func TestAggregateInvalidSeasonCount(t *testing.T) {
	q := (&testsupport.FakeQuerier{}).
		Select(countQuery, testsupport.Row("numberOfSeasons", "many")).
		Select(seasonsQuery)

	_, err := report.Aggregate(context.Background(), q, "Q100")
	if !errors.Is(err, episode.ErrInvalidNumericField) {
		t.Fatalf("expected ErrInvalidNumericField, got %v", err)
	}
}

func TestAggregateQueryFailure(t *testing.T) {
	boom := errors.New("endpoint unavailable")
	q := (&testsupport.FakeQuerier{}).
		Fail(countQuery, boom).
		Select(seasonsQuery)

	if _, err := report.Aggregate(context.Background(), q, "Q100"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped query error, got %v", err)
	}
}

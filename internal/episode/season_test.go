package episode_test

import (
	"reflect"
	"testing"

	"episodecheck/internal/episode"
	"episodecheck/internal/testsupport"
)

func TestGroupSeasonsPartition(t *testing.T) {
	season := func(item, number string) []string {
		return []string{episode.FieldSeason, item, episode.FieldSeasonNumber, number, episode.FieldSeasonLabel, "Season " + number}
	}
	eps := testsupport.Episodes(t,
		testsupport.EpisodeRow("Q1", "", "Q2", season("Q50", "1")...),
		testsupport.EpisodeRow("Q2", "Q1", "Q3", season("Q50", "1")...),
		testsupport.EpisodeRow("Q3", "Q2", "Q4", season("Q51", "2")...),
		testsupport.EpisodeRow("Q4", "Q3", "Q5", season("Q51", "2")...),
		testsupport.EpisodeRow("Q5", "Q4", "", season("Q50", "1")...),
	)
	groups := episode.GroupSeasons(eps)
	if len(groups) != 3 {
		t.Fatalf("expected 3 contiguous groups, got %d", len(groups))
	}
	var flattened []string
	for _, group := range groups {
		flattened = append(flattened, testsupport.Items(group.Episodes)...)
	}
	if want := testsupport.Items(eps); !reflect.DeepEqual(flattened, want) {
		t.Fatalf("got %v want %v", flattened, want)
	}
	if got := groups[1].Key.String(); got != "Q51" {
		t.Fatalf("got %q want %q", got, "Q51")
	}
	if !groups[0].Key.Equal(groups[2].Key) {
		t.Fatal("expected equal keys for the same season")
	}
}

func TestGroupSeasonsFlatSeries(t *testing.T) {
	eps := testsupport.Episodes(t,
		testsupport.EpisodeRow("Q1", "", "Q2"),
		testsupport.EpisodeRow("Q2", "Q1", ""),
	)
	groups := episode.GroupSeasons(eps)
	if len(groups) != 1 || len(groups[0].Episodes) != 2 {
		t.Fatalf("expected one implicit season, got %#v", groups)
	}
	if got := groups[0].Key.String(); got != "(implicit season 1)" {
		t.Fatalf("got %q want %q", got, "(implicit season 1)")
	}
	if groups := episode.GroupSeasons(nil); len(groups) != 0 {
		t.Fatalf("expected no groups for no episodes, got %d", len(groups))
	}
}

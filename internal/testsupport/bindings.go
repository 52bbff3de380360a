package testsupport

import (
	"testing"

	"episodecheck/internal/episode"
	"episodecheck/internal/sparql"
)

var uriFields = map[string]bool{
	episode.FieldEpisode:         true,
	episode.FieldSeries:          true,
	episode.FieldSeason:          true,
	episode.FieldPreviousEpisode: true,
	episode.FieldNextEpisode:     true,
	"seriesStatement":            true,
}

// Row builds a result row from alternating key/value pairs. Item-valued keys
// are expanded to full entity URIs the way the query service returns them;
// an empty value leaves the key unbound.
func Row(pairs ...string) sparql.Binding {
	if len(pairs)%2 != 0 {
		panic("testsupport.Row: odd number of arguments")
	}
	row := make(sparql.Binding, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, value := pairs[i], pairs[i+1]
		if value == "" {
			continue
		}
		if uriFields[key] {
			row[key] = sparql.Value{Type: "uri", Value: episode.ItemURL(value)}
			continue
		}
		row[key] = sparql.Value{Type: "literal", Value: value}
	}
	return row
}

// EpisodeRow builds a row for an episode of series Q100 with the given
// follows / followed-by items (empty for none) plus any extra pairs.
func EpisodeRow(item, previous, next string, extra ...string) sparql.Binding {
	pairs := []string{
		episode.FieldEpisode, item,
		episode.FieldEpisodeLabel, "Episode " + item,
		episode.FieldSeries, "Q100",
		episode.FieldSeriesLabel, "Test Series",
		episode.FieldPreviousEpisode, previous,
		episode.FieldNextEpisode, next,
	}
	return Row(append(pairs, extra...)...)
}

// Episodes binds rows, failing the test on error.
func Episodes(t testing.TB, rows ...sparql.Binding) []*episode.Episode {
	t.Helper()
	eps, err := episode.BindAll(rows)
	if err != nil {
		t.Fatalf("BindAll: %v", err)
	}
	return eps
}

// Items returns the identifiers of episodes in order.
func Items(episodes []*episode.Episode) []string {
	out := make([]string, 0, len(episodes))
	for _, ep := range episodes {
		out = append(out, ep.Item)
	}
	return out
}

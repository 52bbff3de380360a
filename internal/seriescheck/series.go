package seriescheck

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"episodecheck/internal/episode"
	"episodecheck/internal/services"
	"episodecheck/internal/sparql"
)

// Series is one television series known to the query service.
type Series struct {
	Item  string `json:"item"`
	Label string `json:"label"`
}

// SearchHit is a series whose name matched a search. Languages lists the
// label languages carrying Name.
type SearchHit struct {
	Item      string   `json:"item"`
	Name      string   `json:"name"`
	Languages []string `json:"languages"`
}

// AllSeries lists every television series sorted by label. Series without
// a label in the configured language come back labelled with their bare
// identifier and are left out.
func (c *Checker) AllSeries(ctx context.Context) ([]Series, error) {
	res, err := c.list.Run(ctx, sparql.AllTVSeries(c.lang), "Listing all television series")
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, component, "list series", "", err)
	}
	out := make([]Series, 0, len(res.Bindings))
	for _, row := range res.Bindings {
		uri, ok := row.Lookup(episode.FieldSeries)
		if !ok {
			continue
		}
		label, _ := row.Lookup(episode.FieldSeriesLabel)
		if label == "" || ValidItem(label) {
			continue
		}
		out = append(out, Series{Item: episode.ItemID(uri), Label: label})
	}

	collator := collate.New(c.collationTag(), collate.IgnoreCase)
	slices.SortStableFunc(out, func(a, b Series) int {
		return collator.CompareString(a.Label, b.Label)
	})
	return out, nil
}

// Search finds television series with a label in any language containing
// text, case-insensitively.
func (c *Checker) Search(ctx context.Context, text string) ([]SearchHit, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, services.Wrap(services.ErrValidation, component, "search", "search text must not be empty", nil)
	}
	res, err := c.list.Run(ctx, sparql.NameSearch(text), fmt.Sprintf("Searching for television series named like %q", text))
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, component, "search", text, err)
	}
	out := make([]SearchHit, 0, len(res.Bindings))
	for _, row := range res.Bindings {
		uri, ok := row.Lookup(episode.FieldSeries)
		if !ok {
			continue
		}
		name, _ := row.Lookup("nameWithoutLang")
		hit := SearchHit{Item: episode.ItemID(uri), Name: name}
		if langs, ok := row.Lookup("langs"); ok && langs != "" {
			hit.Languages = strings.Split(langs, ",")
		}
		out = append(out, hit)
	}
	return out, nil
}

func (c *Checker) collationTag() language.Tag {
	tag, err := language.Parse(c.lang)
	if err != nil {
		return language.English
	}
	return tag
}

// Random picks one episode of result uniformly. It returns false when the
// series has no episodes.
func Random(result *Result, rng *rand.Rand) (*episode.Episode, bool) {
	if result == nil || len(result.Episodes) == 0 {
		return nil, false
	}
	var i int
	if rng != nil {
		i = rng.IntN(len(result.Episodes))
	} else {
		i = rand.IntN(len(result.Episodes))
	}
	return result.Episodes[i], true
}

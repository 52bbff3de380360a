package episode

import (
	"strconv"
	"strings"

	"episodecheck/internal/sparql"
)

// EntityPrefix is the namespace Wikidata uses for item URIs.
const EntityPrefix = "http://www.wikidata.org/entity/"

// Row field names produced by the episode queries.
const (
	FieldEpisodeLabel     = "episodeLabel"
	FieldEpisode          = "episode"
	FieldSeries           = "series"
	FieldSeriesLabel      = "seriesLabel"
	FieldSeason           = "season"
	FieldSeasonNumber     = "seasonNumber"
	FieldSeasonLabel      = "seasonLabel"
	FieldEpisodeNumber    = "episodeNumber"
	FieldNumberInSeason   = "numberInSeason"
	FieldProductionCode   = "productionCode"
	FieldPreviousEpisode  = "previousEpisode"
	FieldNextEpisode      = "nextEpisode"
	FieldEpisodesInSeason = "episodesInSeason"
	FieldTotalSeasons     = "totalSeasons"
)

// Episode is one installment of a series as described by a single row.
// Optional attributes are nil when the row left them unbound.
type Episode struct {
	Item       string `json:"item"`
	Name       string `json:"name"`
	SeriesItem string `json:"series_item"`
	SeriesName string `json:"series_name"`

	SeasonItem     *string `json:"season_item,omitempty"`
	SeasonNumber   *int    `json:"season_number,omitempty"`
	SeasonLabel    *string `json:"season_label,omitempty"`
	EpisodeNumber  *int    `json:"episode_number,omitempty"`
	NumberInSeason *int    `json:"number_in_season,omitempty"`
	ProductionCode *string `json:"production_code,omitempty"`

	PreviousItem *string `json:"previous_item,omitempty"`
	NextItem     *string `json:"next_item,omitempty"`

	EpisodesInSeason *int `json:"episodes_in_season,omitempty"`
	TotalSeasons     *int `json:"total_seasons,omitempty"`
}

// ItemID strips the entity namespace from an item URI.
func ItemID(url string) string {
	return strings.TrimPrefix(url, EntityPrefix)
}

// ItemURL is the inverse of ItemID for bare identifiers.
func ItemURL(id string) string {
	return EntityPrefix + id
}

// SameItem compares episodes by identifier only. Two rows describing the same
// item are the same episode even when their other attributes differ.
func SameItem(a, b *Episode) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Item == b.Item
}

// LabelWithItem renders "Name (Q123)", or just the identifier when the item
// has no label of its own.
func (e *Episode) LabelWithItem() string {
	if e.Name == "" || e.Name == e.Item {
		return e.Item
	}
	return e.Name + " (" + e.Item + ")"
}

// Bind converts one result row into an Episode.
func Bind(b sparql.Binding) (*Episode, error) {
	var (
		ep  Episode
		err error
	)
	if ep.Name, err = required(b, FieldEpisodeLabel); err != nil {
		return nil, err
	}
	if ep.Item, err = required(b, FieldEpisode); err != nil {
		return nil, err
	}
	ep.Item = ItemID(ep.Item)
	if ep.SeriesItem, err = required(b, FieldSeries); err != nil {
		return nil, err
	}
	ep.SeriesItem = ItemID(ep.SeriesItem)
	if ep.SeriesName, err = required(b, FieldSeriesLabel); err != nil {
		return nil, err
	}

	ep.SeasonItem = optionalItem(b, FieldSeason)
	if ep.SeasonItem != nil {
		if ep.SeasonNumber, err = optionalInt(b, FieldSeasonNumber); err != nil {
			return nil, err
		}
		ep.SeasonLabel = optionalString(b, FieldSeasonLabel)
	} else {
		one := 1
		ep.SeasonNumber = &one
	}

	if ep.EpisodeNumber, err = optionalInt(b, FieldEpisodeNumber); err != nil {
		return nil, err
	}
	if ep.NumberInSeason, err = optionalInt(b, FieldNumberInSeason); err != nil {
		return nil, err
	}
	ep.ProductionCode = optionalString(b, FieldProductionCode)
	ep.PreviousItem = optionalItem(b, FieldPreviousEpisode)
	ep.NextItem = optionalItem(b, FieldNextEpisode)
	if ep.EpisodesInSeason, err = optionalInt(b, FieldEpisodesInSeason); err != nil {
		return nil, err
	}
	if ep.TotalSeasons, err = optionalInt(b, FieldTotalSeasons); err != nil {
		return nil, err
	}
	return &ep, nil
}

// BindAll binds every row, stopping at the first malformed one.
func BindAll(rows []sparql.Binding) ([]*Episode, error) {
	episodes := make([]*Episode, 0, len(rows))
	for _, row := range rows {
		ep, err := Bind(row)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, ep)
	}
	return episodes, nil
}

func required(b sparql.Binding, key string) (string, error) {
	v, ok := b.Lookup(key)
	if !ok {
		return "", &MissingFieldError{Field: key}
	}
	return v, nil
}

func optionalString(b sparql.Binding, key string) *string {
	v, ok := b.Lookup(key)
	if !ok {
		return nil
	}
	return &v
}

func optionalItem(b sparql.Binding, key string) *string {
	v, ok := b.Lookup(key)
	if !ok {
		return nil
	}
	id := ItemID(v)
	return &id
}

// ParseInt parses a numeric literal, reporting failures against field.
func ParseInt(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &InvalidNumericFieldError{Field: field, Value: raw}
	}
	return n, nil
}

func optionalInt(b sparql.Binding, key string) (*int, error) {
	v, ok := b.Lookup(key)
	if !ok {
		return nil, nil
	}
	n, err := ParseInt(key, v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

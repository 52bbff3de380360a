package api

import (
	"episodecheck/internal/episode"
	"episodecheck/internal/seriescheck"
)

// FromResult converts a check result to its API representation.
func FromResult(result *seriescheck.Result) SeriesReport {
	if result == nil {
		return SeriesReport{}
	}
	dto := SeriesReport{
		SeriesItem:    result.SeriesItem,
		SeriesName:    result.SeriesName,
		Ordered:       result.Ordered,
		NoEpisodes:    result.NoEpisodes,
		EpisodeCount:  len(result.Episodes),
		DuplicateRows: result.DuplicateRows,
		Failed:        result.Failures(),
		EpisodesQuery: result.EpisodesQuery,
		Report:        make([]ReportItem, 0, len(result.Report)),
		Seasons:       make([]Season, 0, len(result.Seasons)),
		Queries:       make([]Query, 0, len(result.Queries)),
	}
	dto.Passed = len(result.Report) - dto.Failed
	for _, item := range result.Report {
		dto.Report = append(dto.Report, ReportItem{Passed: item.Passed, Message: item.Message})
	}
	for _, group := range result.Seasons {
		dto.Seasons = append(dto.Seasons, FromSeasonGroup(group))
	}
	for _, q := range result.Queries {
		dto.Queries = append(dto.Queries, Query{Query: q.Query, Reason: q.Reason})
	}
	return dto
}

// FromSeasonGroup converts one season run.
func FromSeasonGroup(group episode.SeasonGroup) Season {
	season := Season{
		Label:    group.Key.String(),
		Number:   group.Key.Number,
		Episodes: make([]Episode, 0, len(group.Episodes)),
	}
	if group.Key.Item != nil {
		season.Item = *group.Key.Item
	}
	if group.Key.Label != nil {
		season.Label = *group.Key.Label
	}
	for _, ep := range group.Episodes {
		season.Episodes = append(season.Episodes, FromEpisode(ep))
	}
	return season
}

// FromEpisode converts one episode.
func FromEpisode(ep *episode.Episode) Episode {
	if ep == nil {
		return Episode{}
	}
	dto := Episode{
		Item:           ep.Item,
		Name:           ep.Name,
		SeasonNumber:   ep.SeasonNumber,
		EpisodeNumber:  ep.EpisodeNumber,
		NumberInSeason: ep.NumberInSeason,
		Previous:       ep.PreviousItem,
		Next:           ep.NextItem,
	}
	if ep.SeasonItem != nil {
		dto.SeasonItem = *ep.SeasonItem
	}
	if ep.ProductionCode != nil {
		dto.ProductionCode = *ep.ProductionCode
	}
	return dto
}

// FromSeries converts a series listing.
func FromSeries(series []seriescheck.Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		out = append(out, Series{Item: s.Item, Label: s.Label})
	}
	return out
}

// FromSearchHits converts name search results.
func FromSearchHits(hits []seriescheck.SearchHit) []SearchHit {
	out := make([]SearchHit, 0, len(hits))
	for _, h := range hits {
		langs := h.Languages
		if langs == nil {
			langs = []string{}
		}
		out = append(out, SearchHit{Item: h.Item, Name: h.Name, Languages: langs})
	}
	return out
}

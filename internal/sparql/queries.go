package sparql

import "strings"

// Wikidata properties and classes referenced by the templates:
//
//	P31 instance of, P279 subclass of, P179 series, P361 part of,
//	P1545 series ordinal, P155 follows, P156 followed by, P1113 number of
//	episodes, P2437 number of seasons, P2364 production code,
//	Q5398426 television series, Q21191270 television series episode,
//	Q3464665 television series season.

const multiSeasonEpisodesTemplate = `
SELECT ?episodeLabel ?episode ?series ?seriesLabel ?season ?numberInSeason
       ?seasonNumber ?seasonLabel ?episodeNumber ?productionCode
       ?previousEpisode ?nextEpisode ?episodesInSeason ?totalSeasons WHERE {
  BIND(wd:{item} as ?series) .
  ?episode wdt:P361 ?season .
  ?episode wdt:P31/wdt:P279* wd:Q21191270 .
  ?episode p:P179 ?episodePartOfSeriesStatement .
  ?episodePartOfSeriesStatement ps:P179 ?series .
  ?season wdt:P31 wd:Q3464665 .
  ?season p:P179 ?seriesStatement .
  ?seriesStatement ps:P179 ?series .
  OPTIONAL {
    ?episode p:P179 ?episodeSeriesToSeason .
    ?episodeSeriesToSeason ps:P179 ?season .
    ?episodeSeriesToSeason pq:P1545 ?numberInSeason
  }
  OPTIONAL { ?seriesStatement pq:P1545 ?seasonNumber . }
  OPTIONAL { ?episodePartOfSeriesStatement pq:P1545 ?episodeNumber }
  OPTIONAL { ?episode wdt:P2364 ?productionCode }
  OPTIONAL { ?episode wdt:P155 ?previousEpisode . }
  OPTIONAL { ?episode wdt:P156 ?nextEpisode . }
  OPTIONAL { ?series wdt:P2437 ?totalSeasons }
  OPTIONAL { ?season wdt:P1113 ?episodesInSeason }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "{lang}" . }
}
ORDER BY xsd:integer(?seasonNumber) xsd:integer(?episodeNumber) ?productionCode`

const singleSeasonEpisodesTemplate = `
SELECT ?episodeLabel ?episode ?series ?seriesLabel ?episodeNumber
       ?productionCode ?previousEpisode ?nextEpisode ?episodesInSeason
       ?totalSeasons WHERE {
  BIND(wd:{item} as ?series) .
  ?episode p:P179 ?episodeSeriesStatement .
  ?episode wdt:P31/wdt:P279* wd:Q21191270 .
  ?episodeSeriesStatement ps:P179 ?series .
  OPTIONAL { ?episodeSeriesStatement pq:P1545 ?episodeNumber }
  OPTIONAL { ?episode wdt:P2364 ?productionCode }
  OPTIONAL { ?episode wdt:P155 ?previousEpisode . }
  OPTIONAL { ?episode wdt:P156 ?nextEpisode . }
  OPTIONAL { ?series wdt:P1113 ?episodesInSeason }
  OPTIONAL { ?series wdt:P2437 ?totalSeasons }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "{lang}" . }
}
ORDER BY xsd:integer(?episodeNumber) ?productionCode`

const numberOfSeasonsTemplate = `
SELECT ?numberOfSeasons WHERE {
  wd:{item} wdt:P2437 ?numberOfSeasons
}`

const seasonsWithEpisodeTotalsTemplate = `
SELECT ?season ?seasonNumber ?episodesInSeason WHERE {
  ?season wdt:P31 wd:Q3464665 .
  ?season p:P179 ?seriesStatement .
  ?seriesStatement ps:P179 wd:{item}
  OPTIONAL { ?seriesStatement pq:P1545 ?seasonNumber . }
  OPTIONAL { ?season wdt:P1113 ?episodesInSeason }
}
ORDER BY xsd:integer(?seasonNumber)`

const episodesFromSeasonsTemplate = `
SELECT ?episode ?season ?seasonNumber ?episodeNumber ?seriesStatement WHERE {
  ?episode wdt:P361 ?season
  OPTIONAL {
    ?episode p:P179 ?seriesStatement .
    ?seriesStatement ps:P179 wd:{item}
    OPTIONAL { ?seriesStatement pq:P1545 ?episodeNumber }
  }
  VALUES ?season { {seasons} }
}
ORDER BY ?seasonNumber ?episodeNumber`

const isTVSeriesTemplate = `ASK WHERE { wd:{item} wdt:P31/wdt:P279* wd:Q5398426 }`

const seriesLabelTemplate = `
SELECT ?seriesLabel WHERE {
  BIND(wd:{item} as ?series)
  SERVICE wikibase:label { bd:serviceParam wikibase:language "[AUTO_LANGUAGE],{lang}". }
}`

const allTVSeriesTemplate = `
SELECT DISTINCT ?series ?seriesLabel WHERE {
  ?series wdt:P31/wdt:P279* wd:Q5398426
  SERVICE wikibase:label { bd:serviceParam wikibase:language "{lang}" }
}`

const nameSearchTemplate = `
SELECT DISTINCT ?series ?nameWithoutLang (group_concat(?lang;separator=",") as ?langs) WHERE {
  ?series wdt:P31/wdt:P279* wd:Q5398426 .
  ?series rdfs:label ?name .
  FILTER regex(?name, "{pattern}", "i") .
  BIND(LANG(?name) AS ?lang)
  BIND(STR(?name) AS ?nameWithoutLang)
}
GROUP BY ?series ?nameWithoutLang
ORDER BY ?nameWithoutLang`

func render(template string, pairs ...string) string {
	return strings.NewReplacer(pairs...).Replace(template)
}

// MultiSeasonEpisodes selects every episode of series reachable through a
// season ('part of' a season that is itself in the series).
func MultiSeasonEpisodes(series, lang string) string {
	return render(multiSeasonEpisodesTemplate, "{item}", series, "{lang}", lang)
}

// SingleSeasonEpisodes selects every episode linked directly to series, for
// series modelled without seasons.
func SingleSeasonEpisodes(series, lang string) string {
	return render(singleSeasonEpisodesTemplate, "{item}", series, "{lang}", lang)
}

// NumberOfSeasons selects the declared season count of series.
func NumberOfSeasons(series string) string {
	return render(numberOfSeasonsTemplate, "{item}", series)
}

// SeasonsWithEpisodeTotals selects the seasons of series with their ordinal
// and declared episode count.
func SeasonsWithEpisodeTotals(series string) string {
	return render(seasonsWithEpisodeTotalsTemplate, "{item}", series)
}

// EpisodesFromSeasons selects episodes that are 'part of' any of seasons,
// along with their series statement and its ordinal when present.
func EpisodesFromSeasons(series string, seasons []string) string {
	values := make([]string, 0, len(seasons))
	for _, season := range seasons {
		values = append(values, "wd:"+season)
	}
	return render(episodesFromSeasonsTemplate, "{item}", series, "{seasons}", strings.Join(values, " "))
}

// IsTVSeries asks whether item is an instance of (a subclass of) television
// series.
func IsTVSeries(item string) string {
	return render(isTVSeriesTemplate, "{item}", item)
}

// SeriesLabel selects the display label of item.
func SeriesLabel(item, lang string) string {
	return render(seriesLabelTemplate, "{item}", item, "{lang}", lang)
}

// AllTVSeries selects every television series with its label.
func AllTVSeries(lang string) string {
	return render(allTVSeriesTemplate, "{lang}", lang)
}

// NameSearch selects television series whose label in any language contains
// substring, case-insensitively.
func NameSearch(substring string) string {
	return render(nameSearchTemplate, "{pattern}", QuoteRegex(substring))
}

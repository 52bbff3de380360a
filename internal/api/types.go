package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// SeriesReport is the full outcome of a series check.
type SeriesReport struct {
	SeriesItem    string       `json:"seriesItem"`
	SeriesName    string       `json:"seriesName"`
	Ordered       bool         `json:"ordered"`
	NoEpisodes    bool         `json:"noEpisodes"`
	EpisodeCount  int          `json:"episodeCount"`
	DuplicateRows int          `json:"duplicateRows"`
	Passed        int          `json:"passed"`
	Failed        int          `json:"failed"`
	Report        []ReportItem `json:"report"`
	Seasons       []Season     `json:"seasons"`
	EpisodesQuery string       `json:"episodesQuery,omitempty"`
	Queries       []Query      `json:"queries"`
}

// ReportItem is one pass or fail diagnostic.
type ReportItem struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// Season is a contiguous run of episodes sharing a season.
type Season struct {
	Label    string    `json:"label"`
	Item     string    `json:"item,omitempty"`
	Number   *int      `json:"number,omitempty"`
	Episodes []Episode `json:"episodes"`
}

// Episode is one episode in chain order.
type Episode struct {
	Item           string  `json:"item"`
	Name           string  `json:"name"`
	SeasonItem     string  `json:"seasonItem,omitempty"`
	SeasonNumber   *int    `json:"seasonNumber,omitempty"`
	EpisodeNumber  *int    `json:"episodeNumber,omitempty"`
	NumberInSeason *int    `json:"numberInSeason,omitempty"`
	ProductionCode string  `json:"productionCode,omitempty"`
	Previous       *string `json:"previous,omitempty"`
	Next           *string `json:"next,omitempty"`
}

// Query is one issued query with its reason.
type Query struct {
	Query  string `json:"query"`
	Reason string `json:"reason"`
}

// RandomEpisodeResponse wraps a randomly picked episode.
type RandomEpisodeResponse struct {
	SeriesItem string  `json:"seriesItem"`
	SeriesName string  `json:"seriesName"`
	Episode    Episode `json:"episode"`
}

// Series is one television series in a listing.
type Series struct {
	Item  string `json:"item"`
	Label string `json:"label"`
}

// SeriesListResponse wraps a series listing.
type SeriesListResponse struct {
	Series []Series `json:"series"`
}

// SearchHit is one name search match.
type SearchHit struct {
	Item      string   `json:"item"`
	Name      string   `json:"name"`
	Languages []string `json:"languages"`
}

// SearchResponse wraps name search results.
type SearchResponse struct {
	Query string      `json:"query"`
	Hits  []SearchHit `json:"hits"`
}

// Status describes the running server.
type Status struct {
	StartedAt     string `json:"startedAt"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	Endpoint      string `json:"endpoint"`
	CacheBackend  string `json:"cacheBackend"`
	LabelLanguage string `json:"labelLanguage"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

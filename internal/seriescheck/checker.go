package seriescheck

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"episodecheck/internal/diagnostic"
	"episodecheck/internal/episode"
	"episodecheck/internal/logging"
	"episodecheck/internal/report"
	"episodecheck/internal/services"
	"episodecheck/internal/sparql"
)

const component = "seriescheck"

var itemPattern = regexp.MustCompile(`^Q\d+$`)

// ValidItem reports whether item looks like a Wikidata item identifier.
func ValidItem(item string) bool {
	return itemPattern.MatchString(item)
}

// Result is the outcome of one series check. Episodes is in chain order when
// Ordered is true and in query order otherwise. NoEpisodes is set when neither
// episode query returned a row; Report then holds the aggregate diagnostics.
type Result struct {
	SeriesItem    string                `json:"series_item"`
	SeriesName    string                `json:"series_name"`
	Episodes      []*episode.Episode    `json:"episodes"`
	Ordered       bool                  `json:"ordered"`
	Seasons       []episode.SeasonGroup `json:"-"`
	Report        []diagnostic.Item     `json:"report"`
	NoEpisodes    bool                  `json:"no_episodes"`
	EpisodesQuery string                `json:"episodes_query,omitempty"`
	DuplicateRows int                   `json:"duplicate_rows"`
	Queries       []sparql.Issued       `json:"queries"`
}

// Failures counts the failed report items.
func (r *Result) Failures() int {
	if r == nil {
		return 0
	}
	return diagnostic.Failures(r.Report)
}

// Checker runs series checks against a Querier. A Checker holds no per-run
// state and is safe for concurrent use.
type Checker struct {
	q      sparql.Querier
	list   sparql.Querier
	lang   string
	logger *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLanguage sets the label language used by the queries.
func WithLanguage(lang string) Option {
	return func(c *Checker) {
		if lang = strings.TrimSpace(lang); lang != "" {
			c.lang = lang
		}
	}
}

// WithSeriesListQuerier uses q for the series list and search queries, which
// are typically cached far longer than episode data.
func WithSeriesListQuerier(q sparql.Querier) Option {
	return func(c *Checker) {
		if q != nil {
			c.list = q
		}
	}
}

// New returns a Checker issuing its queries through q.
func New(q sparql.Querier, opts ...Option) *Checker {
	c := &Checker{q: q, list: q, lang: "en", logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.NewComponentLogger(c.logger, component)
	return c
}

// Check validates the series identified by item.
func (c *Checker) Check(ctx context.Context, item string) (*Result, error) {
	item = strings.TrimSpace(item)
	if !ValidItem(item) {
		return nil, services.Wrap(services.ErrValidation, component, "check", fmt.Sprintf("%q", item), ErrInvalidItem)
	}
	ctx = services.WithSeriesItem(ctx, item)
	logger := logging.WithContext(ctx, c.logger)
	rec := sparql.NewRecorder(c.q)

	isSeries, err := c.isSeries(ctx, rec, item)
	if err != nil {
		return nil, err
	}
	if !isSeries {
		return nil, services.Wrap(services.ErrNotFound, component, "check", "", &NotSeriesError{Item: item})
	}

	episodes, query, err := c.fetchEpisodes(ctx, rec, item)
	if err != nil {
		return nil, err
	}
	result := &Result{SeriesItem: item, SeriesName: item, EpisodesQuery: query}

	if len(episodes) == 0 {
		items, err := report.Aggregate(ctx, rec, item)
		if err != nil {
			return nil, services.Wrap(services.ErrUpstream, component, "aggregate report", item, err)
		}
		name, err := c.seriesLabel(ctx, rec, item)
		if err != nil {
			return nil, err
		}
		result.SeriesName = name
		result.NoEpisodes = true
		result.Report = items
		result.Queries = rec.Issued()
		logger.Info("series has no episodes",
			logging.String("series_name", name),
			logging.Int("failures", result.Failures()))
		return result, nil
	}

	graph, unresolved := episode.NewGraph(episodes)
	if graph.Dropped() > 0 {
		logger.Debug("dropped duplicate episode rows", logging.Int("dropped", graph.Dropped()))
	}
	ordering, err := episode.Order(graph)
	if err != nil {
		return nil, fmt.Errorf("order episodes of %s: %w", item, err)
	}
	seasons := episode.GroupSeasons(ordering.Episodes)

	items := make([]diagnostic.Item, 0, len(unresolved)+len(ordering.Problems)+len(seasons)+1)
	items = append(items, unresolved...)
	items = append(items, ordering.Problems...)
	items = append(items, report.Structural(seasons, ordering.Episodes)...)

	result.SeriesName = ordering.Episodes[0].SeriesName
	result.Episodes = ordering.Episodes
	result.Ordered = ordering.Ordered
	result.Seasons = seasons
	result.Report = items
	result.DuplicateRows = graph.Dropped()
	result.Queries = rec.Issued()

	logger.Info("series checked",
		logging.String("series_name", result.SeriesName),
		logging.Int("episodes", len(result.Episodes)),
		logging.Int("seasons", len(seasons)),
		logging.Bool("ordered", result.Ordered),
		logging.Int("failures", result.Failures()))
	return result, nil
}

func (c *Checker) isSeries(ctx context.Context, q sparql.Querier, item string) (bool, error) {
	res, err := q.Run(ctx, sparql.IsTVSeries(item), fmt.Sprintf("Checking that %s is a television series", item))
	if err != nil {
		return false, services.Wrap(services.ErrUpstream, component, "series check", item, err)
	}
	ok, err := res.Ask()
	if err != nil {
		return false, services.Wrap(services.ErrUpstream, component, "series check", item, err)
	}
	return ok, nil
}

// fetchEpisodes tries the season-based query first and falls back to episodes
// linked directly to the series. It returns the text of the query whose rows
// were used, or of the last query tried when both came back empty.
func (c *Checker) fetchEpisodes(ctx context.Context, q sparql.Querier, item string) ([]*episode.Episode, string, error) {
	attempts := []struct {
		query  string
		reason string
	}{
		{sparql.MultiSeasonEpisodes(item, c.lang), fmt.Sprintf("Finding the episodes of %s through its season items", item)},
		{sparql.SingleSeasonEpisodes(item, c.lang), fmt.Sprintf("Finding the episodes linked directly to %s", item)},
	}
	var query string
	for _, attempt := range attempts {
		query = sparql.Normalize(attempt.query)
		res, err := q.Run(ctx, attempt.query, attempt.reason)
		if err != nil {
			return nil, "", services.Wrap(services.ErrUpstream, component, "fetch episodes", item, err)
		}
		episodes, err := episode.BindAll(res.Bindings)
		if err != nil {
			return nil, "", fmt.Errorf("bind episodes of %s: %w", item, err)
		}
		if len(episodes) > 0 {
			return episodes, query, nil
		}
	}
	return nil, query, nil
}

func (c *Checker) seriesLabel(ctx context.Context, q sparql.Querier, item string) (string, error) {
	res, err := q.Run(ctx, sparql.SeriesLabel(item, c.lang), fmt.Sprintf("Finding the name of %s", item))
	if err != nil {
		return "", services.Wrap(services.ErrUpstream, component, "series label", item, err)
	}
	if labels := res.Values(episode.FieldSeriesLabel); len(labels) > 0 && labels[0] != "" {
		return labels[0], nil
	}
	return item, nil
}

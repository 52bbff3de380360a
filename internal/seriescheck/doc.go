// Package seriescheck runs a full consistency check of one television series.
//
// A Checker issues the episode queries in order of preference (episodes
// reached through season items, then episodes linked straight to the series),
// builds the episode graph, validates and orders the chain, groups seasons and
// assembles the diagnostic report. When neither query finds any episode it
// falls back to the aggregate report so the operator still learns which
// statements are missing.
//
// Every query of a run goes through a sparql.Recorder so callers can show
// exactly what was asked and why.
package seriescheck

// Package report produces the ordered pass/fail diagnostics for a series.
//
// Structural checks run over the season groups of episodes the main episode
// queries returned. Aggregate checks issue their own queries and are used
// when the main queries find nothing, since the data may then be modelled in
// a way only season-level statements reveal.
package report

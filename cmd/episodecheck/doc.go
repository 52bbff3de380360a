// Command episodecheck checks the episode data of television series on
// Wikidata.
//
// It validates that the 'follows' and 'followed by' links of a series'
// episodes form one chain, compares the episodes found per season with the
// declared 'number of episodes', and reports every problem as a pass or fail
// line. The serve subcommand exposes the same checks as a JSON API.
package main

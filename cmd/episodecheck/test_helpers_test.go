package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"episodecheck/internal/episode"
	"episodecheck/internal/sparql"
	"episodecheck/internal/testsupport"
)

// fakeEndpoint is a SPARQL endpoint answering canned results matched by
// substring of the posted query.
type fakeEndpoint struct {
	mu        sync.Mutex
	responses []endpointResponse
	hits      int
}

type endpointResponse struct {
	contains string
	result   sparql.Result
}

func (f *fakeEndpoint) selectRows(fragment string, rows ...sparql.Binding) *fakeEndpoint {
	if rows == nil {
		rows = []sparql.Binding{}
	}
	f.responses = append(f.responses, endpointResponse{contains: fragment, result: sparql.Result{Bindings: rows}})
	return f
}

func (f *fakeEndpoint) ask(fragment string, value bool) *fakeEndpoint {
	f.responses = append(f.responses, endpointResponse{contains: fragment, result: sparql.Result{Boolean: &value}})
	return f
}

func (f *fakeEndpoint) Hits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}

func (f *fakeEndpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits++
	f.mu.Unlock()
	query := sparql.Normalize(r.FormValue("query"))
	for _, resp := range f.responses {
		if strings.Contains(query, resp.contains) {
			w.Header().Set("Content-Type", "application/sparql-results+json")
			_ = json.NewEncoder(w).Encode(resp.result)
			return
		}
	}
	http.Error(w, "unexpected query", http.StatusBadRequest)
}

// seriesEndpoint serves one two-season series, Q100, whose second season
// declares more episodes than it has.
func seriesEndpoint() *fakeEndpoint {
	return (&fakeEndpoint{}).
		ask("ASK WHERE", true).
		selectRows("?numberInSeason",
			testsupport.EpisodeRow("Q1", "", "Q2", episode.FieldSeason, "Q50", episode.FieldSeasonNumber, "1",
				episode.FieldEpisodeNumber, "1", episode.FieldNumberInSeason, "1", episode.FieldEpisodesInSeason, "2"),
			testsupport.EpisodeRow("Q2", "Q1", "Q3", episode.FieldSeason, "Q50", episode.FieldSeasonNumber, "1",
				episode.FieldEpisodeNumber, "2", episode.FieldNumberInSeason, "2", episode.FieldEpisodesInSeason, "2"),
			testsupport.EpisodeRow("Q3", "Q2", "", episode.FieldSeason, "Q51", episode.FieldSeasonNumber, "2",
				episode.FieldEpisodeNumber, "3", episode.FieldNumberInSeason, "1", episode.FieldEpisodesInSeason, "4"),
		).
		selectRows("SELECT DISTINCT ?series ?seriesLabel",
			testsupport.Row(episode.FieldSeries, "Q100", episode.FieldSeriesLabel, "Test Series"),
			testsupport.Row(episode.FieldSeries, "Q7", episode.FieldSeriesLabel, "Q7"),
		).
		selectRows("?nameWithoutLang",
			testsupport.Row(episode.FieldSeries, "Q100", "nameWithoutLang", "Test Series", "langs", "en,fr"),
		)
}

type cliTestEnv struct {
	endpoint   *fakeEndpoint
	configPath string
	stateDir   string
}

func setupCLITestEnv(t *testing.T, endpoint *fakeEndpoint) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("REDIS_URL", "")
	t.Setenv("REDIS_PREFIX", "")
	t.Setenv("EPISODECHECK_API_BIND", "")
	t.Setenv("EPISODECHECK_API_TOKEN", "")

	server := httptest.NewServer(endpoint)
	t.Cleanup(server.Close)

	stateDir := filepath.Join(base, "state")
	configPath := filepath.Join(base, "episodecheck.toml")
	writeTestConfig(t, configPath, stateDir, server.URL+"/sparql")

	return &cliTestEnv{endpoint: endpoint, configPath: configPath, stateDir: stateDir}
}

func writeTestConfig(t *testing.T, path, stateDir, endpoint string) {
	t.Helper()
	content := strings.Join([]string{
		"[paths]",
		"state_dir = " + quote(stateDir),
		"[sparql]",
		"endpoint = " + quote(endpoint),
		`user_agent = "episodecheck-test/1.0"`,
		"timeout_seconds = 5",
		"[cache]",
		`backend = "sqlite"`,
		"[logging]",
		`level = "debug"`,
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

package sparql_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"episodecheck/internal/sparql"
)

func TestNewRequiresEndpointAndUserAgent(t *testing.T) {
	if _, err := sparql.New("", "agent"); err == nil {
		t.Fatal("expected error when endpoint missing")
	}
	if _, err := sparql.New("https://example.com/sparql", "  "); err == nil {
		t.Fatal("expected error when user agent missing")
	}
}

func TestRunSelectSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("User-Agent"); got != "episodecheck-test/1.0" {
			t.Fatalf("unexpected user agent %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("query"); got != "SELECT ?x WHERE { ?x ?y ?z }" {
			t.Fatalf("expected normalized query, got %q", got)
		}
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(`{"head":{"vars":["x"]},"results":{"bindings":[
			{"x":{"type":"uri","value":"http://www.wikidata.org/entity/Q1"}},
			{}
		]}}`))
	}))
	t.Cleanup(server.Close)

	client, err := sparql.New(server.URL, "episodecheck-test/1.0")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	result, err := client.Run(context.Background(), "SELECT ?x\n  WHERE { ?x ?y ?z }\n", "testing")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Bindings) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Bindings))
	}
	if v, ok := result.Bindings[0].Lookup("x"); !ok || v != "http://www.wikidata.org/entity/Q1" {
		t.Fatalf("unexpected first row value %q (bound=%v)", v, ok)
	}
	if _, ok := result.Bindings[1].Lookup("x"); ok {
		t.Fatal("expected second row to leave x unbound")
	}
	if got := result.Values("x"); len(got) != 1 {
		t.Fatalf("expected one bound value, got %v", got)
	}
}

func TestRunAsk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"head":{},"boolean":true}`))
	}))
	t.Cleanup(server.Close)

	client, err := sparql.New(server.URL, "agent")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	result, err := client.Run(context.Background(), sparql.IsTVSeries("Q2744"), "ask")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	ok, err := result.Ask()
	if err != nil || !ok {
		t.Fatalf("expected true ASK result, got %v (err=%v)", ok, err)
	}
}

func TestRunHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	t.Cleanup(server.Close)

	client, err := sparql.New(server.URL, "agent")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.Run(context.Background(), "SELECT * WHERE {}", "fail")
	if !errors.Is(err, sparql.ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
	if !strings.Contains(err.Error(), "slow down") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestRunEmptyQuery(t *testing.T) {
	client, err := sparql.New("https://example.com/sparql", "agent")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Run(context.Background(), " \n ", "nothing"); err == nil {
		t.Fatal("expected error for empty query")
	}
}

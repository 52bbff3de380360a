package sparql_test

import (
	"encoding/json"
	"errors"
	"testing"

	"episodecheck/internal/sparql"
)

func TestResultJSONKeepsUnboundVariablesAbsent(t *testing.T) {
	original := sparql.Result{
		Vars: []string{"season", "seasonNumber"},
		Bindings: []sparql.Binding{
			{"season": {Type: "uri", Value: "http://www.wikidata.org/entity/Q5"}},
		},
	}
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded sparql.Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Bindings) != 1 {
		t.Fatalf("expected 1 row, got %d", len(decoded.Bindings))
	}
	if _, ok := decoded.Bindings[0].Lookup("seasonNumber"); ok {
		t.Fatal("unbound variable should stay absent")
	}
	if decoded.Boolean != nil {
		t.Fatal("SELECT result should not carry a boolean")
	}
}

func TestResultUnmarshalRejectsUnknownShape(t *testing.T) {
	var r sparql.Result
	if err := json.Unmarshal([]byte(`{"head":{}}`), &r); err == nil {
		t.Fatal("expected error for response without results or boolean")
	}
}

func TestAskOnSelectResult(t *testing.T) {
	r := &sparql.Result{}
	if _, err := r.Ask(); !errors.Is(err, sparql.ErrNotAsk) {
		t.Fatalf("expected ErrNotAsk, got %v", err)
	}
}

package testsupport

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"episodecheck/internal/sparql"
)

// FakeQuerier answers queries from canned results matched by substring of the
// normalized query text. Unmatched queries fail, so a test notices a query it
// did not expect.
type FakeQuerier struct {
	mu        sync.Mutex
	responses []fakeResponse
	calls     []sparql.Issued
}

type fakeResponse struct {
	contains string
	result   *sparql.Result
	err      error
}

// Select registers rows returned for queries containing fragment.
func (f *FakeQuerier) Select(fragment string, rows ...sparql.Binding) *FakeQuerier {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rows == nil {
		rows = []sparql.Binding{}
	}
	f.responses = append(f.responses, fakeResponse{contains: fragment, result: &sparql.Result{Bindings: rows}})
	return f
}

// Ask registers the boolean returned for ASK queries containing fragment.
func (f *FakeQuerier) Ask(fragment string, value bool) *FakeQuerier {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResponse{contains: fragment, result: &sparql.Result{Boolean: &value}})
	return f
}

// Fail registers an error returned for queries containing fragment.
func (f *FakeQuerier) Fail(fragment string, err error) *FakeQuerier {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResponse{contains: fragment, err: err})
	return f
}

// Run implements sparql.Querier. The earliest registered match wins.
func (f *FakeQuerier) Run(ctx context.Context, query, reason string) (*sparql.Result, error) {
	normalized := sparql.Normalize(query)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sparql.Issued{Query: normalized, Reason: reason})
	for _, resp := range f.responses {
		if strings.Contains(normalized, resp.contains) {
			if resp.err != nil {
				return nil, resp.err
			}
			return resp.result, nil
		}
	}
	return nil, fmt.Errorf("fake querier: no response registered for %q", normalized)
}

// Calls returns every query run so far, in call order.
func (f *FakeQuerier) Calls() []sparql.Issued {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sparql.Issued, len(f.calls))
	copy(out, f.calls)
	return out
}

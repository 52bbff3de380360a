package sparql

import (
	"context"
	"sync"
)

// Issued is one query that was run, with the reason it was run.
type Issued struct {
	Query  string `json:"query"`
	Reason string `json:"reason"`
}

// Recorder wraps a Querier and remembers every query passed through it. It is
// safe for concurrent use; a query issued twice is recorded once with its
// first reason.
type Recorder struct {
	next Querier

	mu      sync.Mutex
	issued  []Issued
	reasons map[string]string
}

var _ Querier = (*Recorder)(nil)

// NewRecorder returns a Recorder delegating to next.
func NewRecorder(next Querier) *Recorder {
	return &Recorder{next: next, reasons: make(map[string]string)}
}

// Run records the query and delegates to the wrapped Querier.
func (r *Recorder) Run(ctx context.Context, query, reason string) (*Result, error) {
	normalized := Normalize(query)
	r.mu.Lock()
	if _, seen := r.reasons[normalized]; !seen {
		r.reasons[normalized] = reason
		r.issued = append(r.issued, Issued{Query: normalized, Reason: reason})
	}
	r.mu.Unlock()
	return r.next.Run(ctx, query, reason)
}

// Issued returns the recorded queries in first-issue order.
func (r *Recorder) Issued() []Issued {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Issued, len(r.issued))
	copy(out, r.issued)
	return out
}

// Reasons returns the recorded queries keyed by normalized query text.
func (r *Recorder) Reasons() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.reasons))
	for k, v := range r.reasons {
		out[k] = v
	}
	return out
}

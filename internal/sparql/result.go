package sparql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Value is a single bound variable inside a result row.
type Value struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// Binding is one result row. Variables left unbound by OPTIONAL clauses are
// absent from the map rather than present with an empty value.
type Binding map[string]Value

// Lookup returns the raw value bound to key and whether the key was bound.
func (b Binding) Lookup(key string) (string, bool) {
	v, ok := b[key]
	if !ok {
		return "", false
	}
	return v.Value, true
}

// Result is a decoded query response. SELECT queries populate Bindings, ASK
// queries populate Boolean.
type Result struct {
	Vars     []string
	Bindings []Binding
	Boolean  *bool
}

// Querier runs a query. reason explains why the query was issued and is kept
// for audit display; it never changes the query itself.
type Querier interface {
	Run(ctx context.Context, query, reason string) (*Result, error)
}

// ErrNotAsk is returned by Ask when the response carries no boolean.
var ErrNotAsk = errors.New("sparql response is not an ASK result")

// Ask returns the boolean of an ASK response.
func (r *Result) Ask() (bool, error) {
	if r == nil || r.Boolean == nil {
		return false, ErrNotAsk
	}
	return *r.Boolean, nil
}

// Values returns the bound values of key across all rows, skipping rows that
// leave it unbound.
func (r *Result) Values(key string) []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Bindings))
	for _, b := range r.Bindings {
		if v, ok := b.Lookup(key); ok {
			out = append(out, v)
		}
	}
	return out
}

type wireResult struct {
	Head struct {
		Vars []string `json:"vars,omitempty"`
	} `json:"head"`
	Results *wireBindings `json:"results,omitempty"`
	Boolean *bool         `json:"boolean,omitempty"`
}

type wireBindings struct {
	Bindings []Binding `json:"bindings"`
}

// MarshalJSON encodes the result in the SPARQL 1.1 JSON results format.
func (r Result) MarshalJSON() ([]byte, error) {
	var wire wireResult
	wire.Head.Vars = r.Vars
	wire.Boolean = r.Boolean
	if r.Boolean == nil {
		bindings := r.Bindings
		if bindings == nil {
			bindings = []Binding{}
		}
		wire.Results = &wireBindings{Bindings: bindings}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the SPARQL 1.1 JSON results format.
func (r *Result) UnmarshalJSON(data []byte) error {
	var wire wireResult
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Results == nil && wire.Boolean == nil {
		return fmt.Errorf("sparql response has neither results nor boolean")
	}
	r.Vars = wire.Head.Vars
	r.Boolean = wire.Boolean
	r.Bindings = nil
	if wire.Results != nil {
		r.Bindings = wire.Results.Bindings
	}
	return nil
}

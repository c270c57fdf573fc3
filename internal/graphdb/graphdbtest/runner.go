// Package graphdbtest provides a scripted graphdb.Runner for tests.
package graphdbtest

import (
	"context"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Call is one statement received by the Runner.
type Call struct {
	Mode   string
	Cypher string
	Params map[string]any
}

type response struct {
	records []*neo4j.Record
	err     error
}

// Runner replays queued responses in order. Once the queue is empty every
// call returns no records.
type Runner struct {
	mu        sync.Mutex
	responses []response
	calls     []Call
}

func New() *Runner {
	return &Runner{}
}

// Returns queues the records for the next call.
func (r *Runner) Returns(records ...*neo4j.Record) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, response{records: records})
	return r
}

// Fails queues an error for the next call.
func (r *Runner) Fails(err error) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, response{err: err})
	return r
}

func (r *Runner) Read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	return r.next("read", cypher, params)
}

func (r *Runner) Write(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	return r.next("write", cypher, params)
}

// Calls returns every statement received so far.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// LastCall panics when nothing was executed.
func (r *Runner) LastCall() Call {
	calls := r.Calls()
	if len(calls) == 0 {
		panic("graphdbtest: no calls recorded")
	}
	return calls[len(calls)-1]
}

func (r *Runner) next(mode, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Mode: mode, Cypher: cypher, Params: params})
	if len(r.responses) == 0 {
		return nil, nil
	}
	resp := r.responses[0]
	r.responses = r.responses[1:]
	return resp.records, resp.err
}

// Record builds a record from alternating key/value pairs.
func Record(kv ...any) *neo4j.Record {
	rec := &neo4j.Record{}
	for i := 0; i+1 < len(kv); i += 2 {
		rec.Keys = append(rec.Keys, kv[i].(string))
		rec.Values = append(rec.Values, kv[i+1])
	}
	return rec
}

// Node builds a node value with the given label and properties.
func Node(label string, props map[string]any) neo4j.Node {
	return neo4j.Node{Labels: []string{label}, Props: props}
}

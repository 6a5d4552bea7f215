package graph

import "context"

// Runner executes one Cypher statement and returns the result rows as maps.
// The production implementation is *neo4jdb.Client; tests substitute an
// in-memory fake so the write path and reconciliation logic can be
// exercised without a live store.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

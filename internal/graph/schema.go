package graph

import (
	"context"
	"fmt"

	"github.com/yungbote/trendgraph/internal/platform/logger"
)

// EnsureSchema creates the uniqueness constraints and lookup indexes the
// write path depends on. Safe to re-run: every statement carries IF NOT
// EXISTS. Individual failures are logged and skipped, because the store may
// already hold an equivalent schema from an earlier run.
func EnsureSchema(ctx context.Context, run Runner, log *logger.Logger) {
	for _, stmt := range schemaStatements {
		if _, err := run.Run(ctx, stmt, nil); err != nil {
			if log != nil {
				log.Warn("schema statement failed (continuing)", "error", err)
			}
		}
	}
	if log != nil {
		log.Info("schema ensured", "statements", len(schemaStatements))
	}
}

// ClearAll removes every node and relationship. Full-refresh loads call
// this before ingestion so re-runs start from an empty graph.
func ClearAll(ctx context.Context, run Runner, log *logger.Logger) error {
	if _, err := run.Run(ctx, cypherClearAll, nil); err != nil {
		return fmt.Errorf("graph: clear all: %w", err)
	}
	if log != nil {
		log.Info("cleared existing graph data")
	}
	return nil
}

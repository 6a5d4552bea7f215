package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/yungbote/trendgraph/internal/dataset"
	"github.com/yungbote/trendgraph/internal/platform/logger"
)

// CollectTags gathers the distinct normalized tags across the row set,
// sorted. Row tags are already normalized at the dataset boundary, so two
// differently-quoted spellings of a tag arrive here as one value.
func CollectTags(rows []dataset.Row) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, row := range rows {
		for _, tag := range row.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// LoadTags upserts one Tag node per distinct normalized tag.
func LoadTags(ctx context.Context, run Runner, log *logger.Logger, tags []string) (int, error) {
	payload := make([]map[string]any, 0, len(tags))
	for _, tag := range tags {
		payload = append(payload, map[string]any{"tag_name": tag})
	}
	if err := runChunked(ctx, run, cypherUpsertTags, payload); err != nil {
		return 0, fmt.Errorf("graph: load tags: %w", err)
	}
	if log != nil {
		log.Info("tag nodes loaded", "count", len(payload))
	}
	return len(payload), nil
}

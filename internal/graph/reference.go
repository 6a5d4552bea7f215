package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/yungbote/trendgraph/internal/dataset"
	"github.com/yungbote/trendgraph/internal/platform/logger"
)

// upsertChunkSize bounds the payload of one UNWIND statement.
const upsertChunkSize = 1000

// LoadCountries upserts one Country node per distinct country code in the
// row set. countryNames supplies display names; unmapped codes fall back to
// the code itself.
func LoadCountries(ctx context.Context, run Runner, log *logger.Logger, rows []dataset.Row, countryNames map[string]string) (int, error) {
	seen := make(map[string]bool)
	var payload []map[string]any
	for _, row := range rows {
		if seen[row.Country] {
			continue
		}
		seen[row.Country] = true
		name, ok := countryNames[row.Country]
		if !ok {
			name = row.Country
		}
		payload = append(payload, map[string]any{
			"country_code": row.Country,
			"country_name": name,
		})
	}
	sortPayload(payload, "country_code")
	if err := runChunked(ctx, run, cypherUpsertCountries, payload); err != nil {
		return 0, fmt.Errorf("graph: load countries: %w", err)
	}
	if log != nil {
		log.Info("country nodes loaded", "count", len(payload))
	}
	return len(payload), nil
}

// LoadCategories upserts one Category node per distinct category id.
// The first occurrence of an id fixes its display name.
func LoadCategories(ctx context.Context, run Runner, log *logger.Logger, rows []dataset.Row) (int, error) {
	seen := make(map[int]bool)
	var payload []map[string]any
	for _, row := range rows {
		if seen[row.CategoryID] {
			continue
		}
		seen[row.CategoryID] = true
		payload = append(payload, map[string]any{
			"category_id":   int64(row.CategoryID),
			"category_name": row.CategoryName,
		})
	}
	sortPayload(payload, "category_id")
	if err := runChunked(ctx, run, cypherUpsertCategories, payload); err != nil {
		return 0, fmt.Errorf("graph: load categories: %w", err)
	}
	if log != nil {
		log.Info("category nodes loaded", "count", len(payload))
	}
	return len(payload), nil
}

// LoadDays upserts the fixed day-of-week vocabulary.
func LoadDays(ctx context.Context, run Runner, log *logger.Logger) (int, error) {
	days := dataset.Weekdays()
	payload := make([]map[string]any, 0, len(days))
	for _, day := range days {
		payload = append(payload, map[string]any{"day_name": day})
	}
	if err := runChunked(ctx, run, cypherUpsertDays, payload); err != nil {
		return 0, fmt.Errorf("graph: load days: %w", err)
	}
	if log != nil {
		log.Info("day nodes loaded", "count", len(payload))
	}
	return len(payload), nil
}

func runChunked(ctx context.Context, run Runner, query string, payload []map[string]any) error {
	for start := 0; start < len(payload); start += upsertChunkSize {
		end := start + upsertChunkSize
		if end > len(payload) {
			end = len(payload)
		}
		if _, err := run.Run(ctx, query, map[string]any{"rows": payload[start:end]}); err != nil {
			return err
		}
	}
	return nil
}

// sortPayload keeps loader writes deterministic regardless of input order.
func sortPayload(payload []map[string]any, key string) {
	sort.Slice(payload, func(i, j int) bool {
		return fmt.Sprint(payload[i][key]) < fmt.Sprint(payload[j][key])
	})
}

package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/yungbote/trendgraph/internal/dataset"
	"github.com/yungbote/trendgraph/internal/platform/logger"
)

// ChannelStats is the aggregate snapshot carried by a Channel node. It is
// computed once over the full row set before any video write, so the stored
// values are independent of ingestion order and batch size.
type ChannelStats struct {
	Title              string
	TotalViews         int64
	AvgEngagementRatio float64
	VideoCount         int
}

// ComputeChannelStats folds the row set into per-channel aggregates in a
// single pass. Output is sorted by channel title.
func ComputeChannelStats(rows []dataset.Row) []ChannelStats {
	type acc struct {
		views      int64
		engagement float64
		count      int
	}
	byChannel := make(map[string]*acc)
	for _, row := range rows {
		a := byChannel[row.ChannelTitle]
		if a == nil {
			a = &acc{}
			byChannel[row.ChannelTitle] = a
		}
		a.views += row.Views
		a.engagement += row.EngagementRatio
		a.count++
	}

	stats := make([]ChannelStats, 0, len(byChannel))
	for title, a := range byChannel {
		stats = append(stats, ChannelStats{
			Title:              title,
			TotalViews:         a.views,
			AvgEngagementRatio: a.engagement / float64(a.count),
			VideoCount:         a.count,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Title < stats[j].Title })
	return stats
}

// LoadChannels upserts one Channel node per aggregate. Re-running
// overwrites the stored aggregates with the recomputed snapshot.
func LoadChannels(ctx context.Context, run Runner, log *logger.Logger, stats []ChannelStats) (int, error) {
	payload := make([]map[string]any, 0, len(stats))
	for _, s := range stats {
		payload = append(payload, map[string]any{
			"channel_title":        s.Title,
			"total_views":          s.TotalViews,
			"avg_engagement_ratio": s.AvgEngagementRatio,
			"video_count":          int64(s.VideoCount),
		})
	}
	if err := runChunked(ctx, run, cypherUpsertChannels, payload); err != nil {
		return 0, fmt.Errorf("graph: load channels: %w", err)
	}
	if log != nil {
		log.Info("channel nodes loaded", "count", len(payload))
	}
	return len(payload), nil
}

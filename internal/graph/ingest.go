package graph

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/trendgraph/internal/dataset"
	"github.com/yungbote/trendgraph/internal/platform/logger"
)

// Step names recorded against failed rows.
const (
	StepVideo    = "video"
	StepCategory = "category"
	StepChannel  = "channel"
	StepCountry  = "country"
	StepDay      = "day"
	StepTag      = "tag"
)

// refMissingError marks an attachment whose reference entity was not found.
type refMissingError struct {
	label string
	key   string
}

func (e *refMissingError) Error() string {
	return fmt.Sprintf("%s %q not found", e.label, e.key)
}

// RowFailure records one skipped row: its natural key, the step that
// failed, and the underlying error.
type RowFailure struct {
	Key   string `json:"key"`
	Step  string `json:"step"`
	Error string `json:"error"`
}

// BatchStat is the per-batch progress record.
type BatchStat struct {
	Index     int `json:"index"`
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Result accumulates the outcome of a full ingestion pass.
type Result struct {
	Attempted int          `json:"attempted"`
	Succeeded int          `json:"succeeded"`
	Failures  []RowFailure `json:"failures,omitempty"`
	Batches   []BatchStat  `json:"batches"`
	Canceled  bool         `json:"canceled,omitempty"`
}

// Driver is the batch write path. It partitions rows into fixed-size
// batches and runs a bounded worker pool over the rows of each batch. A
// batch is a progress checkpoint, not a transactional boundary: each row's
// multi-step write is its own unit of work.
type Driver struct {
	run       Runner
	log       *logger.Logger
	batchSize int
	workers   int
}

func NewDriver(run Runner, log *logger.Logger, batchSize, workers int) *Driver {
	if batchSize <= 0 {
		batchSize = 1000
	}
	if workers <= 0 {
		workers = 1
	}
	return &Driver{run: run, log: log, batchSize: batchSize, workers: workers}
}

// Ingest writes every row to the store. A failure in any step skips the
// remainder of that row and is recorded; ingestion continues with the next
// row. Cancelling ctx stops scheduling new batches; the in-flight batch
// drains so no half-written row is abandoned.
func (d *Driver) Ingest(ctx context.Context, rows []dataset.Row) *Result {
	result := &Result{Attempted: len(rows)}
	if len(rows) == 0 {
		return result
	}

	numBatches := (len(rows) + d.batchSize - 1) / d.batchSize
	if d.log != nil {
		d.log.Info("ingesting videos",
			"rows", len(rows), "batches", numBatches,
			"batch_size", d.batchSize, "workers", d.workers)
	}

	// Rows already handed to the pool run to completion even if the run is
	// being cancelled; only batch scheduling observes ctx.
	rowCtx := context.WithoutCancel(ctx)

	for b := 0; b < numBatches; b++ {
		if ctx.Err() != nil {
			result.Canceled = true
			result.Attempted = b * d.batchSize
			if d.log != nil {
				d.log.Warn("ingestion cancelled", "completed_batches", b, "total_batches", numBatches)
			}
			break
		}

		start := b * d.batchSize
		end := start + d.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		var mu sync.Mutex
		var failures []RowFailure

		g := new(errgroup.Group)
		g.SetLimit(d.workers)
		for _, row := range batch {
			row := row
			g.Go(func() error {
				if failure := d.ingestRow(rowCtx, row); failure != nil {
					mu.Lock()
					failures = append(failures, *failure)
					mu.Unlock()
				}
				return nil
			})
		}
		_ = g.Wait()

		stat := BatchStat{
			Index:     b + 1,
			Attempted: len(batch),
			Succeeded: len(batch) - len(failures),
			Failed:    len(failures),
		}
		result.Batches = append(result.Batches, stat)
		result.Succeeded += stat.Succeeded
		result.Failures = append(result.Failures, failures...)

		if d.log != nil {
			d.log.Info("batch complete",
				"batch", stat.Index, "of", numBatches,
				"succeeded", stat.Succeeded, "failed", stat.Failed)
		}
	}
	return result
}

// ingestRow performs the per-row unit of work: upsert the video node, then
// attach it to its pre-loaded category, channel, country, optional day and
// tags. The first failing step aborts the rest of the row.
func (d *Driver) ingestRow(ctx context.Context, row dataset.Row) *RowFailure {
	key := row.Key()

	if _, err := d.run.Run(ctx, cypherUpsertVideo, videoParams(row)); err != nil {
		return failure(key, StepVideo, err)
	}

	if err := d.attach(ctx, cypherAttachCategory, map[string]any{
		"video_unique_id": key.UniqueID(),
		"category_id":     int64(row.CategoryID),
	}, LabelCategory, fmt.Sprint(row.CategoryID)); err != nil {
		return failure(key, StepCategory, err)
	}

	if err := d.attach(ctx, cypherAttachChannel, map[string]any{
		"video_unique_id": key.UniqueID(),
		"channel_title":   row.ChannelTitle,
	}, LabelChannel, row.ChannelTitle); err != nil {
		return failure(key, StepChannel, err)
	}

	if err := d.attach(ctx, cypherAttachCountry, map[string]any{
		"video_unique_id": key.UniqueID(),
		"country_code":    row.Country,
	}, LabelCountry, row.Country); err != nil {
		return failure(key, StepCountry, err)
	}

	if row.TrendingDay != "" {
		if err := d.attach(ctx, cypherAttachDay, map[string]any{
			"video_unique_id": key.UniqueID(),
			"day_name":        row.TrendingDay,
		}, LabelDay, row.TrendingDay); err != nil {
			return failure(key, StepDay, err)
		}
	}

	for _, tag := range row.Tags {
		if err := d.attach(ctx, cypherAttachTag, map[string]any{
			"video_unique_id": key.UniqueID(),
			"tag_name":        tag,
		}, LabelTag, tag); err != nil {
			return failure(key, StepTag, err)
		}
	}

	return nil
}

// attach runs one relationship upsert. The statement reports how many rows
// it touched; zero means an endpoint MATCH found nothing, which is a
// deterministic lookup miss rather than a store error.
func (d *Driver) attach(ctx context.Context, query string, params map[string]any, label, key string) error {
	rows, err := d.run.Run(ctx, query, params)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return &refMissingError{label: label, key: key}
	}
	if attached, ok := rows[0]["attached"].(int64); ok && attached == 0 {
		return &refMissingError{label: label, key: key}
	}
	return nil
}

func failure(key dataset.VideoKey, step string, err error) *RowFailure {
	return &RowFailure{Key: key.UniqueID(), Step: step, Error: err.Error()}
}

func videoParams(row dataset.Row) map[string]any {
	return map[string]any{
		"video_unique_id":    row.Key().UniqueID(),
		"video_id":           row.VideoID,
		"title":              row.Title,
		"views":              row.Views,
		"likes":              row.Likes,
		"dislikes":           row.Dislikes,
		"comment_count":      row.CommentCount,
		"engagement_ratio":   row.EngagementRatio,
		"like_dislike_ratio": row.LikeDislikeRatio,
		"trending_date":      row.TrendingDate,
		"publish_time":       row.PublishTime,
		"days_to_trend":      int64(row.DaysToTrend),
		"country_code":       row.Country,
	}
}

package graph

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/yungbote/trendgraph/internal/dataset"
	"github.com/yungbote/trendgraph/internal/platform/logger"
)

// SampleCheck is the re-fetched neighborhood of one sampled row, compared
// against what the row implies should be attached.
type SampleCheck struct {
	Key                string   `json:"key"`
	Found              bool     `json:"found"`
	Category           string   `json:"category,omitempty"`
	Channel            string   `json:"channel,omitempty"`
	Country            string   `json:"country,omitempty"`
	Day                string   `json:"day,omitempty"`
	TagCount           int64    `json:"tag_count"`
	ExpectedTags       int      `json:"expected_tags"`
	MissingAttachments []string `json:"missing_attachments,omitempty"`
}

// DuplicateGroup is one natural key that resolved to more than one node.
// Any occurrence is a correctness defect in the uniqueness constraint or
// the upsert logic, never ordinary data quality noise.
type DuplicateGroup struct {
	VideoID string `json:"video_id"`
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

// Validation is the reconciliation outcome: post-load counts compared to
// expectations, sampled structural checks, and duplicate detection.
type Validation struct {
	NodeCounts         map[string]int64         `json:"node_counts"`
	RelationshipCounts map[string]int64         `json:"relationship_counts"`
	ExpectedVideos     int                      `json:"expected_videos"`
	RecordedFailures   int                      `json:"recorded_failures"`
	NodeFailures       int                      `json:"node_failures"`
	ActualVideos       int64                    `json:"actual_videos"`
	Delta              int64                    `json:"delta"`
	CountMatch         bool                     `json:"count_match"`
	Samples            map[string][]SampleCheck `json:"samples"`
	SampleMisses       int                      `json:"sample_misses"`
	Duplicates         []DuplicateGroup         `json:"duplicates"`
}

// Reconciler queries the store after ingestion and compares against the
// input row set and the driver's recorded failures.
type Reconciler struct {
	run        Runner
	log        *logger.Logger
	sampleSize int
	rng        *rand.Rand
}

func NewReconciler(run Runner, log *logger.Logger, sampleSize int, seed int64) *Reconciler {
	if sampleSize <= 0 {
		sampleSize = 5
	}
	return &Reconciler{
		run:        run,
		log:        log,
		sampleSize: sampleSize,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Reconcile runs the full validation pass. Count mismatches are warnings;
// duplicates are surfaced as correctness defects. Query errors abort the
// pass, since a store that cannot answer counts cannot be validated.
func (r *Reconciler) Reconcile(ctx context.Context, rows []dataset.Row, ingestion *Result) (*Validation, error) {
	v := &Validation{
		NodeCounts:         make(map[string]int64, len(nodeCountStatements)),
		RelationshipCounts: make(map[string]int64, len(relCountStatements)),
		ExpectedVideos:     len(rows),
		Samples:            make(map[string][]SampleCheck),
	}
	if ingestion != nil {
		v.RecordedFailures = len(ingestion.Failures)
		// A row that failed after its video upsert still has a node in the
		// store; only failures at the video step itself reduce the expected
		// node count. Later-step failures show up as missing attachments.
		for _, f := range ingestion.Failures {
			if f.Step == StepVideo {
				v.NodeFailures++
			}
		}
	}

	for label, stmt := range nodeCountStatements {
		count, err := r.count(ctx, stmt)
		if err != nil {
			return nil, fmt.Errorf("graph: count %s nodes: %w", label, err)
		}
		v.NodeCounts[label] = count
	}
	for relType, stmt := range relCountStatements {
		count, err := r.count(ctx, stmt)
		if err != nil {
			return nil, fmt.Errorf("graph: count %s relationships: %w", relType, err)
		}
		v.RelationshipCounts[relType] = count
	}

	v.ActualVideos = v.NodeCounts[LabelVideo]
	v.Delta = int64(v.ExpectedVideos-v.NodeFailures) - v.ActualVideos
	v.CountMatch = v.Delta == 0
	if r.log != nil {
		if v.CountMatch {
			r.log.Info("video count reconciled",
				"expected", v.ExpectedVideos, "failed", v.RecordedFailures, "actual", v.ActualVideos)
		} else {
			r.log.Warn("video count mismatch",
				"expected", v.ExpectedVideos, "failed", v.RecordedFailures,
				"actual", v.ActualVideos, "delta", v.Delta)
		}
	}

	if err := r.sample(ctx, rows, v); err != nil {
		return nil, err
	}

	duplicates, err := r.findDuplicates(ctx)
	if err != nil {
		return nil, err
	}
	v.Duplicates = duplicates
	if len(duplicates) > 0 && r.log != nil {
		r.log.Error("duplicate video keys detected: uniqueness defect", "groups", len(duplicates))
	}

	return v, nil
}

func (r *Reconciler) count(ctx context.Context, stmt string) (int64, error) {
	rows, err := r.run.Run(ctx, stmt, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("count query returned no rows")
	}
	count, ok := rows[0]["count"].(int64)
	if !ok {
		return 0, fmt.Errorf("count query returned %T, want int64", rows[0]["count"])
	}
	return count, nil
}

// sample draws up to sampleSize random rows per country and re-fetches each
// video with its directly attached neighbors, verifying every attachment
// the source row implies.
func (r *Reconciler) sample(ctx context.Context, rows []dataset.Row, v *Validation) error {
	byCountry := make(map[string][]dataset.Row)
	for _, row := range rows {
		byCountry[row.Country] = append(byCountry[row.Country], row)
	}
	countries := make([]string, 0, len(byCountry))
	for c := range byCountry {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	for _, country := range countries {
		candidates := byCountry[country]
		r.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		n := r.sampleSize
		if n > len(candidates) {
			n = len(candidates)
		}
		for _, row := range candidates[:n] {
			check, err := r.checkRow(ctx, row)
			if err != nil {
				return fmt.Errorf("graph: sample %s: %w", row.Key(), err)
			}
			v.Samples[country] = append(v.Samples[country], check)
			if len(check.MissingAttachments) > 0 || !check.Found {
				v.SampleMisses++
				if r.log != nil {
					r.log.Warn("sampled row incomplete",
						"key", check.Key, "found", check.Found,
						"missing", check.MissingAttachments)
				}
			}
		}
	}
	return nil
}

func (r *Reconciler) checkRow(ctx context.Context, row dataset.Row) (SampleCheck, error) {
	check := SampleCheck{Key: row.Key().UniqueID(), ExpectedTags: len(row.Tags)}

	result, err := r.run.Run(ctx, cypherFetchVideoNeighbors, map[string]any{
		"video_unique_id": row.Key().UniqueID(),
	})
	if err != nil {
		return check, err
	}
	if len(result) == 0 {
		check.MissingAttachments = append(check.MissingAttachments, "video")
		return check, nil
	}
	check.Found = true

	rec := result[0]
	check.Category, _ = rec["category"].(string)
	check.Channel, _ = rec["channel"].(string)
	check.Country, _ = rec["country"].(string)
	check.Day, _ = rec["day"].(string)
	check.TagCount, _ = rec["tag_count"].(int64)

	if check.Category == "" {
		check.MissingAttachments = append(check.MissingAttachments, StepCategory)
	}
	if check.Channel != row.ChannelTitle {
		check.MissingAttachments = append(check.MissingAttachments, StepChannel)
	}
	if check.Country != row.Country {
		check.MissingAttachments = append(check.MissingAttachments, StepCountry)
	}
	if row.TrendingDay != "" && check.Day != row.TrendingDay {
		check.MissingAttachments = append(check.MissingAttachments, StepDay)
	}
	if check.TagCount < int64(check.ExpectedTags) {
		check.MissingAttachments = append(check.MissingAttachments, StepTag)
	}
	return check, nil
}

func (r *Reconciler) findDuplicates(ctx context.Context) ([]DuplicateGroup, error) {
	rows, err := r.run.Run(ctx, cypherDuplicateVideos, nil)
	if err != nil {
		return nil, fmt.Errorf("graph: duplicate check: %w", err)
	}
	groups := make([]DuplicateGroup, 0, len(rows))
	for _, row := range rows {
		g := DuplicateGroup{}
		g.VideoID, _ = row["video_id"].(string)
		g.Country, _ = row["country"].(string)
		g.Count, _ = row["count"].(int64)
		groups = append(groups, g)
	}
	return groups, nil
}

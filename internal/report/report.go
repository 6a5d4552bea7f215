package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/trendgraph/internal/graph"
	"github.com/yungbote/trendgraph/internal/platform/logger"
)

// RunReport is the machine-readable record of one ingestion run, written as
// JSON for programmatic consumers and rendered to markdown for humans.
type RunReport struct {
	RunID          string            `json:"run_id"`
	StartedAt      time.Time         `json:"started_at"`
	FinishedAt     time.Time         `json:"finished_at"`
	ElapsedSeconds float64           `json:"elapsed_seconds"`
	InputPath      string            `json:"input_path"`
	RowsLoaded     int               `json:"rows_loaded"`
	BatchSize      int               `json:"batch_size"`
	Workers        int               `json:"workers"`
	Ingestion      *graph.Result     `json:"ingestion"`
	Validation     *graph.Validation `json:"validation,omitempty"`
	SuccessRate    string            `json:"success_rate"`
}

func New(inputPath string, rowsLoaded, batchSize, workers int, startedAt time.Time) *RunReport {
	return &RunReport{
		RunID:      uuid.NewString(),
		StartedAt:  startedAt,
		InputPath:  inputPath,
		RowsLoaded: rowsLoaded,
		BatchSize:  batchSize,
		Workers:    workers,
	}
}

// Finish stamps the end time and derives the success rate.
func (r *RunReport) Finish(ingestion *graph.Result, validation *graph.Validation) {
	r.FinishedAt = time.Now().UTC()
	r.ElapsedSeconds = r.FinishedAt.Sub(r.StartedAt).Seconds()
	r.Ingestion = ingestion
	r.Validation = validation
	if ingestion != nil && ingestion.Attempted > 0 {
		r.SuccessRate = fmt.Sprintf("%.2f%%", float64(ingestion.Succeeded)/float64(ingestion.Attempted)*100)
	} else {
		r.SuccessRate = "0%"
	}
}

// WriteJSON writes the ingestion log for downstream tooling.
func (r *RunReport) WriteJSON(dir string) (string, error) {
	path := filepath.Join(dir, "ingestion_log.json")
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("report: marshal log: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("report: write %s: %w", path, err)
	}
	return path, nil
}

// WriteMarkdown renders the human-readable summary.
func (r *RunReport) WriteMarkdown(dir string) (string, error) {
	path := filepath.Join(dir, "ingestion_report.md")
	if err := os.WriteFile(path, []byte(r.markdown()), 0o644); err != nil {
		return "", fmt.Errorf("report: write %s: %w", path, err)
	}
	return path, nil
}

func (r *RunReport) markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Graph Ingestion Report\n\n")
	fmt.Fprintf(&b, "- Run: %s\n", r.RunID)
	fmt.Fprintf(&b, "- Input: %s (%d rows)\n", r.InputPath, r.RowsLoaded)
	fmt.Fprintf(&b, "- Started: %s\n", r.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Elapsed: %.1fs\n", r.ElapsedSeconds)
	fmt.Fprintf(&b, "- Batch size: %d, workers: %d\n\n", r.BatchSize, r.Workers)

	if in := r.Ingestion; in != nil {
		fmt.Fprintf(&b, "## Ingestion\n\n")
		fmt.Fprintf(&b, "- Attempted: %d\n", in.Attempted)
		fmt.Fprintf(&b, "- Succeeded: %d\n", in.Succeeded)
		fmt.Fprintf(&b, "- Failed: %d\n", len(in.Failures))
		fmt.Fprintf(&b, "- Success rate: %s\n", r.SuccessRate)
		if in.Canceled {
			fmt.Fprintf(&b, "- Run was cancelled before all batches were scheduled\n")
		}
		if len(in.Failures) > 0 {
			fmt.Fprintf(&b, "\n### Failed rows\n\n")
			limit := len(in.Failures)
			if limit > 50 {
				limit = 50
			}
			for _, f := range in.Failures[:limit] {
				fmt.Fprintf(&b, "- `%s` failed at %s: %s\n", f.Key, f.Step, f.Error)
			}
			if len(in.Failures) > limit {
				fmt.Fprintf(&b, "- ... and %d more (see ingestion_log.json)\n", len(in.Failures)-limit)
			}
		}
		fmt.Fprintf(&b, "\n")
	}

	if v := r.Validation; v != nil {
		fmt.Fprintf(&b, "## Validation\n\n")
		fmt.Fprintf(&b, "### Node counts\n\n")
		writeCounts(&b, v.NodeCounts)
		fmt.Fprintf(&b, "\n### Relationship counts\n\n")
		writeCounts(&b, v.RelationshipCounts)

		fmt.Fprintf(&b, "\n### Video count reconciliation\n\n")
		fmt.Fprintf(&b, "- Expected (rows - node-step failures): %d\n", v.ExpectedVideos-v.NodeFailures)
		fmt.Fprintf(&b, "- Actual: %d\n", v.ActualVideos)
		if v.CountMatch {
			fmt.Fprintf(&b, "- Status: PASSED\n")
		} else {
			fmt.Fprintf(&b, "- Status: MISMATCH (delta %d)\n", v.Delta)
		}

		fmt.Fprintf(&b, "\n### Sampled rows\n\n")
		fmt.Fprintf(&b, "- Checked: %d, incomplete: %d\n", sampleTotal(v), v.SampleMisses)
		countries := make([]string, 0, len(v.Samples))
		for c := range v.Samples {
			countries = append(countries, c)
		}
		sort.Strings(countries)
		for _, country := range countries {
			for _, s := range v.Samples[country] {
				if s.Found && len(s.MissingAttachments) == 0 {
					fmt.Fprintf(&b, "- [%s] `%s` OK (tags: %d)\n", country, s.Key, s.TagCount)
				} else {
					fmt.Fprintf(&b, "- [%s] `%s` MISSING: %s\n", country, s.Key, strings.Join(s.MissingAttachments, ", "))
				}
			}
		}

		fmt.Fprintf(&b, "\n### Duplicate check\n\n")
		if len(v.Duplicates) == 0 {
			fmt.Fprintf(&b, "- No duplicates: each (video_id, country) pair is unique\n")
		} else {
			fmt.Fprintf(&b, "- CORRECTNESS DEFECT: %d duplicated natural keys\n", len(v.Duplicates))
			for _, d := range v.Duplicates {
				fmt.Fprintf(&b, "  - %s / %s: %d nodes\n", d.VideoID, d.Country, d.Count)
			}
		}
	}
	return b.String()
}

func writeCounts(b *strings.Builder, counts map[string]int64) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "- %s: %d\n", k, counts[k])
	}
}

func sampleTotal(v *graph.Validation) int {
	total := 0
	for _, checks := range v.Samples {
		total += len(checks)
	}
	return total
}

// WriteTo lets callers write both artifacts and log the destinations.
func (r *RunReport) WriteTo(dir string, log *logger.Logger) error {
	jsonPath, err := r.WriteJSON(dir)
	if err != nil {
		return err
	}
	mdPath, err := r.WriteMarkdown(dir)
	if err != nil {
		return err
	}
	if log != nil {
		log.Info("reports written", "log", jsonPath, "report", mdPath)
	}
	return nil
}

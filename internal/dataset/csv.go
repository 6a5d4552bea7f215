package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yungbote/trendgraph/internal/platform/logger"
)

// ReadFile loads the cleaned trending dataset from a CSV file. Column order
// is taken from the header, so upstream column reshuffles are harmless.
// categoryNames backfills display names for rows whose category_name column
// is empty.
func ReadFile(path string, categoryNames map[int]string, log *logger.Logger) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := Read(f, categoryNames)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	if log != nil {
		log.Info("dataset loaded", "path", path, "rows", len(rows))
	}
	return rows, nil
}

func Read(r io.Reader, categoryNames map[int]string) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"video_id", "country"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []Row
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		tagsField := field(record, "tags_list")
		if strings.TrimSpace(tagsField) == "" {
			tagsField = field(record, "tags")
		}

		row := Row{
			VideoID:          field(record, "video_id"),
			Title:            field(record, "title"),
			ChannelTitle:     strings.TrimSpace(field(record, "channel_title")),
			CategoryID:       parseInt(field(record, "category_id")),
			CategoryName:     strings.TrimSpace(field(record, "category_name")),
			Views:            parseInt64(field(record, "views")),
			Likes:            parseFloat(field(record, "likes")),
			Dislikes:         parseFloat(field(record, "dislikes")),
			CommentCount:     parseInt64(field(record, "comment_count")),
			EngagementRatio:  parseFloat(field(record, "engagement_ratio")),
			LikeDislikeRatio: parseFloat(field(record, "like_dislike_ratio")),
			TrendingDate:     strings.TrimSpace(field(record, "trending_date")),
			PublishTime:      strings.TrimSpace(field(record, "publish_time")),
			DaysToTrend:      parseInt(field(record, "days_to_trend")),
			Country:          field(record, "country"),
			TrendingDay:      strings.TrimSpace(field(record, "trending_day_of_week")),
			Tags:             ParseTags(tagsField),
		}
		if err := row.normalize(categoryNames); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return int(parseFloat(s))
	}
	return v
}

func parseInt64(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return int64(parseFloat(s))
	}
	return v
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

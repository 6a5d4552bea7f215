package dataset

import (
	"strings"
	"testing"
)

const testHeader = "video_id,title,channel_title,category_id,category_name,views,likes,dislikes,comment_count,engagement_ratio,like_dislike_ratio,trending_date,publish_time,days_to_trend,country,trending_day_of_week,tags_list"

func readOne(t *testing.T, record string, categoryNames map[int]string) Row {
	t.Helper()
	rows, err := Read(strings.NewReader(testHeader+"\n"+record+"\n"), categoryNames)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	return rows[0]
}

func TestReadRow(t *testing.T) {
	row := readOne(t, `abc123,Some Title,Chan1,10,Music,1000,50,5,20,0.07,10.0,2018-01-05,2018-01-01 10:00:00,4,US,Friday,music|live`, nil)

	if row.VideoID != "abc123" || row.Country != "US" {
		t.Fatalf("unexpected key fields: %q %q", row.VideoID, row.Country)
	}
	if got := row.Key().UniqueID(); got != "abc123_US" {
		t.Fatalf("expected natural key abc123_US, got %q", got)
	}
	if row.Views != 1000 || row.CommentCount != 20 {
		t.Fatalf("unexpected counts: views=%d comments=%d", row.Views, row.CommentCount)
	}
	if row.EngagementRatio != 0.07 {
		t.Fatalf("unexpected engagement ratio %f", row.EngagementRatio)
	}
	if row.TrendingDay != "Friday" {
		t.Fatalf("unexpected trending day %q", row.TrendingDay)
	}
	if len(row.Tags) != 2 || row.Tags[0] != "music" || row.Tags[1] != "live" {
		t.Fatalf("unexpected tags %v", row.Tags)
	}
}

func TestReadMissingVideoIDFails(t *testing.T) {
	_, err := Read(strings.NewReader(testHeader+"\n"+`,T,Chan1,10,Music,1,0,0,0,0,0,2018-01-05,2018-01-01,1,US,Friday,`+"\n"), nil)
	if err == nil {
		t.Fatalf("expected error for missing video id")
	}
}

func TestReadMissingCountryFails(t *testing.T) {
	_, err := Read(strings.NewReader(testHeader+"\n"+`abc,T,Chan1,10,Music,1,0,0,0,0,0,2018-01-05,2018-01-01,1,,Friday,`+"\n"), nil)
	if err == nil {
		t.Fatalf("expected error for missing country")
	}
}

func TestReadUnknownCategoryFallback(t *testing.T) {
	row := readOne(t, `abc,T,Chan1,77,,1,0,0,0,0,0,2018-01-05,2018-01-01,1,US,Friday,`, nil)
	if row.CategoryName != "Unknown (77)" {
		t.Fatalf("expected synthetic category name, got %q", row.CategoryName)
	}
}

func TestReadCategoryNameFromTaxonomy(t *testing.T) {
	row := readOne(t, `abc,T,Chan1,77,,1,0,0,0,0,0,2018-01-05,2018-01-01,1,US,Friday,`, map[int]string{77: "Shorts"})
	if row.CategoryName != "Shorts" {
		t.Fatalf("expected taxonomy category name, got %q", row.CategoryName)
	}
}

func TestReadInvalidWeekdayDropped(t *testing.T) {
	row := readOne(t, `abc,T,Chan1,10,Music,1,0,0,0,0,0,2018-01-05,2018-01-01,1,US,Someday,`, nil)
	if row.TrendingDay != "" {
		t.Fatalf("expected invalid weekday dropped, got %q", row.TrendingDay)
	}
}

func TestReadTitleTruncated(t *testing.T) {
	long := strings.Repeat("x", 300)
	row := readOne(t, `abc,`+long+`,Chan1,10,Music,1,0,0,0,0,0,2018-01-05,2018-01-01,1,US,Friday,`, nil)
	if len(row.Title) != 200 {
		t.Fatalf("expected title truncated to 200, got %d", len(row.Title))
	}
}

func TestReadNegativeDaysToTrendClamped(t *testing.T) {
	row := readOne(t, `abc,T,Chan1,10,Music,1,0,0,0,0,0,2018-01-05,2018-01-01,-3,US,Friday,`, nil)
	if row.DaysToTrend != 0 {
		t.Fatalf("expected days_to_trend clamped to 0, got %d", row.DaysToTrend)
	}
}

func TestReadMissingRequiredColumn(t *testing.T) {
	_, err := Read(strings.NewReader("title,channel_title\nT,C\n"), nil)
	if err == nil {
		t.Fatalf("expected error for missing video_id column")
	}
}

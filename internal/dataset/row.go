package dataset

import (
	"fmt"
	"strings"
)

const maxTitleLen = 200

// Row is one (video, country) occurrence from the cleaned trending dataset.
// The upstream preprocessing stage guarantees deduplication on the
// (VideoID, Country) pair and non-null mandatory fields; everything here is
// already parsed into its final type.
type Row struct {
	VideoID          string
	Title            string
	ChannelTitle     string
	CategoryID       int
	CategoryName     string
	Views            int64
	Likes            float64
	Dislikes         float64
	CommentCount     int64
	EngagementRatio  float64
	LikeDislikeRatio float64
	TrendingDate     string
	PublishTime      string
	DaysToTrend      int
	Country          string
	TrendingDay      string
	Tags             []string
}

// VideoKey is the natural key of a video node. The same video id recurs
// once per country it trended in, so the pair is the uniqueness boundary.
type VideoKey struct {
	VideoID string
	Country string
}

func (k VideoKey) UniqueID() string {
	return k.VideoID + "_" + k.Country
}

func (k VideoKey) String() string {
	return k.UniqueID()
}

func (r Row) Key() VideoKey {
	return VideoKey{VideoID: r.VideoID, Country: r.Country}
}

var weekdays = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

// Weekdays returns the fixed day-of-week vocabulary in calendar order.
func Weekdays() []string {
	return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
}

// normalize fills derived defaults and enforces field constraints. Only a
// missing video id or country code is an error; every other irregularity
// degrades to a documented default.
func (r *Row) normalize(categoryNames map[int]string) error {
	r.VideoID = strings.TrimSpace(r.VideoID)
	r.Country = strings.TrimSpace(r.Country)
	if r.VideoID == "" {
		return fmt.Errorf("dataset: row missing video id")
	}
	if r.Country == "" {
		return fmt.Errorf("dataset: row %s missing country code", r.VideoID)
	}
	if len(r.Title) > maxTitleLen {
		runes := []rune(r.Title)
		if len(runes) > maxTitleLen {
			r.Title = string(runes[:maxTitleLen])
		}
	}
	if strings.TrimSpace(r.CategoryName) == "" {
		if name, ok := categoryNames[r.CategoryID]; ok {
			r.CategoryName = name
		} else {
			r.CategoryName = fmt.Sprintf("Unknown (%d)", r.CategoryID)
		}
	}
	if !weekdays[r.TrendingDay] {
		r.TrendingDay = ""
	}
	if r.DaysToTrend < 0 {
		r.DaysToTrend = 0
	}
	return nil
}

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// QueryExample is one ready-to-run analytics query shipped alongside the
// ingestion artifacts for the downstream query phase.
type QueryExample struct {
	Name  string
	Query string
}

var queryExamples = []QueryExample{
	{
		Name: "Top categories by video count",
		Query: `MATCH (v:Video)-[:VIDEO_BELONGS_TO_CATEGORY]->(c:Category)
RETURN c.category_name, count(v) AS video_count
ORDER BY video_count DESC LIMIT 10`,
	},
	{
		Name: "Top channels by average engagement",
		Query: `MATCH (ch:Channel)-[:CHANNEL_HAS_VIDEO]->(v:Video)
RETURN ch.channel_title, avg(v.engagement_ratio) AS avg_engagement
ORDER BY avg_engagement DESC LIMIT 10`,
	},
	{
		Name: "Videos by country",
		Query: `MATCH (v:Video)-[:VIDEO_TRENDING_IN_COUNTRY]->(co:Country)
RETURN co.country_code, count(v) AS video_count
ORDER BY video_count DESC`,
	},
	{
		Name: "Category performance by country",
		Query: `MATCH (v:Video)-[:VIDEO_BELONGS_TO_CATEGORY]->(c:Category),
      (v)-[:VIDEO_TRENDING_IN_COUNTRY]->(co:Country)
RETURN co.country_code, c.category_name, count(v) AS video_count,
       avg(v.views) AS avg_views, avg(v.engagement_ratio) AS avg_engagement
ORDER BY co.country_code, video_count DESC`,
	},
	{
		Name: "Day-of-week trending patterns",
		Query: `MATCH (v:Video)-[:VIDEO_TRENDING_ON]->(d:Day)
RETURN d.day_name, count(v) AS video_count,
       avg(v.views) AS avg_views, avg(v.engagement_ratio) AS avg_engagement
ORDER BY video_count DESC`,
	},
	{
		Name: "Cross-country trending videos",
		Query: `MATCH (v:Video)-[:VIDEO_TRENDING_IN_COUNTRY]->(co:Country)
WITH v.video_id AS video_id, collect(co.country_code) AS countries
WHERE size(countries) > 1
RETURN video_id, countries, size(countries) AS country_count
ORDER BY country_count DESC LIMIT 20`,
	},
}

// WriteQueryExamples emits the query catalog next to the other artifacts.
func WriteQueryExamples(dir string) (string, error) {
	path := filepath.Join(dir, "query_examples.cypher")
	var b strings.Builder
	for i, q := range queryExamples {
		fmt.Fprintf(&b, "// %d. %s\n%s;\n\n", i+1, q.Name, q.Query)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("report: write %s: %w", path, err)
	}
	return path, nil
}

package graph

// Every Cypher statement the engine issues lives here, one named template
// per operation, fully parameterized. Call sites never assemble query
// strings.

// Node labels and relationship types.
const (
	LabelVideo    = "Video"
	LabelChannel  = "Channel"
	LabelCategory = "Category"
	LabelCountry  = "Country"
	LabelTag      = "Tag"
	LabelDay      = "Day"

	RelBelongsToCategory = "VIDEO_BELONGS_TO_CATEGORY"
	RelPublishedBy       = "VIDEO_PUBLISHED_BY_CHANNEL"
	RelChannelHasVideo   = "CHANNEL_HAS_VIDEO"
	RelTrendingIn        = "VIDEO_TRENDING_IN_COUNTRY"
	RelTrendingOn        = "VIDEO_TRENDING_ON"
	RelHasTag            = "VIDEO_HAS_TAG"
)

// Schema bootstrap. Uniqueness constraints cover every natural key; the
// plain indexes back the downstream analytics queries.
var schemaStatements = []string{
	`CREATE CONSTRAINT video_unique_id_unique IF NOT EXISTS FOR (v:Video) REQUIRE v.video_unique_id IS UNIQUE`,
	`CREATE CONSTRAINT channel_title_unique IF NOT EXISTS FOR (ch:Channel) REQUIRE ch.channel_title IS UNIQUE`,
	`CREATE CONSTRAINT category_id_unique IF NOT EXISTS FOR (c:Category) REQUIRE c.category_id IS UNIQUE`,
	`CREATE CONSTRAINT country_code_unique IF NOT EXISTS FOR (co:Country) REQUIRE co.country_code IS UNIQUE`,
	`CREATE CONSTRAINT tag_name_unique IF NOT EXISTS FOR (t:Tag) REQUIRE t.tag_name IS UNIQUE`,
	`CREATE CONSTRAINT day_name_unique IF NOT EXISTS FOR (d:Day) REQUIRE d.day_name IS UNIQUE`,
	`CREATE INDEX video_id_index IF NOT EXISTS FOR (v:Video) ON (v.video_id)`,
	`CREATE INDEX video_trending_date_index IF NOT EXISTS FOR (v:Video) ON (v.trending_date)`,
	`CREATE INDEX video_views_index IF NOT EXISTS FOR (v:Video) ON (v.views)`,
	`CREATE INDEX video_engagement_index IF NOT EXISTS FOR (v:Video) ON (v.engagement_ratio)`,
	`CREATE INDEX channel_total_views_index IF NOT EXISTS FOR (ch:Channel) ON (ch.total_views)`,
	`CREATE INDEX category_name_index IF NOT EXISTS FOR (c:Category) ON (c.category_name)`,
}

const cypherClearAll = `MATCH (n) DETACH DELETE n`

// Reference and aggregate entity loaders.
const (
	cypherUpsertCountries = `
UNWIND $rows AS r
MERGE (co:Country {country_code: r.country_code})
SET co.country_name = r.country_name`

	cypherUpsertCategories = `
UNWIND $rows AS r
MERGE (c:Category {category_id: r.category_id})
SET c.category_name = r.category_name`

	cypherUpsertChannels = `
UNWIND $rows AS r
MERGE (ch:Channel {channel_title: r.channel_title})
SET ch.total_views = r.total_views,
    ch.avg_engagement_ratio = r.avg_engagement_ratio,
    ch.video_count = r.video_count`

	cypherUpsertTags = `
UNWIND $rows AS r
MERGE (t:Tag {tag_name: r.tag_name})`

	cypherUpsertDays = `
UNWIND $rows AS r
MERGE (d:Day {day_name: r.day_name})`
)

// Per-row write path. The video upsert stands alone so a later attachment
// failure leaves the node's scalar properties in place. Attachment
// statements MATCH their endpoints and report how many rows they touched;
// zero means the referenced entity is absent.
const (
	cypherUpsertVideo = `
MERGE (v:Video {video_unique_id: $video_unique_id})
SET v.video_id = $video_id,
    v.title = $title,
    v.views = $views,
    v.likes = $likes,
    v.dislikes = $dislikes,
    v.comment_count = $comment_count,
    v.engagement_ratio = $engagement_ratio,
    v.like_dislike_ratio = $like_dislike_ratio,
    v.trending_date = $trending_date,
    v.publish_time = $publish_time,
    v.days_to_trend = $days_to_trend,
    v.country = $country_code`

	cypherAttachCategory = `
MATCH (v:Video {video_unique_id: $video_unique_id})
MATCH (c:Category {category_id: $category_id})
MERGE (v)-[:VIDEO_BELONGS_TO_CATEGORY]->(c)
RETURN count(*) AS attached`

	cypherAttachChannel = `
MATCH (v:Video {video_unique_id: $video_unique_id})
MATCH (ch:Channel {channel_title: $channel_title})
MERGE (v)-[:VIDEO_PUBLISHED_BY_CHANNEL]->(ch)
MERGE (ch)-[:CHANNEL_HAS_VIDEO]->(v)
RETURN count(*) AS attached`

	cypherAttachCountry = `
MATCH (v:Video {video_unique_id: $video_unique_id})
MATCH (co:Country {country_code: $country_code})
MERGE (v)-[:VIDEO_TRENDING_IN_COUNTRY]->(co)
RETURN count(*) AS attached`

	cypherAttachDay = `
MATCH (v:Video {video_unique_id: $video_unique_id})
MATCH (d:Day {day_name: $day_name})
MERGE (v)-[:VIDEO_TRENDING_ON]->(d)
RETURN count(*) AS attached`

	cypherAttachTag = `
MATCH (v:Video {video_unique_id: $video_unique_id})
MATCH (t:Tag {tag_name: $tag_name})
MERGE (v)-[:VIDEO_HAS_TAG]->(t)
RETURN count(*) AS attached`
)

// Reconciliation. Labels and relationship types cannot be parameters in
// Cypher, so the count statements are written out per type.
var nodeCountStatements = map[string]string{
	LabelVideo:    `MATCH (n:Video) RETURN count(n) AS count`,
	LabelChannel:  `MATCH (n:Channel) RETURN count(n) AS count`,
	LabelCategory: `MATCH (n:Category) RETURN count(n) AS count`,
	LabelCountry:  `MATCH (n:Country) RETURN count(n) AS count`,
	LabelTag:      `MATCH (n:Tag) RETURN count(n) AS count`,
	LabelDay:      `MATCH (n:Day) RETURN count(n) AS count`,
}

var relCountStatements = map[string]string{
	RelBelongsToCategory: `MATCH ()-[r:VIDEO_BELONGS_TO_CATEGORY]->() RETURN count(r) AS count`,
	RelPublishedBy:       `MATCH ()-[r:VIDEO_PUBLISHED_BY_CHANNEL]->() RETURN count(r) AS count`,
	RelChannelHasVideo:   `MATCH ()-[r:CHANNEL_HAS_VIDEO]->() RETURN count(r) AS count`,
	RelTrendingIn:        `MATCH ()-[r:VIDEO_TRENDING_IN_COUNTRY]->() RETURN count(r) AS count`,
	RelTrendingOn:        `MATCH ()-[r:VIDEO_TRENDING_ON]->() RETURN count(r) AS count`,
	RelHasTag:            `MATCH ()-[r:VIDEO_HAS_TAG]->() RETURN count(r) AS count`,
}

const cypherFetchVideoNeighbors = `
MATCH (v:Video {video_unique_id: $video_unique_id})
OPTIONAL MATCH (v)-[:VIDEO_BELONGS_TO_CATEGORY]->(c:Category)
OPTIONAL MATCH (v)-[:VIDEO_PUBLISHED_BY_CHANNEL]->(ch:Channel)
OPTIONAL MATCH (v)-[:VIDEO_TRENDING_IN_COUNTRY]->(co:Country)
OPTIONAL MATCH (v)-[:VIDEO_TRENDING_ON]->(d:Day)
OPTIONAL MATCH (v)-[:VIDEO_HAS_TAG]->(t:Tag)
RETURN v.video_id AS video_id,
       v.title AS title,
       c.category_name AS category,
       ch.channel_title AS channel,
       co.country_code AS country,
       d.day_name AS day,
       count(DISTINCT t) AS tag_count`

const cypherDuplicateVideos = `
MATCH (v:Video)
WITH v.video_id AS video_id, v.country AS country, count(*) AS count
WHERE count > 1
RETURN video_id, country, count
ORDER BY count DESC
LIMIT 10`

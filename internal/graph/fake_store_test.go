package graph

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// fakeStore emulates the store-side semantics of every statement in
// cypher.go: MERGE-by-key upserts, MATCH-then-MERGE attachments that report
// zero when an endpoint is missing, and the count/sample/duplicate reads.
type fakeStore struct {
	mu         sync.Mutex
	videos     map[string]map[string]any
	channels   map[string]map[string]any
	categories map[int64]string
	countries  map[string]string
	tags       map[string]bool
	days       map[string]bool
	rels       map[string]map[string]bool
	schemaRuns int
	clearRuns  int

	// failHook lets tests inject a store error for specific statements.
	failHook func(query string, params map[string]any) error
}

func newFakeStore() *fakeStore {
	f := &fakeStore{}
	f.reset()
	return f
}

func (f *fakeStore) reset() {
	f.videos = map[string]map[string]any{}
	f.channels = map[string]map[string]any{}
	f.categories = map[int64]string{}
	f.countries = map[string]string{}
	f.tags = map[string]bool{}
	f.days = map[string]bool{}
	f.rels = map[string]map[string]bool{}
}

func (f *fakeStore) addRel(relType, from, to string) {
	if f.rels[relType] == nil {
		f.rels[relType] = map[string]bool{}
	}
	f.rels[relType][from+"->"+to] = true
}

func (f *fakeStore) relTarget(relType, from string) (string, bool) {
	for edge := range f.rels[relType] {
		if strings.HasPrefix(edge, from+"->") {
			return strings.TrimPrefix(edge, from+"->"), true
		}
	}
	return "", false
}

func (f *fakeStore) tagCount(from string) int64 {
	var n int64
	for edge := range f.rels[RelHasTag] {
		if strings.HasPrefix(edge, from+"->") {
			n++
		}
	}
	return n
}

func attached(n int64) []map[string]any {
	return []map[string]any{{"attached": n}}
}

func countRow(n int64) []map[string]any {
	return []map[string]any{{"count": n}}
}

func (f *fakeStore) Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failHook != nil {
		if err := f.failHook(query, params); err != nil {
			return nil, err
		}
	}

	if strings.HasPrefix(strings.TrimSpace(query), "CREATE ") {
		f.schemaRuns++
		return nil, nil
	}

	switch query {
	case cypherClearAll:
		f.clearRuns++
		f.reset()
		return nil, nil

	case cypherUpsertCountries:
		for _, r := range params["rows"].([]map[string]any) {
			f.countries[r["country_code"].(string)] = r["country_name"].(string)
		}
		return nil, nil

	case cypherUpsertCategories:
		for _, r := range params["rows"].([]map[string]any) {
			f.categories[r["category_id"].(int64)] = r["category_name"].(string)
		}
		return nil, nil

	case cypherUpsertChannels:
		for _, r := range params["rows"].([]map[string]any) {
			f.channels[r["channel_title"].(string)] = r
		}
		return nil, nil

	case cypherUpsertTags:
		for _, r := range params["rows"].([]map[string]any) {
			f.tags[r["tag_name"].(string)] = true
		}
		return nil, nil

	case cypherUpsertDays:
		for _, r := range params["rows"].([]map[string]any) {
			f.days[r["day_name"].(string)] = true
		}
		return nil, nil

	case cypherUpsertVideo:
		id := params["video_unique_id"].(string)
		props := make(map[string]any, len(params))
		for k, v := range params {
			props[k] = v
		}
		f.videos[id] = props
		return nil, nil

	case cypherAttachCategory:
		id := params["video_unique_id"].(string)
		catID := params["category_id"].(int64)
		if _, ok := f.videos[id]; !ok {
			return attached(0), nil
		}
		if _, ok := f.categories[catID]; !ok {
			return attached(0), nil
		}
		f.addRel(RelBelongsToCategory, id, fmt.Sprint(catID))
		return attached(1), nil

	case cypherAttachChannel:
		id := params["video_unique_id"].(string)
		title := params["channel_title"].(string)
		if _, ok := f.videos[id]; !ok {
			return attached(0), nil
		}
		if _, ok := f.channels[title]; !ok {
			return attached(0), nil
		}
		f.addRel(RelPublishedBy, id, title)
		f.addRel(RelChannelHasVideo, title, id)
		return attached(1), nil

	case cypherAttachCountry:
		id := params["video_unique_id"].(string)
		code := params["country_code"].(string)
		if _, ok := f.videos[id]; !ok {
			return attached(0), nil
		}
		if _, ok := f.countries[code]; !ok {
			return attached(0), nil
		}
		f.addRel(RelTrendingIn, id, code)
		return attached(1), nil

	case cypherAttachDay:
		id := params["video_unique_id"].(string)
		day := params["day_name"].(string)
		if _, ok := f.videos[id]; !ok {
			return attached(0), nil
		}
		if !f.days[day] {
			return attached(0), nil
		}
		f.addRel(RelTrendingOn, id, day)
		return attached(1), nil

	case cypherAttachTag:
		id := params["video_unique_id"].(string)
		tag := params["tag_name"].(string)
		if _, ok := f.videos[id]; !ok {
			return attached(0), nil
		}
		if !f.tags[tag] {
			return attached(0), nil
		}
		f.addRel(RelHasTag, id, tag)
		return attached(1), nil

	case cypherFetchVideoNeighbors:
		id := params["video_unique_id"].(string)
		v, ok := f.videos[id]
		if !ok {
			return nil, nil
		}
		row := map[string]any{
			"video_id":  v["video_id"],
			"title":     v["title"],
			"tag_count": f.tagCount(id),
		}
		if catID, ok := f.relTarget(RelBelongsToCategory, id); ok {
			var parsed int64
			fmt.Sscan(catID, &parsed)
			row["category"] = f.categories[parsed]
		}
		if ch, ok := f.relTarget(RelPublishedBy, id); ok {
			row["channel"] = ch
		}
		if co, ok := f.relTarget(RelTrendingIn, id); ok {
			row["country"] = co
		}
		if d, ok := f.relTarget(RelTrendingOn, id); ok {
			row["day"] = d
		}
		return []map[string]any{row}, nil

	case cypherDuplicateVideos:
		groups := map[string]int64{}
		for _, v := range f.videos {
			key := fmt.Sprintf("%s|%s", v["video_id"], v["country_code"])
			groups[key]++
		}
		var out []map[string]any
		for key, n := range groups {
			if n <= 1 {
				continue
			}
			parts := strings.SplitN(key, "|", 2)
			out = append(out, map[string]any{"video_id": parts[0], "country": parts[1], "count": n})
		}
		return out, nil
	}

	if stmt, ok := matchCountStatement(query); ok {
		return countRow(f.countFor(stmt)), nil
	}
	return nil, fmt.Errorf("fakeStore: unrecognized statement: %s", query)
}

func matchCountStatement(query string) (string, bool) {
	for name, stmt := range nodeCountStatements {
		if stmt == query {
			return name, true
		}
	}
	for name, stmt := range relCountStatements {
		if stmt == query {
			return name, true
		}
	}
	return "", false
}

func (f *fakeStore) countFor(name string) int64 {
	switch name {
	case LabelVideo:
		return int64(len(f.videos))
	case LabelChannel:
		return int64(len(f.channels))
	case LabelCategory:
		return int64(len(f.categories))
	case LabelCountry:
		return int64(len(f.countries))
	case LabelTag:
		return int64(len(f.tags))
	case LabelDay:
		return int64(len(f.days))
	default:
		return int64(len(f.rels[name]))
	}
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/trendgraph/internal/platform/envutil"
	"github.com/yungbote/trendgraph/internal/platform/neo4jdb"
)

// Config carries everything a single ingestion run needs. Connection
// settings come from the environment; the taxonomy (category and country
// display names) can be overridden by a YAML file.
type Config struct {
	Neo4j neo4jdb.Config

	InputPath       string
	OutputDir       string
	BatchSize       int
	Workers         int
	SampleSize      int
	ClearBeforeLoad bool

	Taxonomy Taxonomy
}

type Taxonomy struct {
	CategoryNames map[int]string    `yaml:"category_names"`
	CountryNames  map[string]string `yaml:"country_names"`
}

func defaultTaxonomy() Taxonomy {
	return Taxonomy{
		CategoryNames: map[int]string{},
		CountryNames: map[string]string{
			"US": "United States",
			"GB": "Great Britain",
			"CA": "Canada",
			"IN": "India",
		},
	}
}

func FromEnv() Config {
	return Config{
		Neo4j: neo4jdb.Config{
			URI:         envutil.String("NEO4J_URI", ""),
			User:        envutil.String("NEO4J_USER", "neo4j"),
			Password:    envutil.String("NEO4J_PASSWORD", ""),
			Database:    envutil.String("NEO4J_DATABASE", ""),
			Timeout:     envutil.Duration("NEO4J_TIMEOUT", 10*time.Second),
			MaxPoolSize: envutil.Int("NEO4J_MAX_POOL_SIZE", 50),
		},
		InputPath:       envutil.String("TRENDGRAPH_INPUT", "youtube_trending_cleaned.csv"),
		OutputDir:       envutil.String("TRENDGRAPH_OUTPUT_DIR", "."),
		BatchSize:       envutil.Int("TRENDGRAPH_BATCH_SIZE", 1000),
		Workers:         envutil.Int("TRENDGRAPH_WORKERS", 8),
		SampleSize:      envutil.Int("TRENDGRAPH_SAMPLE_SIZE", 5),
		ClearBeforeLoad: envutil.Bool("TRENDGRAPH_CLEAR_BEFORE_LOAD", true),
		Taxonomy:        defaultTaxonomy(),
	}
}

// LoadTaxonomy merges a YAML taxonomy file over the built-in defaults.
// Entries present in the file win; absent maps keep their defaults.
func (c *Config) LoadTaxonomy(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read taxonomy %s: %w", path, err)
	}
	var t Taxonomy
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return fmt.Errorf("config: parse taxonomy %s: %w", path, err)
	}
	for id, name := range t.CategoryNames {
		c.Taxonomy.CategoryNames[id] = name
	}
	for code, name := range t.CountryNames {
		c.Taxonomy.CountryNames[code] = name
	}
	return nil
}

func (c Config) Validate() error {
	if c.Neo4j.URI == "" {
		return fmt.Errorf("config: NEO4J_URI is required")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("config: batch size must be positive, got %d", c.BatchSize)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("config: worker count must be positive, got %d", c.Workers)
	}
	return nil
}

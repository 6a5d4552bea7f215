package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTaxonomyMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.yaml")
	content := `
category_names:
  10: Music
  24: Entertainment
country_names:
  DE: Germany
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write taxonomy: %v", err)
	}

	cfg := FromEnv()
	if err := cfg.LoadTaxonomy(path); err != nil {
		t.Fatalf("load taxonomy: %v", err)
	}
	if cfg.Taxonomy.CategoryNames[10] != "Music" {
		t.Fatalf("expected category 10 mapped, got %q", cfg.Taxonomy.CategoryNames[10])
	}
	if cfg.Taxonomy.CountryNames["DE"] != "Germany" {
		t.Fatalf("expected DE mapped, got %q", cfg.Taxonomy.CountryNames["DE"])
	}
	// Defaults survive the merge.
	if cfg.Taxonomy.CountryNames["US"] != "United States" {
		t.Fatalf("expected default US mapping preserved, got %q", cfg.Taxonomy.CountryNames["US"])
	}
}

func TestLoadTaxonomyMissingFile(t *testing.T) {
	cfg := FromEnv()
	if err := cfg.LoadTaxonomy(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing taxonomy file")
	}
}

func TestValidate(t *testing.T) {
	cfg := FromEnv()
	cfg.Neo4j.URI = "neo4j://localhost:7687"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cfg.BatchSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for zero batch size")
	}

	cfg = FromEnv()
	cfg.Neo4j.URI = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing uri")
	}
}

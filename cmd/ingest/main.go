package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yungbote/trendgraph/internal/config"
	"github.com/yungbote/trendgraph/internal/dataset"
	"github.com/yungbote/trendgraph/internal/graph"
	"github.com/yungbote/trendgraph/internal/platform/logger"
	"github.com/yungbote/trendgraph/internal/platform/neo4jdb"
	"github.com/yungbote/trendgraph/internal/report"
)

func main() {
	input := flag.String("input", "", "path to the cleaned trending dataset CSV (overrides TRENDGRAPH_INPUT)")
	taxonomy := flag.String("taxonomy", "", "optional YAML file with category/country display names")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := config.FromEnv()
	if *input != "" {
		cfg.InputPath = *input
	}
	if *taxonomy != "" {
		if err := cfg.LoadTaxonomy(*taxonomy); err != nil {
			log.Error("taxonomy load failed", "error", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("ingestion run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	rows, err := dataset.ReadFile(cfg.InputPath, cfg.Taxonomy.CategoryNames, log)
	if err != nil {
		return err
	}

	// Connectivity is the only failure class that aborts the run.
	client, err := neo4jdb.NewClient(cfg.Neo4j, log)
	if err != nil {
		return err
	}
	defer client.Close(context.Background())
	log.Info("connected to graph store", "uri", cfg.Neo4j.URI, "database", cfg.Neo4j.Database)

	startedAt := time.Now().UTC()
	rep := report.New(cfg.InputPath, len(rows), cfg.BatchSize, cfg.Workers, startedAt)

	if cfg.ClearBeforeLoad {
		if err := graph.ClearAll(ctx, client, log); err != nil {
			return err
		}
	}
	graph.EnsureSchema(ctx, client, log)

	// Reference, aggregate and tag entities must be durably loaded before
	// the batch driver starts attaching relationships to them.
	if _, err := graph.LoadCountries(ctx, client, log, rows, cfg.Taxonomy.CountryNames); err != nil {
		return err
	}
	if _, err := graph.LoadCategories(ctx, client, log, rows); err != nil {
		return err
	}
	if _, err := graph.LoadChannels(ctx, client, log, graph.ComputeChannelStats(rows)); err != nil {
		return err
	}
	if _, err := graph.LoadTags(ctx, client, log, graph.CollectTags(rows)); err != nil {
		return err
	}
	if _, err := graph.LoadDays(ctx, client, log); err != nil {
		return err
	}

	driver := graph.NewDriver(client, log, cfg.BatchSize, cfg.Workers)
	result := driver.Ingest(ctx, rows)

	reconciler := graph.NewReconciler(client, log, cfg.SampleSize, time.Now().UnixNano())
	validation, err := reconciler.Reconcile(context.WithoutCancel(ctx), rows, result)
	if err != nil {
		log.Warn("reconciliation incomplete", "error", err)
	}

	rep.Finish(result, validation)
	if err := rep.WriteTo(cfg.OutputDir, log); err != nil {
		return err
	}
	if path, err := report.WriteQueryExamples(cfg.OutputDir); err != nil {
		log.Warn("query examples not written", "error", err)
	} else {
		log.Info("query examples written", "path", path)
	}

	log.Info("ingestion run complete",
		"rows", len(rows),
		"succeeded", result.Succeeded,
		"failed", len(result.Failures),
		"elapsed", rep.ElapsedSeconds)
	return nil
}

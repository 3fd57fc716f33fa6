// Command migrate applies the Postgres and ClickHouse schemas. Every
// statement is idempotent, so re-running against a live database is safe.
package main

import (
	"context"
	"flag"
	"fmt"

	"fundline/internal/adapters/clickhouse"
	"fundline/internal/adapters/config"
	"fundline/internal/adapters/postgres"
	"fundline/pkg/logger"
)

var postgresStatements = []string{
	`CREATE TABLE IF NOT EXISTS leads (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		loan_type TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY,
		session_id TEXT NOT NULL UNIQUE,
		loan_type TEXT NOT NULL DEFAULT '',
		data JSONB NOT NULL DEFAULT '{}',
		score INT NOT NULL DEFAULT 0,
		probability TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_created_at ON applications (created_at DESC)`,
}

var clickhouseStatements = []string{
	`CREATE TABLE IF NOT EXISTS interaction_events (
		session_id String,
		step LowCardinality(String),
		loan_type LowCardinality(String),
		event_type LowCardinality(String),
		timestamp DateTime
	) ENGINE = MergeTree()
	ORDER BY (step, timestamp)
	TTL timestamp + INTERVAL 1 YEAR`,
}

func main() {
	dryRun := flag.Bool("dry-run", false, "Print statements without executing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infow("Starting migration", "dry_run", *dryRun)

	if *dryRun {
		for _, stmt := range postgresStatements {
			fmt.Println("-- postgres")
			fmt.Println(stmt + ";")
		}
		for _, stmt := range clickhouseStatements {
			fmt.Println("-- clickhouse")
			fmt.Println(stmt + ";")
		}
		return
	}

	ctx := context.Background()

	pgClient, err := postgres.NewClient(cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pgClient.Close()

	for _, stmt := range postgresStatements {
		if _, err := pgClient.DB().ExecContext(ctx, stmt); err != nil {
			log.Fatalf("Postgres migration failed: %v", err)
		}
	}
	log.Infof("Applied %d Postgres statements", len(postgresStatements))

	chClient, err := clickhouse.NewClient(cfg.ClickHouse)
	if err != nil {
		log.Fatalf("Failed to connect to ClickHouse: %v", err)
	}
	defer chClient.Close()

	for _, stmt := range clickhouseStatements {
		if err := chClient.Exec(ctx, stmt); err != nil {
			log.Fatalf("ClickHouse migration failed: %v", err)
		}
	}
	log.Infof("Applied %d ClickHouse statements", len(clickhouseStatements))

	log.Info("Migration complete")
}

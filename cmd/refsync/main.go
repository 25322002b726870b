package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"refsync/internal/config"
	"refsync/internal/mapping"
	"refsync/internal/platform/notion"
	"refsync/internal/platform/zotero"
	"refsync/internal/syncer"
)

func main() {
	loadEnvFiles()

	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	source := zotero.NewClient(cfg.Zotero.APIKey, cfg.Zotero.LibraryType, cfg.Zotero.LibraryID)
	schema := mapping.DefaultSchema()
	dest := syncer.NewNotionWriter(notion.NewClient(cfg.Notion.Token), cfg.Notion.DatabaseID, schema)

	service := syncer.NewService(source, dest, schema, cfg.Sync.Limit)

	report, err := service.Run(context.Background())
	if err != nil {
		log.Fatalf("sync failed after %d of %d records: %v", report.Written(), report.Fetched, err)
	}

	log.Printf("synced %d records (%d created, %d updated, %d unchanged) in %s",
		report.Fetched, report.Created, report.Updated, report.Unchanged,
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func configPath() string {
	if v := os.Getenv("REFSYNC_CONFIG"); v != "" {
		return v
	}
	return "config.ini"
}

package syncer

import (
	"context"
	"fmt"

	"refsync/internal/bib"
	"refsync/internal/mapping"
	"refsync/internal/platform/notion"
)

// NotionWriter upserts pages into a Notion database, keyed by citation key.
type NotionWriter struct {
	client          *notion.Client
	databaseID      string
	keyProperty     string
	versionProperty string
}

func NewNotionWriter(client *notion.Client, databaseID string, schema mapping.Schema) *NotionWriter {
	return &NotionWriter{
		client:          client,
		databaseID:      databaseID,
		keyProperty:     schema.CiteKey,
		versionProperty: schema.ZoteroVersion,
	}
}

// Write queries the database for the page with this citation key and branches:
// absent creates, present with a stale stored version updates, present with an
// equal stored version issues no write at all. The service offers no atomic
// upsert, so the query-then-branch can race with a concurrent run against the
// same key; that is an accepted limitation of this tool.
func (w *NotionWriter) Write(ctx context.Context, page mapping.Page) (bib.Outcome, error) {
	match, err := w.client.QueryByTitle(ctx, w.databaseID, w.keyProperty, page.CiteKey)
	if err != nil {
		return "", fmt.Errorf("query %q: %w", page.CiteKey, err)
	}

	if match == nil {
		if err := w.client.CreatePage(ctx, w.databaseID, page.Properties, page.Children); err != nil {
			return "", fmt.Errorf("create %q: %w", page.CiteKey, err)
		}
		return bib.OutcomeCreated, nil
	}

	if stored, ok := match.Number(w.versionProperty); ok && stored == page.Version {
		return bib.OutcomeUnchanged, nil
	}

	if err := w.client.UpdatePage(ctx, match.ID, page.Properties); err != nil {
		return "", fmt.Errorf("update %q: %w", page.CiteKey, err)
	}
	return bib.OutcomeUpdated, nil
}

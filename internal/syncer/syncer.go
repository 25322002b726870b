package syncer

import (
	"context"
	"fmt"
	"log"
	"time"

	"refsync/internal/bib"
	"refsync/internal/mapping"
)

// Report accounts for one sync run.
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Fetched    int
	Created    int
	Updated    int
	Unchanged  int
}

// Written is the number of records that reached the destination.
func (r Report) Written() int {
	return r.Created + r.Updated + r.Unchanged
}

// Service runs the one-way sync: fetch every source record, then map and
// write each in source order. Strictly sequential.
type Service struct {
	source Source
	dest   Destination
	schema mapping.Schema
	limit  int
}

func NewService(source Source, dest Destination, schema mapping.Schema, limit int) *Service {
	return &Service{source: source, dest: dest, schema: schema, limit: limit}
}

// Run stops at the first error and propagates it wrapped with stage context.
// Writes made before the failure stay committed; a rerun is safe because the
// destination writer upserts by citation key. The partial Report is returned
// alongside the error.
func (s *Service) Run(ctx context.Context) (Report, error) {
	report := Report{StartedAt: time.Now()}

	records, err := s.source.Records(ctx, s.limit)
	if err != nil {
		report.FinishedAt = time.Now()
		return report, fmt.Errorf("fetch source records: %w", err)
	}
	report.Fetched = len(records)

	for i, rec := range records {
		page := mapping.MapRecord(rec, s.schema)

		outcome, err := s.dest.Write(ctx, page)
		if err != nil {
			report.FinishedAt = time.Now()
			return report, fmt.Errorf("write record %d of %d: %w", i+1, len(records), err)
		}

		switch outcome {
		case bib.OutcomeCreated:
			report.Created++
		case bib.OutcomeUpdated:
			report.Updated++
		case bib.OutcomeUnchanged:
			report.Unchanged++
		}
		log.Printf("%s: %s", rec.CiteKey, outcome)
	}

	report.FinishedAt = time.Now()
	return report, nil
}

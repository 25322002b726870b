package syncer

import (
	"context"

	"refsync/internal/bib"
	"refsync/internal/mapping"
)

// Source reads all records from the bibliographic service, in service order.
type Source interface {
	Records(ctx context.Context, limit int) ([]bib.Record, error)
}

// Destination writes one mapped page, creating or updating as needed.
type Destination interface {
	Write(ctx context.Context, page mapping.Page) (bib.Outcome, error)
}

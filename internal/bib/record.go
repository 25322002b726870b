package bib

// Record is one bibliographic entry read from the source library.
// Records are read-only to this system; the source service owns them.
type Record struct {
	// CiteKey is the stable citation key used to match records across
	// systems. It is the sole upsert key.
	CiteKey string
	// Key is the source item key, Version its monotonically increasing
	// revision counter.
	Key     string
	Version int

	Title    string
	Authors  []string
	Tags     []string
	Year     *int
	Date     string // ISO publication date, empty when unknown
	URL      string
	Link     string // web-library link for the item
	Abstract string

	DateAdded    string
	DateModified string
}

// Outcome reports what a destination write did for one record.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
)

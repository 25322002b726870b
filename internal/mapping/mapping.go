// Package mapping turns source records into destination page property sets.
// Everything here is pure: no I/O, no shared state, identical input yields
// identical output.
package mapping

import (
	"refsync/internal/bib"
	"refsync/internal/platform/notion"
)

// Schema names the destination database properties the mapper writes to.
type Schema struct {
	CiteKey         string // title
	Title           string // rich_text
	Authors         string // multi_select
	Tags            string // multi_select
	Year            string // number
	PublicationDate string // date
	URL             string // url

	ZoteroKey     string // rich_text
	ZoteroVersion string // number
	ZoteroLink    string // url
	DateAdded     string // date
	DateModified  string // date
}

func DefaultSchema() Schema {
	return Schema{
		CiteKey:         "Citation Key",
		Title:           "Title",
		Authors:         "Authors",
		Tags:            "Tags",
		Year:            "Year",
		PublicationDate: "Publication Date",
		URL:             "URL",
		ZoteroKey:       "Zotero: Key",
		ZoteroVersion:   "Zotero: Version",
		ZoteroLink:      "Zotero: Link",
		DateAdded:       "Zotero: Date Added",
		DateModified:    "Zotero: Date Modified",
	}
}

// Page is one mapped destination page, ready to be written.
type Page struct {
	CiteKey    string
	Version    int
	Properties notion.Properties
	Children   []notion.Block
}

// MapRecord maps one record onto the destination schema. Optional source
// fields (year, dates, URLs) are omitted from the property set entirely when
// absent, never written as zero values. Author and tag order is preserved.
func MapRecord(rec bib.Record, schema Schema) Page {
	props := notion.Properties{
		schema.CiteKey:       notion.NewTitle(rec.CiteKey),
		schema.Title:         notion.NewRichText(rec.Title),
		schema.Authors:       notion.NewMultiSelect(rec.Authors),
		schema.Tags:          notion.NewMultiSelect(rec.Tags),
		schema.ZoteroKey:     notion.NewRichText(rec.Key),
		schema.ZoteroVersion: notion.NewNumber(float64(rec.Version)),
	}

	if rec.Year != nil {
		props[schema.Year] = notion.NewNumber(float64(*rec.Year))
	}
	if rec.Date != "" {
		props[schema.PublicationDate] = notion.NewDate(rec.Date)
	}
	if rec.URL != "" {
		props[schema.URL] = notion.NewURL(rec.URL)
	}
	if rec.Link != "" {
		props[schema.ZoteroLink] = notion.NewURL(rec.Link)
	}
	if rec.DateAdded != "" {
		props[schema.DateAdded] = notion.NewDate(rec.DateAdded)
	}
	if rec.DateModified != "" {
		props[schema.DateModified] = notion.NewDate(rec.DateModified)
	}

	var children []notion.Block
	if rec.Abstract != "" {
		children = []notion.Block{
			notion.NewHeading2("Abstract"),
			notion.NewParagraph(rec.Abstract),
		}
	}

	return Page{
		CiteKey:    rec.CiteKey,
		Version:    rec.Version,
		Properties: props,
		Children:   children,
	}
}

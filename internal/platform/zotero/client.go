package zotero

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/time/rate"

	"refsync/internal/bib"
)

const apiVersion = "3"

// Client is a read-only client for the Zotero Web API v3.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	libraryType string
	libraryID   int
	limiter     *rate.Limiter
}

// NewClient returns a client for one library. libraryType is "user" or
// "group".
func NewClient(apiKey, libraryType string, libraryID int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     "https://api.zotero.org",
		apiKey:      apiKey,
		libraryType: libraryType,
		libraryID:   libraryID,
		limiter:     rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// APIError is a non-200 response from the Zotero API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zotero: unexpected status %d: %s", e.StatusCode, e.Body)
}

// item matches one element of the items/top response.
type item struct {
	Key     string `json:"key"`
	Version int    `json:"version"`
	Links   struct {
		Alternate struct {
			Href string `json:"href"`
		} `json:"alternate"`
	} `json:"links"`
	Data itemData `json:"data"`
}

type itemData struct {
	Key          string    `json:"key"`
	Version      int       `json:"version"`
	Title        string    `json:"title"`
	Creators     []creator `json:"creators"`
	Date         string    `json:"date"`
	URL          string    `json:"url"`
	Extra        string    `json:"extra"`
	AbstractNote string    `json:"abstractNote"`
	DateAdded    string    `json:"dateAdded"`
	DateModified string    `json:"dateModified"`
	Tags         []tag     `json:"tags"`
}

type creator struct {
	CreatorType string `json:"creatorType"`
	Name        string `json:"name"`
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	LastName    string `json:"lastName"`
}

type tag struct {
	Tag  string `json:"tag"`
	Type int    `json:"type"`
}

var citeKeyRe = regexp.MustCompile(`Citation Key: (\S+)`)

// Records fetches up to limit top-level items, newest first, and normalizes
// them into bib.Records in the order the service returned them. Items without
// a citation key in their extra field are skipped. A single failed call aborts
// the run; no retries are attempted.
func (c *Client) Records(ctx context.Context, limit int) ([]bib.Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/%s/%d/items/top?format=json&sort=dateAdded&direction=desc&limit=%d",
		c.baseURL, c.libraryPrefix(), c.libraryID, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Zotero-API-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var items []item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	records := make([]bib.Record, 0, len(items))
	for _, it := range items {
		rec, ok := toRecord(it)
		if !ok {
			log.Printf("zotero: item %s has no citation key, skipping", it.Key)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (c *Client) libraryPrefix() string {
	if c.libraryType == "group" {
		return "groups"
	}
	return "users"
}

func toRecord(it item) (bib.Record, bool) {
	m := citeKeyRe.FindStringSubmatch(it.Data.Extra)
	if m == nil {
		return bib.Record{}, false
	}

	rec := bib.Record{
		CiteKey:      m[1],
		Key:          it.Key,
		Version:      it.Data.Version,
		Title:        it.Data.Title,
		URL:          it.Data.URL,
		Link:         it.Links.Alternate.Href,
		Abstract:     it.Data.AbstractNote,
		DateAdded:    it.Data.DateAdded,
		DateModified: it.Data.DateModified,
	}

	for _, cr := range it.Data.Creators {
		if cr.CreatorType != "author" {
			continue
		}
		rec.Authors = append(rec.Authors, authorName(cr))
	}

	for _, t := range it.Data.Tags {
		// Automatic tags carry type 1; manual tags have no type field.
		if t.Type == 0 {
			rec.Tags = append(rec.Tags, t.Tag)
		}
	}

	// Publication dates are free-form ("2020", "March 2020", "2020-03-01").
	if it.Data.Date != "" {
		if ts, err := dateparse.ParseAny(it.Data.Date); err == nil {
			year := ts.Year()
			rec.Year = &year
			rec.Date = ts.Format("2006-01-02")
		}
	}

	return rec, true
}

func authorName(cr creator) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{cr.Name, cr.FirstName, cr.MiddleName, cr.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Package cardscrape extracts business card records (a display name
// and an email address) from a single web page. It fetches the page
// over HTTP with bounded retries, then runs caller-supplied CSS
// selector patterns over the markup to produce an ordered sequence of
// records, so differing page layouts need configuration changes only.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., http/,
// goquery/, sqlite/).
package cardscrape

import "context"

// FieldMissing is the sentinel stored in a record field whose selector
// matched no node within the card. A selector that matches a node
// containing only whitespace yields "" instead; the two cases are
// deliberately distinct.
const FieldMissing = "N/A"

// Record represents one extracted business listing. Records are
// immutable once produced; their order matches the document order of
// the card nodes they were extracted from.
type Record struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Selectors holds the three CSS selector patterns driving extraction:
// one selecting each repeating card block, and one each for the name
// and email elements inside a card.
type Selectors struct {
	Card  string `yaml:"card"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// Validate returns an error if any selector pattern is empty.
// Syntax validation happens when the patterns are compiled.
func (s Selectors) Validate() error {
	if s.Card == "" {
		return Errorf(EINVALID, "card selector required")
	}
	if s.Name == "" {
		return Errorf(EINVALID, "name selector required")
	}
	if s.Email == "" {
		return Errorf(EINVALID, "email selector required")
	}
	return nil
}

// Fetcher retrieves raw HTML from URLs.
// Implementations absorb transient transport and server failures
// internally; a returned error means the page could not be retrieved.
type Fetcher interface {
	// Fetch returns the response body for the URL.
	// The context controls cancellation between retry attempts.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases the pooled connection resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Extractor produces records from raw markup. Selector patterns are
// supplied at construction and compiled once; Extract never fails on
// malformed markup, only an empty result signals that nothing matched.
type Extractor interface {
	Extract(html string) ([]Record, error)
}

// RecordWriter persists an ordered sequence of records.
// Implementations must preserve record order.
type RecordWriter interface {
	WriteRecords(ctx context.Context, records []Record) error
}

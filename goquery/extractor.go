// Package goquery provides a CSS-selector-based implementation of
// cardscrape.Extractor over a fault-tolerant HTML parse tree.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/pjanik/cardscrape"
)

// Ensure Extractor implements cardscrape.Extractor at compile time.
var _ cardscrape.Extractor = (*Extractor)(nil)

// Extractor extracts records from markup using CSS selectors compiled
// once at construction. It is stateless across Extract calls and safe
// to reuse for multiple documents.
type Extractor struct {
	card  goquery.Matcher
	name  goquery.Matcher
	email goquery.Matcher
}

// NewExtractor compiles the selector patterns and returns an Extractor.
// Unparseable selector syntax is a configuration error (EINVALID),
// reported before any markup is seen.
func NewExtractor(sel cardscrape.Selectors) (*Extractor, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	card, err := compile(sel.Card)
	if err != nil {
		return nil, cardscrape.Errorf(cardscrape.EINVALID, "invalid card selector %q: %v", sel.Card, err)
	}
	name, err := compile(sel.Name)
	if err != nil {
		return nil, cardscrape.Errorf(cardscrape.EINVALID, "invalid name selector %q: %v", sel.Name, err)
	}
	email, err := compile(sel.Email)
	if err != nil {
		return nil, cardscrape.Errorf(cardscrape.EINVALID, "invalid email selector %q: %v", sel.Email, err)
	}

	return &Extractor{card: card, name: name, email: email}, nil
}

// compile builds a goquery matcher from a selector pattern.
// cascadia is used directly because goquery's Find panics on invalid
// selectors instead of returning the syntax error.
func compile(pattern string) (goquery.Matcher, error) {
	s, err := cascadia.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Extract parses the markup and returns one record per card node, in
// document order. Parsing is best-effort: unclosed tags and other
// irregularities never produce an error. Within each card the first
// matching name and email nodes (document order, descendants only)
// supply the field values as trimmed text; a field whose selector
// matches nothing is set to cardscrape.FieldMissing. A matching node
// containing only whitespace yields an empty string, not the sentinel.
func (e *Extractor) Extract(markup string) ([]cardscrape.Record, error) {
	// html.Parse tolerates malformed input; it only fails on reader
	// errors, which strings.Reader never produces.
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, cardscrape.Errorf(cardscrape.EINTERNAL, "failed to parse HTML: %v", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	var records []cardscrape.Record
	doc.FindMatcher(e.card).Each(func(_ int, card *goquery.Selection) {
		records = append(records, cardscrape.Record{
			Name:  firstText(card, e.name),
			Email: firstText(card, e.email),
		})
	})

	return records, nil
}

// firstText returns the trimmed text of the first node matching m
// within the scope's descendants, or FieldMissing when nothing matches.
func firstText(scope *goquery.Selection, m goquery.Matcher) string {
	match := scope.FindMatcher(m).First()
	if match.Length() == 0 {
		return cardscrape.FieldMissing
	}
	return strings.TrimSpace(match.Text())
}

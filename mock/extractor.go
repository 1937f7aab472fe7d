package mock

import "github.com/pjanik/cardscrape"

var _ cardscrape.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of cardscrape.Extractor.
type Extractor struct {
	ExtractFn func(html string) ([]cardscrape.Record, error)
}

func (e *Extractor) Extract(html string) ([]cardscrape.Record, error) {
	return e.ExtractFn(html)
}

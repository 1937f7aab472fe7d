package mock

import (
	"context"

	"github.com/pjanik/cardscrape"
)

var _ cardscrape.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of cardscrape.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, records []cardscrape.Record) error
}

func (w *RecordWriter) WriteRecords(ctx context.Context, records []cardscrape.Record) error {
	return w.WriteRecordsFn(ctx, records)
}

package mock

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// BatchResults is a pgx.BatchResults that answers queued queries in order with
// fixed rows, used to stub SendBatch.
type BatchResults struct {
	rows     []*Row
	next     int
	closeErr error
	closed   bool
}

var _ pgx.BatchResults = (*BatchResults)(nil)

// NewBatchResults returns results yielding rows in queue order.
func NewBatchResults(rows ...*Row) *BatchResults {
	return &BatchResults{rows: rows}
}

// WithCloseError makes Close fail with err.
func (b *BatchResults) WithCloseError(err error) *BatchResults {
	b.closeErr = err
	return b
}

// Closed reports whether Close was called.
func (b *BatchResults) Closed() bool {
	return b.closed
}

func (b *BatchResults) pop() *Row {
	if b.next >= len(b.rows) {
		return NewErrRow(fmt.Errorf("mock batch: no result for query %d", b.next))
	}
	r := b.rows[b.next]
	b.next++
	return r
}

// Exec implements pgx.BatchResults.
func (b *BatchResults) Exec() (pgconn.CommandTag, error) {
	if r := b.pop(); r.err != nil {
		return pgconn.CommandTag{}, r.err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

// Query implements pgx.BatchResults.
func (b *BatchResults) Query() (pgx.Rows, error) {
	return nil, fmt.Errorf("mock batch: Query is not supported")
}

// QueryRow implements pgx.BatchResults.
func (b *BatchResults) QueryRow() pgx.Row {
	return b.pop()
}

// Close implements pgx.BatchResults.
func (b *BatchResults) Close() error {
	b.closed = true
	return b.closeErr
}

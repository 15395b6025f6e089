package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
)

// sequenceCounter hands out a global monotonic sequence shared by every
// event table, so events of different kinds can be ordered against each
// other. The mutex serializes within the process; RETURNING makes the
// increment atomic in the database.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo. Inserts and event listings are built
// with the ent SQL builder; aggregates are plain SQL.
type eventRepo struct {
	db  *sql.DB
	sql *entsql.DialectBuilder
	seq *sequenceCounter
}

// insertEvent stamps a new sequence and timestamp onto values and inserts
// them into t. values follow t's columns after id, sequence and timestamp.
func (r *eventRepo) insertEvent(ctx context.Context, t *schema.Table, values ...any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.sql.Insert(t.Name).
		Columns(columnNames(t, 1)...).
		Values(append([]any{seqNum, formatTime(time.Now())}, values...)...).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

// selectEvents lists rows of t newest first, filtered by opts.
func (r *eventRepo) selectEvents(ctx context.Context, t *schema.Table, opts QueryOpts) (*sql.Rows, error) {
	sel := r.sql.Select(columnNames(t, 0)...).From(r.sql.Table(t.Name))
	if p := opts.predicate(); p != nil {
		sel.Where(p)
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()
	return r.db.QueryContext(ctx, query, args...)
}

// predicate renders the sequence and time filters of opts, or nil.
func (o QueryOpts) predicate() *entsql.Predicate {
	var preds []*entsql.Predicate
	if o.After > 0 {
		preds = append(preds, entsql.GT("sequence", o.After))
	}
	if o.Before > 0 {
		preds = append(preds, entsql.LT("sequence", o.Before))
	}
	if !o.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", formatTime(o.From)))
	}
	if !o.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", formatTime(o.To)))
	}
	if len(preds) == 0 {
		return nil
	}
	return entsql.And(preds...)
}

package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendMasteryEvent(ctx context.Context, data MasteryEventData) error {
	err := r.insertEvent(ctx, masteryEventsTable, data.SessionID, data.Term, data.TotalMastered)
	if err != nil {
		return fmt.Errorf("save mastery event: %w", err)
	}
	return nil
}

func (r *eventRepo) MasteredTerms(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT term FROM mastery_events ORDER BY term`)
	if err != nil {
		return nil, fmt.Errorf("query mastered terms: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, fmt.Errorf("scan mastered term: %w", err)
		}
		out = append(out, term)
	}
	return out, rows.Err()
}

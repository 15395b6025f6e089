package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insertEvent(ctx, answerEventsTable,
		data.SessionID, data.Term, data.QuestionType,
		data.Expected, data.Given, data.Correct, data.TimeMs,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) TypeAccuracy(ctx context.Context) ([]TypeAccuracy, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT question_type, COUNT(*), COALESCE(SUM(correct), 0)
		FROM answer_events
		GROUP BY question_type
		ORDER BY question_type`,
	)
	if err != nil {
		return nil, fmt.Errorf("query type accuracy: %w", err)
	}
	defer rows.Close()

	var out []TypeAccuracy
	for rows.Next() {
		var a TypeAccuracy
		if err := rows.Scan(&a.QuestionType, &a.Attempts, &a.Correct); err != nil {
			return nil, fmt.Errorf("scan type accuracy: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *eventRepo) MostMissed(ctx context.Context, limit int) ([]MissedWord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT term, COUNT(*) AS misses
		FROM answer_events
		WHERE correct = 0
		GROUP BY term
		ORDER BY misses DESC, term ASC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query most missed: %w", err)
	}
	defer rows.Close()

	var out []MissedWord
	for rows.Next() {
		var m MissedWord
		if err := rows.Scan(&m.Term, &m.Misses); err != nil {
			return nil, fmt.Errorf("scan missed word: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

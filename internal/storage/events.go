package storage

import (
	"context"
	"fmt"
)

// Event is one recorded verdict consultation. DisplayName is a snapshot taken
// at event time and is never updated retroactively.
type Event struct {
	SubjectID   string
	DisplayName string
	OutcomeText string
	OccurredAt  string
}

// AppendEvent records one consultation without touching the ledger. The
// failure path normally appends through RegisterFailure; this exists for
// callers that only want the log.
func (s *Store) AppendEvent(ctx context.Context, subjectID, displayName, outcomeText string) error {
	_, err := s.db.ExecContext(ctx, s.dialect.rebind(
		`INSERT INTO events (subject_id, display_name, outcome_text, occurred_at)
		 VALUES (?, ?, ?, ?)`),
		subjectID, displayName, outcomeText, s.now().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("storage: appending event: %w", err)
	}
	return nil
}

// CountEvents returns the total number of recorded events.
func (s *Store) CountEvents(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: counting events: %w", err)
	}
	return n, nil
}

// RecentEvents returns up to limit events, newest first by insertion order.
func (s *Store) RecentEvents(ctx context.Context, limit int) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(
		`SELECT subject_id, display_name, outcome_text, occurred_at
		 FROM events ORDER BY id DESC LIMIT ?`),
		limit)
	if err != nil {
		return nil, fmt.Errorf("storage: reading recent events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.SubjectID, &e.DisplayName, &e.OutcomeText, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("storage: scanning event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterating events: %w", err)
	}
	return events, nil
}

// VerdictCounts returns how many times each outcome text was served.
func (s *Store) VerdictCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT outcome_text, COUNT(*) FROM events GROUP BY outcome_text`)
	if err != nil {
		return nil, fmt.Errorf("storage: grouping verdicts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("storage: scanning verdict count: %w", err)
		}
		counts[outcome] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterating verdict counts: %w", err)
	}
	return counts, nil
}

// HourHistogram buckets all recorded events by hour of day, regardless of the
// day. Hours with zero events are present as zero; the 24 buckets always sum
// to CountEvents.
func (s *Store) HourHistogram(ctx context.Context) ([24]int, error) {
	var hist [24]int
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+s.dialect.hourExpr("occurred_at")+`, COUNT(*) FROM events GROUP BY 1`)
	if err != nil {
		return hist, fmt.Errorf("storage: grouping by hour: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var hour, n int
		if err := rows.Scan(&hour, &n); err != nil {
			return hist, fmt.Errorf("storage: scanning hour bucket: %w", err)
		}
		if hour >= 0 && hour < 24 {
			hist[hour] = n
		}
	}
	if err := rows.Err(); err != nil {
		return hist, fmt.Errorf("storage: iterating hour buckets: %w", err)
	}
	return hist, nil
}

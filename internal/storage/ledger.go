package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Grant is the outcome of an XP-granting operation. A cooldown rejection is a
// first-class result, not an error: OnCooldown is set, RetryAfter holds the
// remaining wait, and the remaining fields report the untouched row.
type Grant struct {
	Level      int
	XP         int
	Streak     int
	OnCooldown bool
	RetryAfter time.Duration
}

// SubjectStats is a read-only snapshot of one subject's progression.
type SubjectStats struct {
	Level  int
	XP     int
	Streak int
}

// LeaderboardEntry is one row of the ranked projection over the ledger.
type LeaderboardEntry struct {
	DisplayName string
	Level       int
	XP          int
}

// levelFor returns the smallest level consistent with xp under the cumulative
// threshold rule: advancing past level L requires total xp >= L*100.
func levelFor(level, xp int) int {
	if level < 1 {
		level = 1
	}
	for xp >= level*100 {
		level++
	}
	return level
}

// RegisterSuccess grants xpAmount to the subject unless its previous grant was
// less than cooldown ago. Gate check, upsert, level recompute and streak
// increment all run in one transaction, so two near-simultaneous successes
// cannot both pass the gate.
func (s *Store) RegisterSuccess(ctx context.Context, subjectID, displayName string, xpAmount int, cooldown time.Duration) (Grant, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Grant{}, fmt.Errorf("storage: beginning success tx: %w", err)
	}
	defer tx.Rollback()

	now := s.now()

	var (
		xp, level, streak int
		lastActive        sql.NullString
		exists            bool
	)
	err = tx.QueryRowContext(ctx, s.dialect.rebind(
		`SELECT xp, level, streak, last_active FROM subjects WHERE subject_id = ?`),
		subjectID,
	).Scan(&xp, &level, &streak, &lastActive)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// first interaction: the row is created below, no gate applies
	case err != nil:
		return Grant{}, fmt.Errorf("storage: reading subject %s: %w", subjectID, err)
	default:
		exists = true
	}

	if exists && lastActive.Valid {
		if prev, perr := time.ParseInLocation(timeLayout, lastActive.String, time.Local); perr == nil {
			if since := now.Sub(prev); since < cooldown {
				return Grant{
					Level:      level,
					XP:         xp,
					Streak:     streak,
					OnCooldown: true,
					RetryAfter: cooldown - since,
				}, nil
			}
		}
	}

	if exists {
		xp += xpAmount
		streak++
		level = levelFor(level, xp)
		_, err = tx.ExecContext(ctx, s.dialect.rebind(
			`UPDATE subjects SET display_name = ?, xp = ?, level = ?, streak = ?, last_active = ?
			 WHERE subject_id = ?`),
			displayName, xp, level, streak, now.Format(timeLayout), subjectID)
	} else {
		xp = xpAmount
		streak = 1
		level = levelFor(1, xp)
		_, err = tx.ExecContext(ctx, s.dialect.rebind(
			`INSERT INTO subjects (subject_id, display_name, xp, level, streak, last_active)
			 VALUES (?, ?, ?, ?, ?, ?)`),
			subjectID, displayName, xp, level, streak, now.Format(timeLayout))
	}
	if err != nil {
		return Grant{}, fmt.Errorf("storage: upserting subject %s: %w", subjectID, err)
	}

	if err := tx.Commit(); err != nil {
		return Grant{}, fmt.Errorf("storage: committing success: %w", err)
	}
	return Grant{Level: level, XP: xp, Streak: streak}, nil
}

// RegisterFailure appends one event record, resets the subject's streak to 0
// and grants pityXP, all in one transaction. Failures are never rate-limited
// and do not arm the cooldown gate: last_active tracks successes only.
func (s *Store) RegisterFailure(ctx context.Context, subjectID, displayName, verdictText string, pityXP int) (Grant, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Grant{}, fmt.Errorf("storage: beginning failure tx: %w", err)
	}
	defer tx.Rollback()

	now := s.now()

	_, err = tx.ExecContext(ctx, s.dialect.rebind(
		`INSERT INTO events (subject_id, display_name, outcome_text, occurred_at)
		 VALUES (?, ?, ?, ?)`),
		subjectID, displayName, verdictText, now.Format(timeLayout))
	if err != nil {
		return Grant{}, fmt.Errorf("storage: appending event for %s: %w", subjectID, err)
	}

	var (
		xp, level, streak int
		exists            bool
	)
	err = tx.QueryRowContext(ctx, s.dialect.rebind(
		`SELECT xp, level, streak FROM subjects WHERE subject_id = ?`),
		subjectID,
	).Scan(&xp, &level, &streak)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return Grant{}, fmt.Errorf("storage: reading subject %s: %w", subjectID, err)
	default:
		exists = true
	}

	if exists {
		xp += pityXP
		level = levelFor(level, xp)
		_, err = tx.ExecContext(ctx, s.dialect.rebind(
			`UPDATE subjects SET display_name = ?, xp = ?, level = ?, streak = 0
			 WHERE subject_id = ?`),
			displayName, xp, level, subjectID)
	} else {
		xp = pityXP
		level = levelFor(1, xp)
		_, err = tx.ExecContext(ctx, s.dialect.rebind(
			`INSERT INTO subjects (subject_id, display_name, xp, level, streak, last_active)
			 VALUES (?, ?, ?, ?, 0, NULL)`),
			subjectID, displayName, xp, level)
	}
	if err != nil {
		return Grant{}, fmt.Errorf("storage: upserting subject %s: %w", subjectID, err)
	}

	if err := tx.Commit(); err != nil {
		return Grant{}, fmt.Errorf("storage: committing failure: %w", err)
	}
	return Grant{Level: level, XP: xp, Streak: 0}, nil
}

// SubjectStats returns the subject's current progression, defaulting to
// level 1 / 0 xp / 0 streak for an unknown id. It never creates a row.
func (s *Store) SubjectStats(ctx context.Context, subjectID string) (SubjectStats, error) {
	var st SubjectStats
	err := s.db.QueryRowContext(ctx, s.dialect.rebind(
		`SELECT level, xp, streak FROM subjects WHERE subject_id = ?`),
		subjectID,
	).Scan(&st.Level, &st.XP, &st.Streak)
	if errors.Is(err, sql.ErrNoRows) {
		return SubjectStats{Level: 1}, nil
	}
	if err != nil {
		return SubjectStats{}, fmt.Errorf("storage: reading stats for %s: %w", subjectID, err)
	}
	return st, nil
}

// Leaderboard returns the top subjects ordered by level, ties broken by xp.
func (s *Store) Leaderboard(ctx context.Context, topN int) ([]LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(
		`SELECT display_name, level, xp FROM subjects
		 ORDER BY level DESC, xp DESC LIMIT ?`),
		topN)
	if err != nil {
		return nil, fmt.Errorf("storage: reading leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.DisplayName, &e.Level, &e.XP); err != nil {
			return nil, fmt.Errorf("storage: scanning leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterating leaderboard: %w", err)
	}
	return entries, nil
}

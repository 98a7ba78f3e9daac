package database

import (
	"database/sql"
	"fmt"

	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

// sqliteTime is the layout of SQLite's datetime('now').
const sqliteTime = "2006-01-02 15:04:05"

const reelColumns = `id, user_id, created_at, views, watch_time_minutes, reel_duration_seconds,
	likes, comments, shares, saves, caption, category, hook_type, follower_count,
	retention_ratio, retention_label, engagement_rate, engagement_label,
	hook_score, hook_label, save_rate, save_label, ai_report`

const insertReelSQL = `INSERT INTO reels (user_id, created_at, views, watch_time_minutes, reel_duration_seconds,
	likes, comments, shares, saves, caption, category, hook_type, follower_count,
	retention_ratio, retention_label, engagement_rate, engagement_label,
	hook_score, hook_label, save_rate, save_label, ai_report)
	VALUES (?, COALESCE(?, datetime('now')), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// InsertReel stores a reel and returns its new ID. A nil CreatedAt is
// stamped with the current time.
func (db *DB) InsertReel(r reel.Reel) (int64, error) {
	id, err := insertReel(db.conn, r)
	if err != nil {
		return 0, fmt.Errorf("inserting reel: %w", err)
	}
	return id, nil
}

// InsertReels stores a batch of reels in one transaction. Either every reel
// is stored or none is.
func (db *DB) InsertReels(reels []reel.Reel) ([]int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	ids := make([]int64, 0, len(reels))
	for i, r := range reels {
		id, err := insertReel(tx, r)
		if err != nil {
			return nil, fmt.Errorf("inserting reel %d of %d: %w", i+1, len(reels), err)
		}
		ids = append(ids, id)
	}
	return ids, tx.Commit()
}

func insertReel(e execer, r reel.Reel) (int64, error) {
	result, err := e.Exec(insertReelSQL,
		r.UserID, normaliseCreated(r.CreatedAt),
		r.Views, r.WatchTimeMinutes, r.DurationSeconds,
		r.Likes, r.Comments, r.Shares, r.Saves,
		nullString(r.Caption), nullString(r.Category), nullString(r.HookType), r.FollowerCount,
		r.RetentionRatio, nullString(r.RetentionLabel),
		r.EngagementRate, nullString(r.EngagementLabel),
		r.HookScore, nullString(r.HookLabel),
		r.SaveRate, nullString(r.SaveLabel),
		r.AIReport,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetUserReels returns every reel of a user, newest first.
func (db *DB) GetUserReels(userID string) ([]reel.Reel, error) {
	rows, err := db.conn.Query(
		`SELECT `+reelColumns+` FROM reels WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reels []reel.Reel
	for rows.Next() {
		r, err := scanReel(rows)
		if err != nil {
			return nil, err
		}
		reels = append(reels, *r)
	}
	return reels, rows.Err()
}

// GetReel returns one reel of a user, or nil if it does not exist.
func (db *DB) GetReel(userID string, id int64) (*reel.Reel, error) {
	row := db.conn.QueryRow(`SELECT `+reelColumns+` FROM reels WHERE user_id = ? AND id = ?`, userID, id)
	r, err := scanReel(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteReel removes a reel. It reports whether a row was deleted.
func (db *DB) DeleteReel(userID string, id int64) (bool, error) {
	result, err := db.conn.Exec("DELETE FROM reels WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// UpdateAIReport stores a generated report on a reel.
func (db *DB) UpdateAIReport(userID string, id int64, report string) error {
	result, err := db.conn.Exec("UPDATE reels SET ai_report = ? WHERE user_id = ? AND id = ?", report, userID, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("reel %d not found", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReel(s scanner) (*reel.Reel, error) {
	var (
		r                                  reel.Reel
		caption, category, hookType        sql.NullString
		retLabel, engLabel, hookLabel, sav sql.NullString
	)
	if err := s.Scan(&r.ID, &r.UserID, &r.CreatedAt, &r.Views, &r.WatchTimeMinutes, &r.DurationSeconds,
		&r.Likes, &r.Comments, &r.Shares, &r.Saves, &caption, &category, &hookType, &r.FollowerCount,
		&r.RetentionRatio, &retLabel, &r.EngagementRate, &engLabel,
		&r.HookScore, &hookLabel, &r.SaveRate, &sav, &r.AIReport); err != nil {
		return nil, err
	}
	r.Caption = caption.String
	r.Category = category.String
	r.HookType = hookType.String
	r.RetentionLabel = retLabel.String
	r.EngagementLabel = engLabel.String
	r.HookLabel = hookLabel.String
	r.SaveLabel = sav.String
	return &r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// normaliseCreated rewrites parseable timestamps to the SQLite layout in UTC
// so that stored values sort chronologically. Unparseable text is kept as is.
func normaliseCreated(raw *string) *string {
	if raw == nil {
		return nil
	}
	t, ok := reel.ParseTime(raw)
	if !ok {
		return raw
	}
	s := t.Format(sqliteTime)
	return &s
}

package database

// GetStats returns aggregate statistics for a user's reels.
func (db *DB) GetStats(userID string) (*Stats, error) {
	s := &Stats{}

	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM reels WHERE user_id = ?", &s.TotalReels},
		{"SELECT COUNT(*) FROM reels WHERE user_id = ? AND retention_ratio IS NOT NULL", &s.ScoredReels},
		{"SELECT COUNT(*) FROM reels WHERE user_id = ? AND ai_report IS NOT NULL AND ai_report != ''", &s.WithAIReport},
		{"SELECT COUNT(DISTINCT category) FROM reels WHERE user_id = ?", &s.Categories},
	}

	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql, userID).Scan(q.dest); err != nil {
			return nil, err
		}
	}

	if err := db.conn.QueryRow(
		"SELECT MIN(created_at), MAX(created_at) FROM reels WHERE user_id = ?", userID,
	).Scan(&s.FirstCreated, &s.LatestCreated); err != nil {
		return nil, err
	}
	return s, nil
}

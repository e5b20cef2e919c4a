package models

import (
	"context"
	"database/sql"
	"fmt"
)

// SessionStore PostgreSQL 对局记录存储
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore 创建对局记录存储
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// RecordSession 写入一条对局记录
func (s *SessionStore) RecordSession(ctx context.Context, rec SessionRecord) error {
	query := `
		INSERT INTO session_records (id, player_id, score, enemies_defeated, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.PlayerID, rec.Score, rec.EnemiesDefeated, rec.StartTime, rec.EndTime,
	); err != nil {
		return fmt.Errorf("写入对局记录失败: %w", err)
	}

	return nil
}

// RecentSessions 查询玩家最近的对局记录
func (s *SessionStore) RecentSessions(ctx context.Context, playerID int64, limit int) ([]SessionRecord, error) {
	query := `
		SELECT id, player_id, score, enemies_defeated, start_time, end_time
		FROM session_records
		WHERE player_id = $1
		ORDER BY end_time DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(
			&rec.ID, &rec.PlayerID, &rec.Score, &rec.EnemiesDefeated, &rec.StartTime, &rec.EndTime,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

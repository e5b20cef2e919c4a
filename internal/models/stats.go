// stats.go

package models

import (
	"time"
)

// SessionRecord 一局游戏结束后的记录
type SessionRecord struct {
	ID              string    `json:"id"`
	PlayerID        int64     `json:"player_id"`
	Score           int       `json:"score"`
	EnemiesDefeated int       `json:"enemies_defeated"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
}

// Duration 对局时长
func (r SessionRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	PlayerID int64   `json:"player_id"`
	Score    float64 `json:"score"`
	Rank     int     `json:"rank"` // 从 1 开始
}

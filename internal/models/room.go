package models

import (
	"time"
)

// RoomStatus 房间状态
type RoomStatus string

const (
	// RoomPlaying 游戏中
	RoomPlaying RoomStatus = "playing"
	// RoomEnded 已结束
	RoomEnded RoomStatus = "ended"
)

// RoomInfo 房间快照，用于 /rooms 列表
type RoomInfo struct {
	ID        string     `json:"id"`
	PlayerID  int64      `json:"player_id"`
	Status    RoomStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	EndedAt   time.Time  `json:"ended_at,omitempty"`

	// 游戏中数据
	FrameID  int64 `json:"frame_id"`
	Score    int   `json:"score"`
	Defeated int   `json:"defeated"`
}

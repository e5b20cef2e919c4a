// Package protocol 定义客户端与服务器之间的消息和渲染帧
package protocol

import (
	"time"

	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
)

// FrameSource 可以被渲染成帧的游戏状态
type FrameSource interface {
	FrameID() int64
	LastTick() time.Time
	Score() int
	Player() *models.Player
	Over() bool
	Entities() []models.Entity
}

// Frame 一帧渲染数据
type Frame struct {
	FrameID   int64        `json:"frame_id"`
	Timestamp int64        `json:"timestamp"` // 毫秒
	Score     int          `json:"score"`
	Health    uint32       `json:"health"`
	MaxHealth uint32       `json:"max_health"`
	Over      bool         `json:"over"`
	Entities  []EntityInfo `json:"entities"`
}

// EntityInfo 单个实体的碰撞盒和颜色
type EntityInfo struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Color  string  `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BuildFrame 将当前游戏状态转换为渲染帧
func BuildFrame(src FrameSource) *Frame {
	health := src.Player().Health()
	entities := src.Entities()

	frame := &Frame{
		FrameID:   src.FrameID(),
		Timestamp: src.LastTick().UnixMilli(),
		Score:     src.Score(),
		Health:    health.Current(),
		MaxHealth: health.Maximum(),
		Over:      src.Over(),
		Entities:  make([]EntityInfo, 0, len(entities)),
	}

	for _, e := range entities {
		frame.Entities = append(frame.Entities, ConvertEntity(e))
	}

	return frame
}

// ConvertEntity 将实体转换为帧内的实体信息
func ConvertEntity(e models.Entity) EntityInfo {
	box := e.Hitbox()
	return EntityInfo{
		ID:     e.GetID(),
		Type:   string(e.GetType()),
		Color:  string(e.Color()),
		X:      box.X.Value(),
		Y:      box.Y.Value(),
		Width:  box.Width.Value(),
		Height: box.Height.Value(),
	}
}

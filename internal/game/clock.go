package game

import (
	"sync"
	"time"
)

// Clock 时间源，会话的 tick 间隔和敌人开火冷却都从这里取时间
type Clock interface {
	Now() time.Time
}

// SystemClock 系统时钟
type SystemClock struct{}

// Now 当前时间（带单调时钟读数）
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock 手动推进的时钟，用于测试和回放
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock 以 start 为初始时间创建时钟
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now 当前时间
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance 前进 d
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

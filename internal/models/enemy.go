// enemy.go

package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/physics"
)

// FireCooldown 敌人两次开火的最小间隔
const FireCooldown = 500 * time.Millisecond

// ErrEmptyRotation 敌人弹幕序列为空
var ErrEmptyRotation = errors.New("敌人弹幕序列不能为空")

// Enemy 敌人
type Enemy struct {
	ID         string
	Position   physics.Position[physics.Pixels]
	Dimensions physics.Dimensions[physics.Pixels]

	health    HealthPoints
	rotation  []BulletTemplate
	cursor    int
	lastFired time.Time
}

// NewEnemy 创建敌人，now 作为初始开火时间，第一发子弹至少在 FireCooldown 之后
func NewEnemy(
	pos physics.Position[physics.Pixels],
	dims physics.Dimensions[physics.Pixels],
	health HealthPoints,
	rotation []BulletTemplate,
	now time.Time,
) (*Enemy, error) {
	if len(rotation) == 0 {
		return nil, ErrEmptyRotation
	}

	return &Enemy{
		ID:         uuid.New().String(),
		Position:   pos,
		Dimensions: dims,
		health:     health,
		rotation:   append([]BulletTemplate(nil), rotation...),
		lastFired:  now,
	}, nil
}

// FireBullet 冷却结束时按轮转顺序发射下一颗子弹，否则返回 nil。
// 每个 tick 调用都是安全的。
func (e *Enemy) FireBullet(now time.Time) *Bullet {
	if now.Sub(e.lastFired) < FireCooldown {
		return nil
	}

	bullet := e.rotation[e.cursor].Materialize(e.Position)
	e.cursor = (e.cursor + 1) % len(e.rotation)
	e.lastFired = now

	return bullet
}

// RotationCursor 下一次开火使用的模板下标
func (e *Enemy) RotationCursor() int {
	return e.cursor
}

// Hitbox 碰撞盒
func (e *Enemy) Hitbox() physics.Rect[physics.Pixels] {
	return physics.NewRect(e.Position, e.Dimensions)
}

// Health 当前生命值
func (e *Enemy) Health() HealthPoints {
	return e.health
}

// RestoreHealth 敌人无法回血
func (e *Enemy) RestoreHealth(HealthPoints) HealthPoints {
	return e.health
}

// TakeDamage 受到伤害，最低为 0
func (e *Enemy) TakeDamage(amount HealthPoints) HealthPoints {
	e.health = e.health.Sub(amount)
	return e.health
}

// Defeated 是否已被击败
func (e *Enemy) Defeated() bool {
	return e.health.Empty()
}

// GetID 实体ID
func (e *Enemy) GetID() string {
	return e.ID
}

// GetType 实体类型
func (e *Enemy) GetType() EntityType {
	return EntityEnemy
}

// Color 渲染颜色
func (e *Enemy) Color() Color {
	return ColorMagenta
}

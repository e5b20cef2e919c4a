// player.go

package models

import (
	"time"

	"github.com/jacl-coder/PixelStorm-Arcade/internal/physics"
)

// 玩家属性
const (
	PlayerWidth     physics.Pixels = 24
	PlayerHeight    physics.Pixels = 32
	PlayerMaxHealth uint32         = 100

	// 每个轴上的移动速度（像素/毫秒）
	playerSpeed physics.Pixels = 0.25
)

// Player 玩家飞船，整个会话期间一直存在
type Player struct {
	Position   physics.Position[physics.Pixels]
	Dimensions physics.Dimensions[physics.Pixels]

	health HealthPoints

	// 水平、竖直两个轴分别记录当前方向，松开一个轴不影响另一个
	horizontal physics.Direction
	vertical   physics.Direction
}

// NewPlayer 在场地底部中央创建玩家
func NewPlayer(playfield physics.Dimensions[physics.Pixels]) *Player {
	return &Player{
		Position: physics.NewPosition(
			playfield.Width/2-PlayerWidth/2,
			playfield.Height-2*PlayerHeight,
		),
		Dimensions: physics.NewDimensions(PlayerWidth, PlayerHeight),
		health:     NewHealthPoints(PlayerMaxHealth),
	}
}

// Apply 根据动作更新方向状态，射击不影响移动
func (p *Player) Apply(action Action) {
	switch action.Type {
	case ActionMove:
		switch action.Direction.Axis() {
		case physics.AxisHorizontal:
			p.horizontal = action.Direction
		case physics.AxisVertical:
			p.vertical = action.Direction
		}
	case ActionStopMoving:
		switch action.Direction.Axis() {
		case physics.AxisHorizontal:
			p.horizontal = physics.Stationary
		case physics.AxisVertical:
			p.vertical = physics.Stationary
		}
	}
}

// Reposition 先应用动作，再按当前方向移动 elapsed
func (p *Player) Reposition(action Action, elapsed time.Duration) {
	p.Apply(action)
	p.Coast(elapsed)
}

// Coast 保持当前方向移动 elapsed
func (p *Player) Coast(elapsed time.Duration) {
	p.Position = physics.Displace[physics.Pixels](p.Position, p, elapsed)
}

// Moving 是否有任一轴处于移动状态
func (p *Player) Moving() bool {
	return p.horizontal != physics.Stationary || p.vertical != physics.Stationary
}

// Directions 返回水平和竖直方向
func (p *Player) Directions() (horizontal, vertical physics.Direction) {
	return p.horizontal, p.vertical
}

// HorizontalVelocity 水平速度
func (p *Player) HorizontalVelocity(time.Duration) physics.Velocity[physics.Pixels] {
	return physics.NewVelocity(playerSpeed * physics.Pixels(p.horizontal.Sign()))
}

// VerticalVelocity 竖直速度
func (p *Player) VerticalVelocity(time.Duration) physics.Velocity[physics.Pixels] {
	return physics.NewVelocity(playerSpeed * physics.Pixels(p.vertical.Sign()))
}

// ClampTo 把玩家限制在场地内，硬性截断
func (p *Player) ClampTo(playfield physics.Dimensions[physics.Pixels]) {
	p.Position.X = physics.Clamp(p.Position.X, 0, playfield.Width-p.Dimensions.Width)
	p.Position.Y = physics.Clamp(p.Position.Y, 0, playfield.Height-p.Dimensions.Height)
}

// Hitbox 碰撞盒
func (p *Player) Hitbox() physics.Rect[physics.Pixels] {
	return physics.NewRect(p.Position, p.Dimensions)
}

// Health 当前生命值
func (p *Player) Health() HealthPoints {
	return p.health
}

// RestoreHealth 回复生命，不超过上限
func (p *Player) RestoreHealth(amount HealthPoints) HealthPoints {
	p.health = p.health.Add(amount)
	return p.health
}

// TakeDamage 受到伤害，最低为 0
func (p *Player) TakeDamage(amount HealthPoints) HealthPoints {
	p.health = p.health.Sub(amount)
	return p.health
}

// GetID 玩家在会话中唯一
func (p *Player) GetID() string {
	return string(EntityPlayer)
}

// GetType 实体类型
func (p *Player) GetType() EntityType {
	return EntityPlayer
}

// Color 渲染颜色
func (p *Player) Color() Color {
	return ColorRed
}

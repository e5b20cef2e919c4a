// bullet.go

package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/physics"
)

// ErrUnknownKind 未知的子弹类型
var ErrUnknownKind = errors.New("未知的子弹类型")

// Owner 子弹归属
type Owner int

const (
	// OwnerPlayer 玩家发射
	OwnerPlayer Owner = iota
	// OwnerEnemy 敌人发射
	OwnerEnemy
)

// String 归属名称
func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerEnemy:
		return "enemy"
	default:
		return fmt.Sprintf("owner(%d)", int(o))
	}
}

// Kind 子弹类型
type Kind int

const (
	// KindBasic 普通子弹
	KindBasic Kind = iota
)

// String 类型名称
func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind 解析配置中的子弹类型名称
func ParseKind(name string) (Kind, error) {
	switch name {
	case "basic", "":
		return KindBasic, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}
}

// Dimensions 子弹尺寸只由类型决定
func (k Kind) Dimensions() physics.Dimensions[physics.Pixels] {
	switch k {
	case KindBasic:
		return physics.NewDimensions[physics.Pixels](20, 20)
	default:
		panic(fmt.Sprintf("未处理的子弹类型: %v", k))
	}
}

// 子弹速度（像素/毫秒），玩家子弹向上且约为敌人子弹的 4 倍
const (
	playerBasicSpeed physics.Pixels = -0.5
	enemyBasicSpeed  physics.Pixels = 0.125
)

// Bullet 子弹
type Bullet struct {
	ID       string
	owner    Owner
	kind     Kind
	position physics.Position[physics.Pixels]
	dims     physics.Dimensions[physics.Pixels]
}

// NewBullet 在指定位置创建子弹
func NewBullet(owner Owner, kind Kind, pos physics.Position[physics.Pixels]) *Bullet {
	return &Bullet{
		ID:       uuid.New().String(),
		owner:    owner,
		kind:     kind,
		position: pos,
		dims:     kind.Dimensions(),
	}
}

// Owner 子弹归属
func (b *Bullet) Owner() Owner {
	return b.owner
}

// Kind 子弹类型
func (b *Bullet) Kind() Kind {
	return b.kind
}

// Position 当前位置
func (b *Bullet) Position() physics.Position[physics.Pixels] {
	return b.position
}

// Damage 命中造成的伤害
func (b *Bullet) Damage() HealthPoints {
	switch b.kind {
	case KindBasic:
		if b.owner == OwnerPlayer {
			return NewHealthPoints(10)
		}
		return NewHealthPoints(5)
	default:
		panic(fmt.Sprintf("未处理的子弹类型: %v", b.kind))
	}
}

// HorizontalVelocity 目前所有子弹都只沿竖直方向飞行
func (b *Bullet) HorizontalVelocity(time.Duration) physics.Velocity[physics.Pixels] {
	return physics.NewVelocity[physics.Pixels](0)
}

// VerticalVelocity 竖直速度
func (b *Bullet) VerticalVelocity(time.Duration) physics.Velocity[physics.Pixels] {
	switch b.kind {
	case KindBasic:
		if b.owner == OwnerPlayer {
			return physics.NewVelocity(playerBasicSpeed)
		}
		return physics.NewVelocity(enemyBasicSpeed)
	default:
		panic(fmt.Sprintf("未处理的子弹类型: %v", b.kind))
	}
}

// Reposition 推进子弹位置
func (b *Bullet) Reposition(elapsed time.Duration) {
	b.position = physics.Displace[physics.Pixels](b.position, b, elapsed)
}

// Hitbox 碰撞盒
func (b *Bullet) Hitbox() physics.Rect[physics.Pixels] {
	return physics.NewRect(b.position, b.dims)
}

// GetID 实体ID
func (b *Bullet) GetID() string {
	return b.ID
}

// GetType 实体类型
func (b *Bullet) GetType() EntityType {
	return EntityBullet
}

// Color 渲染颜色
func (b *Bullet) Color() Color {
	return ColorBlue
}

// BulletTemplate 敌人弹幕模板，位置是相对敌人的偏移
type BulletTemplate struct {
	Kind   Kind
	Offset physics.Position[physics.Pixels]
}

// Materialize 以敌人当前位置生成实际子弹
func (t BulletTemplate) Materialize(origin physics.Position[physics.Pixels]) *Bullet {
	return NewBullet(OwnerEnemy, t.Kind, origin.Translate(t.Offset.X, t.Offset.Y))
}

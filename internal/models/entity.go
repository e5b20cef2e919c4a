// entity.go

package models

import (
	"github.com/jacl-coder/PixelStorm-Arcade/internal/physics"
)

// EntityType 实体类型
type EntityType string

const (
	// EntityPlayer 玩家实体
	EntityPlayer EntityType = "player"
	// EntityEnemy 敌人实体
	EntityEnemy EntityType = "enemy"
	// EntityBullet 子弹实体
	EntityBullet EntityType = "bullet"
)

// Color 渲染颜色标签
type Color string

const (
	ColorRed     Color = "red"
	ColorMagenta Color = "magenta"
	ColorBlue    Color = "blue"
)

// Entity 渲染查询接口，每帧 update 之后由渲染端读取
type Entity interface {
	GetID() string
	GetType() EntityType
	Hitbox() physics.Rect[physics.Pixels]
	Color() Color
}

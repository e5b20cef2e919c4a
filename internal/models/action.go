package models

import (
	"fmt"

	"github.com/jacl-coder/PixelStorm-Arcade/internal/physics"
)

// ActionType 输入动作类型
type ActionType int

const (
	// ActionMove 开始向某方向移动
	ActionMove ActionType = iota
	// ActionStopMoving 停止某方向的移动
	ActionStopMoving
	// ActionShoot 射击
	ActionShoot
)

// Action 离散输入事件，每个 tick 开始时按到达顺序处理
type Action struct {
	Type      ActionType
	Direction physics.Direction
}

// Move 创建移动动作
func Move(dir physics.Direction) Action {
	return Action{Type: ActionMove, Direction: dir}
}

// StopMoving 创建停止移动动作
func StopMoving(dir physics.Direction) Action {
	return Action{Type: ActionStopMoving, Direction: dir}
}

// Shoot 创建射击动作
func Shoot() Action {
	return Action{Type: ActionShoot, Direction: physics.Stationary}
}

func (a Action) String() string {
	switch a.Type {
	case ActionMove:
		return fmt.Sprintf("move(%s)", a.Direction)
	case ActionStopMoving:
		return fmt.Sprintf("stop(%s)", a.Direction)
	case ActionShoot:
		return "shoot"
	default:
		return fmt.Sprintf("action(%d)", int(a.Type))
	}
}

package physics

import "time"

// Direction 方向键对应的方向
type Direction int

const (
	// Stationary 静止
	Stationary Direction = iota
	// Up 向上
	Up
	// Down 向下
	Down
	// Left 向左
	Left
	// Right 向右
	Right
)

// Axis 方向所属的轴
type Axis int

const (
	// AxisNeutral 不属于任何轴（静止）
	AxisNeutral Axis = iota
	// AxisHorizontal 水平轴
	AxisHorizontal
	// AxisVertical 竖直轴
	AxisVertical
)

// Axis 返回方向所属的轴
func (d Direction) Axis() Axis {
	switch d {
	case Left, Right:
		return AxisHorizontal
	case Up, Down:
		return AxisVertical
	default:
		return AxisNeutral
	}
}

// Sign 返回方向在所属轴上的符号，屏幕坐标 y 轴向下，所以 Up 为 -1
func (d Direction) Sign() float64 {
	switch d {
	case Right, Down:
		return 1
	case Left, Up:
		return -1
	default:
		return 0
	}
}

// String 方向名称
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "stationary"
	}
}

// ParseDirection 解析方向名称，未知名称返回 false
func ParseDirection(name string) (Direction, bool) {
	switch name {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	case "stationary":
		return Stationary, true
	default:
		return Stationary, false
	}
}

// Mover 可以移动的实体，两个轴的速度相互独立
type Mover[L Length] interface {
	HorizontalVelocity(elapsed time.Duration) Velocity[L]
	VerticalVelocity(elapsed time.Duration) Velocity[L]
}

// Displace 按实体当前速度把坐标推进 elapsed。
// 两个轴分别积分，斜向移动比单轴移动更快。
func Displace[L Length](pos Position[L], m Mover[L], elapsed time.Duration) Position[L] {
	dx := m.HorizontalVelocity(elapsed).Distance(elapsed)
	dy := m.VerticalVelocity(elapsed).Distance(elapsed)
	return pos.Translate(dx, dy)
}

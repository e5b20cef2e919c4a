// units.go

package physics

import "time"

// Length 长度单位约束，位置、尺寸和速度都以同一种长度单位参数化
type Length interface {
	~float64
}

// Pixels 像素，屏幕上的距离单位
type Pixels float64

// Value 返回原始数值
func (p Pixels) Value() float64 {
	return float64(p)
}

// Position 二维坐标，左上角为原点，y 轴向下
type Position[L Length] struct {
	X L `json:"x"`
	Y L `json:"y"`
}

// NewPosition 创建坐标
func NewPosition[L Length](x, y L) Position[L] {
	return Position[L]{X: x, Y: y}
}

// Translate 按两个轴的位移平移坐标
func (p Position[L]) Translate(dx, dy L) Position[L] {
	return Position[L]{X: p.X + dx, Y: p.Y + dy}
}

// Dimensions 宽高
type Dimensions[L Length] struct {
	Width  L `json:"width"`
	Height L `json:"height"`
}

// NewDimensions 创建宽高
func NewDimensions[L Length](width, height L) Dimensions[L] {
	return Dimensions[L]{Width: width, Height: height}
}

// Velocity 速度，数值表示每毫秒移动的 L 单位距离。
// 单位由类型参数携带，不同长度单位的速度与坐标无法直接相加。
type Velocity[L Length] struct {
	perMs L
}

// NewVelocity 以每毫秒移动距离创建速度
func NewVelocity[L Length](perMs L) Velocity[L] {
	return Velocity[L]{perMs: perMs}
}

// Magnitude 每毫秒移动距离（带符号）
func (v Velocity[L]) Magnitude() L {
	return v.perMs
}

// Distance 计算经过 elapsed 后的位移，线性积分，无加速度
func (v Velocity[L]) Distance(elapsed time.Duration) L {
	return v.perMs * L(Milliseconds(elapsed))
}

// Milliseconds 把时间间隔换算成（可带小数的）毫秒数
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

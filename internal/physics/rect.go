package physics

// Rect 轴对齐矩形（碰撞盒）
type Rect[L Length] struct {
	X      L `json:"x"`
	Y      L `json:"y"`
	Width  L `json:"width"`
	Height L `json:"height"`
}

// NewRect 由坐标和宽高构造矩形
func NewRect[L Length](pos Position[L], dim Dimensions[L]) Rect[L] {
	return Rect[L]{X: pos.X, Y: pos.Y, Width: dim.Width, Height: dim.Height}
}

// Right 右边界
func (r Rect[L]) Right() L {
	return r.X + r.Width
}

// Bottom 下边界
func (r Rect[L]) Bottom() L {
	return r.Y + r.Height
}

// Intersects 判断两个矩形是否有面积大于零的重叠，仅边缘接触不算
func (r Rect[L]) Intersects(other Rect[L]) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Clamp 把 v 限制在 [lo, hi] 内
func Clamp[L Length](v, lo, hi L) L {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

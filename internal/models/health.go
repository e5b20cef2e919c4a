// health.go

package models

// HealthPoints 生命值，始终满足 0 <= current <= maximum
type HealthPoints struct {
	current uint32
	maximum uint32
}

// Health 拥有生命值的实体
type Health interface {
	Health() HealthPoints
	RestoreHealth(amount HealthPoints) HealthPoints
	TakeDamage(amount HealthPoints) HealthPoints
}

// NewHealthPoints 创建满值生命，也用作伤害/治疗量
func NewHealthPoints(amount uint32) HealthPoints {
	return HealthPoints{current: amount, maximum: amount}
}

// NewPartialHealthPoints 创建非满值生命，current 超过 maximum 时截断
func NewPartialHealthPoints(current, maximum uint32) HealthPoints {
	if current > maximum {
		current = maximum
	}
	return HealthPoints{current: current, maximum: maximum}
}

// Current 当前生命值
func (h HealthPoints) Current() uint32 {
	return h.current
}

// Maximum 生命上限
func (h HealthPoints) Maximum() uint32 {
	return h.maximum
}

// Empty 生命值是否为 0
func (h HealthPoints) Empty() bool {
	return h.current == 0
}

// Full 生命值是否已满
func (h HealthPoints) Full() bool {
	return h.current == h.maximum
}

// Add 增加 other.Current()，不超过上限
func (h HealthPoints) Add(other HealthPoints) HealthPoints {
	current := h.current + other.current
	if current > h.maximum || current < h.current {
		current = h.maximum
	}
	return HealthPoints{current: current, maximum: h.maximum}
}

// Sub 减去 other.Current()，最低为 0
func (h HealthPoints) Sub(other HealthPoints) HealthPoints {
	if other.current >= h.current {
		return HealthPoints{current: 0, maximum: h.maximum}
	}
	return HealthPoints{current: h.current - other.current, maximum: h.maximum}
}

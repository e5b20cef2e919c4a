// Package input 把客户端按键事件翻译成游戏动作
package input

import (
	"errors"
	"fmt"

	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/physics"
)

// 按键名称，与浏览器 KeyboardEvent.key 一致
const (
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeySpace      = " "
	KeySpaceName  = "Space"
)

// ErrUnknownAction 无法识别的动作名称
var ErrUnknownAction = errors.New("未知的动作")

var arrows = map[string]physics.Direction{
	KeyArrowUp:    physics.Up,
	KeyArrowDown:  physics.Down,
	KeyArrowLeft:  physics.Left,
	KeyArrowRight: physics.Right,
}

// KeyEvent 按下或松开一个键
type KeyEvent struct {
	Key  string `json:"key"`
	Down bool   `json:"down"`
}

// Translate 方向键按下对应 Move，松开对应 StopMoving；空格按下对应 Shoot。
// 其他按键以及空格松开不产生动作。
func Translate(ev KeyEvent) (models.Action, bool) {
	if dir, ok := arrows[ev.Key]; ok {
		if ev.Down {
			return models.Move(dir), true
		}
		return models.StopMoving(dir), true
	}

	if (ev.Key == KeySpace || ev.Key == KeySpaceName) && ev.Down {
		return models.Shoot(), true
	}

	return models.Action{}, false
}

// ParseAction 解析 {action, direction} 形式的动作
func ParseAction(name, direction string) (models.Action, error) {
	switch name {
	case "shoot":
		return models.Shoot(), nil
	case "move", "stop":
		dir, ok := physics.ParseDirection(direction)
		if !ok || dir == physics.Stationary {
			return models.Action{}, fmt.Errorf("%w: %s %q", ErrUnknownAction, name, direction)
		}
		if name == "move" {
			return models.Move(dir), nil
		}
		return models.StopMoving(dir), nil
	default:
		return models.Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}

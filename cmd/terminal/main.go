// main.go

// terminal 在终端中运行单机游戏，不需要服务器
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jacl-coder/PixelStorm-Arcade/config"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/game"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/input"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/protocol"
)

// 终端没有松键事件，超过该时间没有收到重复按键视为松开
const holdWindow = 300 * time.Millisecond

var arrowKeys = map[tcell.Key]string{
	tcell.KeyUp:    input.KeyArrowUp,
	tcell.KeyDown:  input.KeyArrowDown,
	tcell.KeyLeft:  input.KeyArrowLeft,
	tcell.KeyRight: input.KeyArrowRight,
}

// keyState 记录每个方向键最后一次出现的时间
type keyState struct {
	held map[string]time.Time
}

// press 返回按键对应的动作，已按住的方向键只刷新时间
func (k *keyState) press(key string, now time.Time) (models.Action, bool) {
	_, already := k.held[key]
	k.held[key] = now
	if already {
		return models.Action{}, false
	}
	return input.Translate(input.KeyEvent{Key: key, Down: true})
}

// expire 为超时的方向键生成松开动作
func (k *keyState) expire(now time.Time) []models.Action {
	var actions []models.Action
	for key, at := range k.held {
		if now.Sub(at) < holdWindow {
			continue
		}
		delete(k.held, key)
		if a, ok := input.Translate(input.KeyEvent{Key: key, Down: false}); ok {
			actions = append(actions, a)
		}
	}
	return actions
}

func run(screen tcell.Screen, cfg *config.Config) error {
	clock := game.SystemClock{}
	session, err := game.NewSessionFromConfig(cfg.Game, clock.Now())
	if err != nil {
		return err
	}
	field := session.Playfield()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(cfg.Server.TickInterval)
	defer ticker.Stop()

	keys := &keyState{held: make(map[string]time.Time)}
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				if name, ok := arrowKeys[ev.Key()]; ok {
					if a, ok := keys.press(name, clock.Now()); ok {
						session.Push(a)
					}
				} else if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
					session.Push(models.Shoot())
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			if session.Over() {
				continue
			}
			now := clock.Now()
			session.Push(keys.expire(now)...)
			session.Update(now)
			draw(screen, protocol.BuildFrame(session), field.Width.Value(), field.Height.Value())
		}
	}
}

func main() {
	configPath := flag.String("config", "", "配置文件路径，为空时使用默认配置")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化终端失败: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "初始化终端失败: %v\n", err)
		os.Exit(1)
	}

	err = run(screen, cfg)
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

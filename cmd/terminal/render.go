package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/protocol"
	"github.com/mattn/go-runewidth"
)

// 渲染颜色标签对应的终端颜色
var palette = map[string]tcell.Color{
	"red":     tcell.ColorRed,
	"magenta": tcell.ColorFuchsia,
	"blue":    tcell.ColorBlue,
}

// viewport 场地像素到终端单元格的映射，最后一行留给状态栏
type viewport struct {
	cols, rows     int
	scaleX, scaleY float64
}

func newViewport(screenW, screenH int, fieldW, fieldH float64) viewport {
	rows := max(screenH-1, 1)
	cols := max(screenW, 1)
	return viewport{
		cols:   cols,
		rows:   rows,
		scaleX: fieldW / float64(cols),
		scaleY: fieldH / float64(rows),
	}
}

// cells 碰撞盒覆盖的单元格范围 [x0,x1) x [y0,y1)，至少占一个单元格
func (v viewport) cells(e protocol.EntityInfo) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(e.X / v.scaleX))
	y0 = int(math.Floor(e.Y / v.scaleY))
	x1 = max(int(math.Ceil((e.X+e.Width)/v.scaleX)), x0+1)
	y1 = max(int(math.Ceil((e.Y+e.Height)/v.scaleY)), y0+1)

	x0, x1 = max(x0, 0), min(x1, v.cols)
	y0, y1 = max(y0, 0), min(y1, v.rows)
	return
}

// draw 绘制一帧
func draw(screen tcell.Screen, frame *protocol.Frame, fieldW, fieldH float64) {
	screen.Clear()
	w, h := screen.Size()
	v := newViewport(w, h, fieldW, fieldH)

	for _, e := range frame.Entities {
		style := tcell.StyleDefault.Background(palette[e.Color])
		x0, y0, x1, y1 := v.cells(e)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				screen.SetContent(x, y, ' ', nil, style)
			}
		}
	}

	status := fmt.Sprintf(" 得分 %d  生命 %d/%d  帧 %d  [方向键移动 空格射击 Esc退出]",
		frame.Score, frame.Health, frame.MaxHealth, frame.FrameID)
	if frame.Over {
		status = fmt.Sprintf(" 游戏结束  得分 %d  [Esc退出]", frame.Score)
	}
	drawText(screen, 0, h-1, status, tcell.StyleDefault.Reverse(true))

	screen.Show()
}

// drawText 按显示宽度逐字写入，中文占两列
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

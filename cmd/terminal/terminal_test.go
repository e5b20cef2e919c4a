package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/input"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/physics"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/protocol"
)

func TestViewport_Cells(t *testing.T) {
	// 600x800 场地映射到 60x40 单元格，每格 10x20 像素
	v := newViewport(60, 41, 600, 800)

	tests := []struct {
		name           string
		e              protocol.EntityInfo
		x0, y0, x1, y1 int
	}{
		{"aligned", protocol.EntityInfo{X: 100, Y: 200, Width: 40, Height: 40}, 10, 10, 14, 12},
		{"partial cells", protocol.EntityInfo{X: 105, Y: 210, Width: 20, Height: 20}, 10, 10, 13, 12},
		{"tiny", protocol.EntityInfo{X: 100, Y: 200, Width: 1, Height: 1}, 10, 10, 11, 11},
		{"clipped", protocol.EntityInfo{X: -15, Y: 790, Width: 20, Height: 20}, 0, 39, 1, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1 := v.cells(tt.e)
			if x0 != tt.x0 || y0 != tt.y0 || x1 != tt.x1 || y1 != tt.y1 {
				t.Errorf("cells = (%d,%d)-(%d,%d), want (%d,%d)-(%d,%d)",
					x0, y0, x1, y1, tt.x0, tt.y0, tt.x1, tt.y1)
			}
		})
	}
}

func TestDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(60, 41)

	frame := &protocol.Frame{
		Score: 100, Health: 90, MaxHealth: 100,
		Entities: []protocol.EntityInfo{
			{ID: "player", Type: "player", Color: "red", X: 100, Y: 200, Width: 20, Height: 20},
		},
	}
	draw(screen, frame, 600, 800)

	_, _, style, _ := screen.GetContent(10, 10)
	if _, bg, _ := style.Decompose(); bg != tcell.ColorRed {
		t.Errorf("player cell background = %v, want red", bg)
	}
	_, _, style, _ = screen.GetContent(30, 30)
	if _, bg, _ := style.Decompose(); bg == tcell.ColorRed {
		t.Error("empty cell painted")
	}
	if r, _, _, _ := screen.GetContent(1, 40); r != '得' {
		t.Errorf("status line starts with %q", r)
	}
}

func TestKeyState(t *testing.T) {
	k := &keyState{held: make(map[string]time.Time)}
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	a, ok := k.press(input.KeyArrowLeft, t0)
	if !ok || a != models.Move(physics.Left) {
		t.Fatalf("first press = (%v, %v), want move(left)", a, ok)
	}
	// 重复按键只刷新时间
	if _, ok := k.press(input.KeyArrowLeft, t0.Add(100*time.Millisecond)); ok {
		t.Error("repeat should not emit another move")
	}

	if got := k.expire(t0.Add(200 * time.Millisecond)); len(got) != 0 {
		t.Errorf("expire too early: %v", got)
	}
	got := k.expire(t0.Add(100*time.Millisecond + holdWindow))
	if len(got) != 1 || got[0] != models.StopMoving(physics.Left) {
		t.Errorf("expire = %v, want stop(left)", got)
	}

	if _, ok := k.press(input.KeyArrowLeft, t0.Add(time.Second)); !ok {
		t.Error("press after release should move again")
	}
}

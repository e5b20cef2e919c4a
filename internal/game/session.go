// session.go

package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/physics"
)

// DefeatScore 击败一个敌人获得的分数
const DefeatScore = 100

// ErrPlayfieldTooSmall 场地放不下玩家
var ErrPlayfieldTooSmall = errors.New("场地尺寸小于玩家尺寸")

// Session 一局游戏的全部可变状态，只允许一个 goroutine 调用 Update
type Session struct {
	playfield physics.Dimensions[physics.Pixels]

	player  *models.Player
	enemies []*models.Enemy
	bullets []*models.Bullet

	// 待处理的输入，在下一次 Update 开始时按到达顺序处理
	queue []models.Action

	startedAt time.Time
	lastTick  time.Time
	frameID   int64

	score    int
	defeated int
}

// NewSession 创建会话，now 作为第一次 tick 的起点
func NewSession(playfield physics.Dimensions[physics.Pixels], enemies []*models.Enemy, now time.Time) (*Session, error) {
	if playfield.Width < models.PlayerWidth || playfield.Height < models.PlayerHeight {
		return nil, fmt.Errorf("%w: %vx%v", ErrPlayfieldTooSmall, playfield.Width, playfield.Height)
	}

	return &Session{
		playfield: playfield,
		player:    models.NewPlayer(playfield),
		enemies:   append([]*models.Enemy(nil), enemies...),
		startedAt: now,
		lastTick:  now,
	}, nil
}

// Push 输入动作入队
func (s *Session) Push(actions ...models.Action) {
	s.queue = append(s.queue, actions...)
}

// AddBullet 直接向场地加入一颗子弹
func (s *Session) AddBullet(b *models.Bullet) {
	s.bullets = append(s.bullets, b)
}

// Update 执行一次 tick。
// 碰撞总是基于上一帧结束时的位置判定，子弹在判定之后才移动，
// 高速子弹可能在两帧之间穿过较薄的碰撞盒。
func (s *Session) Update(now time.Time) {
	elapsed := now.Sub(s.lastTick)
	if elapsed < 0 {
		elapsed = 0
	}
	s.frameID++

	// 1. 处理输入
	s.drainInput(elapsed)

	// 2. 限制玩家在场地内
	s.player.ClampTo(s.playfield)

	// 3. 敌人子弹命中玩家
	spent := resolvePlayerHits(s.player, s.bullets)

	// 4. 移除命中玩家的子弹
	s.bullets = removeSpent(s.bullets, spent)

	// 5. 玩家子弹命中敌人，移除被击败的敌人
	spent = resolveEnemyHits(s.enemies, s.bullets)
	var defeated int
	s.enemies, defeated = removeDefeated(s.enemies)
	s.defeated += defeated
	s.score += defeated * DefeatScore

	// 6. 敌人开火
	for _, e := range s.enemies {
		if b := e.FireBullet(now); b != nil {
			s.bullets = append(s.bullets, b)
		}
	}

	// 7. 移除命中敌人的子弹
	s.bullets = removeSpent(s.bullets, spent)

	// 8. 子弹移动
	for _, b := range s.bullets {
		b.Reposition(elapsed)
	}

	// 9. 移除离开场地的子弹
	s.cullBullets()

	// 10. 记录本次 tick 时间
	s.lastTick = now
}

// drainInput 按到达顺序处理输入。
// 射击使用玩家处理到该动作时的位置；本 tick 没有移动动作时玩家沿保持的方向移动。
func (s *Session) drainInput(elapsed time.Duration) {
	moved := false
	for _, action := range s.queue {
		switch action.Type {
		case models.ActionMove, models.ActionStopMoving:
			s.player.Reposition(action, elapsed)
			moved = true
		case models.ActionShoot:
			s.bullets = append(s.bullets, models.NewBullet(models.OwnerPlayer, models.KindBasic, s.player.Position))
		}
	}
	clear(s.queue)
	s.queue = s.queue[:0]

	if !moved {
		s.player.Coast(elapsed)
	}
}

// cullBullets 移除碰撞盒与场地没有重叠的子弹
func (s *Session) cullBullets() {
	bounds := s.Bounds()
	kept := s.bullets[:0]
	for _, b := range s.bullets {
		if b.Hitbox().Intersects(bounds) {
			kept = append(kept, b)
		}
	}
	clear(s.bullets[len(kept):])
	s.bullets = kept
}

// Bounds 场地矩形
func (s *Session) Bounds() physics.Rect[physics.Pixels] {
	return physics.NewRect(physics.NewPosition[physics.Pixels](0, 0), s.playfield)
}

// Playfield 场地尺寸
func (s *Session) Playfield() physics.Dimensions[physics.Pixels] {
	return s.playfield
}

// Player 玩家
func (s *Session) Player() *models.Player {
	return s.player
}

// Enemies 当前存活的敌人（副本）
func (s *Session) Enemies() []*models.Enemy {
	return append([]*models.Enemy(nil), s.enemies...)
}

// Bullets 当前场上的子弹（副本）
func (s *Session) Bullets() []*models.Bullet {
	return append([]*models.Bullet(nil), s.bullets...)
}

// Entities 渲染查询，按绘制顺序返回玩家、敌人、子弹
func (s *Session) Entities() []models.Entity {
	entities := make([]models.Entity, 0, 1+len(s.enemies)+len(s.bullets))
	entities = append(entities, s.player)
	for _, e := range s.enemies {
		entities = append(entities, e)
	}
	for _, b := range s.bullets {
		entities = append(entities, b)
	}
	return entities
}

// Score 当前得分
func (s *Session) Score() int {
	return s.score
}

// Defeated 已击败的敌人数
func (s *Session) Defeated() int {
	return s.defeated
}

// FrameID 已执行的 tick 数
func (s *Session) FrameID() int64 {
	return s.frameID
}

// StartedAt 会话开始时间
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// LastTick 上一次 tick 的时间
func (s *Session) LastTick() time.Time {
	return s.lastTick
}

// Over 玩家生命耗尽时游戏结束，玩家本身不会被移除
func (s *Session) Over() bool {
	return s.player.Health().Empty()
}

package game

import (
	"errors"
	"testing"
	"time"

	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/physics"
	"pgregory.net/rapid"
)

var (
	epoch     = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	playfield = physics.NewDimensions[physics.Pixels](600, 800)
)

func px(x, y physics.Pixels) physics.Position[physics.Pixels] {
	return physics.NewPosition(x, y)
}

func newEnemyAt(t testing.TB, x, y physics.Pixels, hp uint32) *models.Enemy {
	t.Helper()
	e, err := models.NewEnemy(
		px(x, y),
		physics.NewDimensions[physics.Pixels](40, 30),
		models.NewHealthPoints(hp),
		[]models.BulletTemplate{{Kind: models.KindBasic, Offset: px(10, 30)}},
		epoch,
	)
	if err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}
	return e
}

func newTestSession(t testing.TB, enemies ...*models.Enemy) *Session {
	t.Helper()
	s, err := NewSession(playfield, enemies, epoch)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func bulletsOwnedBy(s *Session, owner models.Owner) []*models.Bullet {
	var out []*models.Bullet
	for _, b := range s.Bullets() {
		if b.Owner() == owner {
			out = append(out, b)
		}
	}
	return out
}

func TestNewSession_PlayfieldTooSmall(t *testing.T) {
	_, err := NewSession(physics.NewDimensions[physics.Pixels](10, 10), nil, epoch)
	if !errors.Is(err, ErrPlayfieldTooSmall) {
		t.Errorf("err = %v, want ErrPlayfieldTooSmall", err)
	}
}

func TestSession_ShootScenario(t *testing.T) {
	s := newTestSession(t)
	clock := NewManualClock(epoch)

	s.Push(models.Shoot())
	s.Update(clock.Now())

	bullets := bulletsOwnedBy(s, models.OwnerPlayer)
	if len(bullets) != 1 {
		t.Fatalf("player bullets = %d, want 1", len(bullets))
	}
	b := bullets[0]
	if b.Kind() != models.KindBasic {
		t.Errorf("Kind = %v, want basic", b.Kind())
	}
	if pos := b.Position(); pos.X != 288 || pos.Y != 736 {
		t.Errorf("Position = (%v, %v), want (288, 736)", pos.X, pos.Y)
	}

	// 1000ms 后子弹上移 0.5px/ms * 1000ms，仍在场地内
	for i := 0; i < 10; i++ {
		s.Update(clock.Advance(100 * time.Millisecond))
	}
	if len(s.Bullets()) != 1 {
		t.Fatalf("bullets = %d, want 1", len(s.Bullets()))
	}
	if pos := b.Position(); pos.X != 288 || pos.Y != 236 {
		t.Errorf("after 1s Position = (%v, %v), want (288, 236)", pos.X, pos.Y)
	}

	// 继续前进直到离开场地顶部
	for i := 0; i < 6; i++ {
		s.Update(clock.Advance(100 * time.Millisecond))
	}
	if n := len(s.Bullets()); n != 0 {
		t.Errorf("bullets = %d, want 0 after leaving the playfield", n)
	}
}

func TestSession_EnemyDefeatScenario(t *testing.T) {
	enemy := newEnemyAt(t, 280, 300, 100)
	s := newTestSession(t, enemy)

	hit := func() {
		s.AddBullet(models.NewBullet(models.OwnerPlayer, models.KindBasic, px(290, 300)))
		s.Update(epoch)
	}

	for i := 0; i < 3; i++ {
		hit()
	}
	if got := enemy.Health().Current(); got != 70 {
		t.Errorf("after 3 hits health = %d, want 70", got)
	}
	if len(s.Enemies()) != 1 {
		t.Fatalf("enemy removed too early")
	}

	hit()
	if got := enemy.Health().Current(); got != 60 {
		t.Errorf("after 4 hits health = %d, want 60", got)
	}

	for i := 0; i < 6; i++ {
		hit()
	}
	if got := enemy.Health().Current(); got != 0 {
		t.Errorf("after 10 hits health = %d, want 0", got)
	}
	if n := len(s.Enemies()); n != 0 {
		t.Errorf("enemies = %d, want 0", n)
	}
	if n := len(s.Bullets()); n != 0 {
		t.Errorf("bullets = %d, want 0 (every hit consumes its bullet)", n)
	}
	if s.Score() != DefeatScore || s.Defeated() != 1 {
		t.Errorf("Score = %d, Defeated = %d", s.Score(), s.Defeated())
	}
}

func TestSession_CollisionDedup(t *testing.T) {
	left := newEnemyAt(t, 100, 300, 100)
	right := newEnemyAt(t, 130, 300, 100)
	s := newTestSession(t, left, right)

	// 横跨两个敌人的子弹
	shared := models.NewBullet(models.OwnerPlayer, models.KindBasic, px(130, 305))
	// 不命中任何目标的子弹
	bystander := models.NewBullet(models.OwnerPlayer, models.KindBasic, px(400, 400))
	s.AddBullet(shared)
	s.AddBullet(bystander)

	s.Update(epoch)

	if got := left.Health().Current(); got != 90 {
		t.Errorf("left health = %d, want 90", got)
	}
	if got := right.Health().Current(); got != 90 {
		t.Errorf("right health = %d, want 90", got)
	}

	bullets := s.Bullets()
	if len(bullets) != 1 || bullets[0].ID != bystander.ID {
		t.Errorf("bullets = %d, want only the bystander to remain", len(bullets))
	}
}

func TestSession_PlayerHit(t *testing.T) {
	s := newTestSession(t)
	player := s.Player()

	s.AddBullet(models.NewBullet(models.OwnerEnemy, models.KindBasic, player.Position))
	// 玩家自己的子弹不会伤害玩家
	s.AddBullet(models.NewBullet(models.OwnerPlayer, models.KindBasic, px(player.Position.X, player.Position.Y+5)))
	s.Update(epoch)

	if got := player.Health().Current(); got != 95 {
		t.Errorf("health = %d, want 95", got)
	}
	if n := len(bulletsOwnedBy(s, models.OwnerEnemy)); n != 0 {
		t.Errorf("enemy bullets = %d, want 0", n)
	}
	if n := len(bulletsOwnedBy(s, models.OwnerPlayer)); n != 1 {
		t.Errorf("player bullets = %d, want 1", n)
	}
}

func TestSession_CollisionUsesPreviousPositions(t *testing.T) {
	s := newTestSession(t)
	player := s.Player()
	clock := NewManualClock(epoch)

	// 子弹底边刚好接触玩家顶边，不算命中
	s.AddBullet(models.NewBullet(models.OwnerEnemy, models.KindBasic, px(player.Position.X, player.Position.Y-20)))

	// 本 tick 子弹移动后才与玩家重叠，伤害在下一个 tick 结算
	s.Update(clock.Advance(100 * time.Millisecond))
	if !player.Health().Full() {
		t.Fatalf("damage applied against post-move position")
	}

	s.Update(clock.Now())
	if got := player.Health().Current(); got != 95 {
		t.Errorf("health = %d, want 95", got)
	}
}

func TestSession_EnemyFire(t *testing.T) {
	enemy := newEnemyAt(t, 100, 50, 100)
	s := newTestSession(t, enemy)
	clock := NewManualClock(epoch)

	s.Update(clock.Advance(400 * time.Millisecond))
	if n := len(bulletsOwnedBy(s, models.OwnerEnemy)); n != 0 {
		t.Fatalf("enemy bullets = %d before cooldown", n)
	}

	s.Update(clock.Advance(100 * time.Millisecond))
	fired := bulletsOwnedBy(s, models.OwnerEnemy)
	if len(fired) != 1 {
		t.Fatalf("enemy bullets = %d, want 1", len(fired))
	}
	// 生成于 (110, 80)，同一 tick 内再下移 0.125 * 100
	if pos := fired[0].Position(); pos.X != 110 || pos.Y != 92.5 {
		t.Errorf("Position = (%v, %v), want (110, 92.5)", pos.X, pos.Y)
	}

	s.Update(clock.Advance(300 * time.Millisecond))
	if n := len(bulletsOwnedBy(s, models.OwnerEnemy)); n != 1 {
		t.Errorf("enemy bullets = %d, want 1 within cooldown", n)
	}
}

func TestSession_ActionOrder(t *testing.T) {
	t.Run("move then shoot", func(t *testing.T) {
		s := newTestSession(t)
		s.Push(models.Move(physics.Right), models.Shoot())
		s.Update(epoch.Add(100 * time.Millisecond))

		bullets := s.Bullets()
		if len(bullets) != 1 || bullets[0].Position().X != 313 {
			t.Errorf("bullet should spawn at moved x=313")
		}
	})

	t.Run("shoot then move", func(t *testing.T) {
		s := newTestSession(t)
		s.Push(models.Shoot(), models.Move(physics.Right))
		s.Update(epoch.Add(100 * time.Millisecond))

		bullets := s.Bullets()
		if len(bullets) != 1 || bullets[0].Position().X != 288 {
			t.Errorf("bullet should spawn at pre-move x=288")
		}
		if got := s.Player().Position.X; got != 313 {
			t.Errorf("player x = %v, want 313", got)
		}
	})
}

func TestSession_HeldDirectionKeepsMoving(t *testing.T) {
	s := newTestSession(t)
	clock := NewManualClock(epoch)

	s.Push(models.Move(physics.Left))
	s.Update(clock.Advance(100 * time.Millisecond))
	s.Update(clock.Advance(100 * time.Millisecond))
	if got := s.Player().Position.X; got != 238 {
		t.Errorf("x = %v, want 238", got)
	}

	s.Push(models.StopMoving(physics.Left))
	s.Update(clock.Advance(100 * time.Millisecond))
	s.Update(clock.Advance(100 * time.Millisecond))
	if got := s.Player().Position.X; got != 238 {
		t.Errorf("x = %v, want 238 after stopping", got)
	}
}

func TestSession_ClampsPlayer(t *testing.T) {
	s := newTestSession(t)
	clock := NewManualClock(epoch)

	s.Push(models.Move(physics.Down), models.Move(physics.Right))
	s.Update(clock.Advance(10 * time.Second))

	pos := s.Player().Position
	if pos.X != 576 || pos.Y != 768 {
		t.Errorf("Position = (%v, %v), want (576, 768)", pos.X, pos.Y)
	}
}

func TestSession_ClampProperty(t *testing.T) {
	dirs := []physics.Direction{physics.Up, physics.Down, physics.Left, physics.Right}

	rapid.Check(t, func(rt *rapid.T) {
		s := newTestSession(t)
		now := epoch

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			n := rapid.IntRange(0, 3).Draw(rt, "actions")
			for j := 0; j < n; j++ {
				dir := rapid.SampledFrom(dirs).Draw(rt, "dir")
				switch rapid.IntRange(0, 2).Draw(rt, "kind") {
				case 0:
					s.Push(models.Move(dir))
				case 1:
					s.Push(models.StopMoving(dir))
				default:
					s.Push(models.Shoot())
				}
			}

			now = now.Add(time.Duration(rapid.IntRange(0, 5000).Draw(rt, "ms")) * time.Millisecond)
			s.Update(now)

			pos := s.Player().Position
			if pos.X < 0 || pos.X > 600-24 || pos.Y < 0 || pos.Y > 800-32 {
				rt.Fatalf("player out of bounds at (%v, %v)", pos.X, pos.Y)
			}
		}
	})
}

func TestSession_CullsOutOfBounds(t *testing.T) {
	s := newTestSession(t)

	outside := models.NewBullet(models.OwnerPlayer, models.KindBasic, px(100, -20))
	edge := models.NewBullet(models.OwnerPlayer, models.KindBasic, px(100, -19))
	below := models.NewBullet(models.OwnerEnemy, models.KindBasic, px(100, 800))
	s.AddBullet(outside)
	s.AddBullet(edge)
	s.AddBullet(below)

	s.Update(epoch)

	bullets := s.Bullets()
	if len(bullets) != 1 || bullets[0].ID != edge.ID {
		t.Errorf("bullets = %d, want only the partially visible bullet", len(bullets))
	}
}

func TestSession_NegativeElapsed(t *testing.T) {
	s := newTestSession(t)
	s.Push(models.Move(physics.Right))
	s.Update(epoch.Add(-time.Second))

	if got := s.Player().Position.X; got != 288 {
		t.Errorf("x = %v, want 288 when the clock goes backwards", got)
	}
	if !s.LastTick().Equal(epoch.Add(-time.Second)) {
		t.Errorf("LastTick = %v", s.LastTick())
	}
}

func TestSession_OverKeepsPlayer(t *testing.T) {
	s := newTestSession(t)
	player := s.Player()

	for i := 0; i < 20; i++ {
		s.AddBullet(models.NewBullet(models.OwnerEnemy, models.KindBasic, player.Position))
	}
	s.Update(epoch)

	if !s.Over() {
		t.Fatalf("health = %d, want game over", player.Health().Current())
	}
	entities := s.Entities()
	if len(entities) == 0 || entities[0].GetType() != models.EntityPlayer {
		t.Error("player must remain in the render query")
	}
}

func TestSession_Entities(t *testing.T) {
	s := newTestSession(t, newEnemyAt(t, 100, 50, 100))
	s.Push(models.Shoot())
	s.Update(epoch)

	entities := s.Entities()
	want := []models.EntityType{models.EntityPlayer, models.EntityEnemy, models.EntityBullet}
	if len(entities) != len(want) {
		t.Fatalf("entities = %d, want %d", len(entities), len(want))
	}
	for i, e := range entities {
		if e.GetType() != want[i] {
			t.Errorf("entities[%d] = %s, want %s", i, e.GetType(), want[i])
		}
	}
	if entities[0].Color() != models.ColorRed || entities[1].Color() != models.ColorMagenta || entities[2].Color() != models.ColorBlue {
		t.Error("unexpected render colors")
	}
	if s.FrameID() != 1 {
		t.Errorf("FrameID = %d, want 1", s.FrameID())
	}
}

package game

import (
	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
)

// spentSet 本 tick 内已命中的子弹ID集合
type spentSet map[string]struct{}

func (s spentSet) add(id string) {
	s[id] = struct{}{}
}

func (s spentSet) has(id string) bool {
	_, ok := s[id]
	return ok
}

// resolvePlayerHits 敌人子弹与玩家的碰撞，返回已命中的子弹
func resolvePlayerHits(player *models.Player, bullets []*models.Bullet) spentSet {
	spent := make(spentSet)
	hitbox := player.Hitbox()

	for _, b := range bullets {
		if b.Owner() != models.OwnerEnemy {
			continue
		}
		if !b.Hitbox().Intersects(hitbox) {
			continue
		}

		player.TakeDamage(b.Damage())
		spent.add(b.ID)
	}

	return spent
}

// resolveEnemyHits 玩家子弹与敌人的碰撞。
// 同一颗子弹同时覆盖多个敌人时对每个敌人各造成一次伤害，但只记一次。
func resolveEnemyHits(enemies []*models.Enemy, bullets []*models.Bullet) spentSet {
	spent := make(spentSet)

	for _, e := range enemies {
		hitbox := e.Hitbox()
		for _, b := range bullets {
			if b.Owner() != models.OwnerPlayer {
				continue
			}
			if !b.Hitbox().Intersects(hitbox) {
				continue
			}

			e.TakeDamage(b.Damage())
			spent.add(b.ID)
		}
	}

	return spent
}

// removeSpent 过滤掉已命中的子弹，保持其余子弹的顺序
func removeSpent(bullets []*models.Bullet, spent spentSet) []*models.Bullet {
	if len(spent) == 0 {
		return bullets
	}

	kept := bullets[:0]
	for _, b := range bullets {
		if !spent.has(b.ID) {
			kept = append(kept, b)
		}
	}
	clear(bullets[len(kept):])

	return kept
}

// removeDefeated 移除生命值为 0 的敌人，返回剩余敌人和被击败数量
func removeDefeated(enemies []*models.Enemy) ([]*models.Enemy, int) {
	kept := enemies[:0]
	for _, e := range enemies {
		if !e.Defeated() {
			kept = append(kept, e)
		}
	}
	defeated := len(enemies) - len(kept)
	clear(enemies[len(kept):])

	return kept, defeated
}

package game

import (
	"fmt"
	"time"

	"github.com/jacl-coder/PixelStorm-Arcade/config"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/physics"
)

// BuildEnemies 根据配置生成敌人
func BuildEnemies(layout []config.EnemyConfig, now time.Time) ([]*models.Enemy, error) {
	enemies := make([]*models.Enemy, 0, len(layout))
	for i, ec := range layout {
		rotation := make([]models.BulletTemplate, 0, len(ec.Rotation))
		for _, tc := range ec.Rotation {
			kind, err := models.ParseKind(tc.Kind)
			if err != nil {
				return nil, fmt.Errorf("第 %d 个敌人: %w", i, err)
			}
			rotation = append(rotation, models.BulletTemplate{
				Kind:   kind,
				Offset: physics.NewPosition(physics.Pixels(tc.OffsetX), physics.Pixels(tc.OffsetY)),
			})
		}

		enemy, err := models.NewEnemy(
			physics.NewPosition(physics.Pixels(ec.X), physics.Pixels(ec.Y)),
			physics.NewDimensions(physics.Pixels(ec.Width), physics.Pixels(ec.Height)),
			models.NewHealthPoints(ec.Health),
			rotation,
			now,
		)
		if err != nil {
			return nil, fmt.Errorf("第 %d 个敌人: %w", i, err)
		}
		enemies = append(enemies, enemy)
	}

	return enemies, nil
}

// NewSessionFromConfig 按游戏配置创建会话
func NewSessionFromConfig(cfg config.GameConfig, now time.Time) (*Session, error) {
	enemies, err := BuildEnemies(cfg.Enemies, now)
	if err != nil {
		return nil, err
	}

	playfield := physics.NewDimensions(physics.Pixels(cfg.Playfield.Width), physics.Pixels(cfg.Playfield.Height))
	return NewSession(playfield, enemies, now)
}

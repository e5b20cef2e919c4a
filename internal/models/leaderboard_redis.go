package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// 排行榜Redis键名
const (
	LeaderboardScoreKey = "arcade:leaderboard:score"

	// 最近一局记录键前缀
	LastSessionPrefix = "arcade:session:last:"

	// 最近一局记录保存时间
	LastSessionTTL = 24 * time.Hour
)

// RedisLeaderboard Redis排行榜管理器，只保留每个玩家的最高分
type RedisLeaderboard struct {
	client *redis.Client
}

// NewRedisLeaderboard 创建Redis排行榜管理器
func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{client: client}
}

// RecordSession 写入一局结果：更新最高分并缓存最近一局
func (rl *RedisLeaderboard) RecordSession(ctx context.Context, rec SessionRecord) error {
	member := strconv.FormatInt(rec.PlayerID, 10)

	// 仅当新分数更高时更新
	if err := rl.client.ZAddArgs(ctx, LeaderboardScoreKey, redis.ZAddArgs{
		GT:      true,
		Members: []redis.Z{{Score: float64(rec.Score), Member: member}},
	}).Err(); err != nil {
		return fmt.Errorf("更新排行榜失败: %w", err)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	if err := rl.client.Set(ctx, LastSessionPrefix+member, data, LastSessionTTL).Err(); err != nil {
		return fmt.Errorf("缓存对局记录失败: %w", err)
	}

	return nil
}

// GetLeaderboard 获取排行榜（按分数降序）
func (rl *RedisLeaderboard) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	members, err := rl.client.ZRevRangeWithScores(ctx, LeaderboardScoreKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(members))
	for i, member := range members {
		id, ok := member.Member.(string)
		if !ok {
			continue
		}
		playerID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}

		entries = append(entries, LeaderboardEntry{
			PlayerID: playerID,
			Score:    member.Score,
			Rank:     i + 1,
		})
	}

	return entries, nil
}

// GetPlayerRank 获取玩家排名，不在榜上返回 -1
func (rl *RedisLeaderboard) GetPlayerRank(ctx context.Context, playerID int64) (int, error) {
	rank, err := rl.client.ZRevRank(ctx, LeaderboardScoreKey, strconv.FormatInt(playerID, 10)).Result()
	if err != nil {
		if err == redis.Nil {
			return -1, nil
		}
		return -1, err
	}

	return int(rank) + 1, nil
}

// GetLastSession 获取玩家最近一局记录，没有记录返回 nil
func (rl *RedisLeaderboard) GetLastSession(ctx context.Context, playerID int64) (*SessionRecord, error) {
	data, err := rl.client.Get(ctx, LastSessionPrefix+strconv.FormatInt(playerID, 10)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var rec SessionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

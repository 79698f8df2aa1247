package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/eyalet-online/internal/game/room"
)

const (
	// Redis key 前缀
	roomKeyPrefix = "room:"

	fieldData        = "data"
	fieldCreatedAt   = "created_at"
	fieldUpdatedAt   = "updated_at"
	fieldGameStarted = "game_started"
)

// RedisStore 基于 Redis Hash 的房间存储。每个房间一个 key，
// 字段为序列化快照、创建/更新时间戳与开局标记。
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save 写入快照，created_at 在重复保存时保留首次的值
func (rs *RedisStore) Save(ctx context.Context, snap *room.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("序列化房间快照失败: %w", err)
	}

	key := roomKeyPrefix + strings.ToUpper(snap.Code)
	now := time.Now().Format(time.RFC3339)

	createdAt, err := rs.client.HGet(ctx, key, fieldCreatedAt).Result()
	if err == redis.Nil || createdAt == "" {
		createdAt = now
	} else if err != nil {
		return err
	}

	gameStarted := "0"
	if snap.GameStarted {
		gameStarted = "1"
	}

	return rs.client.HSet(ctx, key, map[string]any{
		fieldData:        string(data),
		fieldCreatedAt:   createdAt,
		fieldUpdatedAt:   now,
		fieldGameStarted: gameStarted,
	}).Err()
}

// Load 读取快照，不存在时返回 (nil, nil)
func (rs *RedisStore) Load(ctx context.Context, code string) (*room.Snapshot, error) {
	key := roomKeyPrefix + strings.ToUpper(code)
	data, err := rs.client.HGet(ctx, key, fieldData).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap room.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("反序列化房间快照失败: %w", err)
	}
	return &snap, nil
}

// Delete 删除快照
func (rs *RedisStore) Delete(ctx context.Context, code string) error {
	return rs.client.Del(ctx, roomKeyPrefix+strings.ToUpper(code)).Err()
}

// Cleanup 删除更新时间早于保留期的房间
func (rs *RedisStore) Cleanup(ctx context.Context, olderThan time.Duration) (int, error) {
	keys, err := rs.client.Keys(ctx, roomKeyPrefix+"*").Result()
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, key := range keys {
		updatedAt, err := rs.client.HGet(ctx, key, fieldUpdatedAt).Result()
		if err != nil {
			continue
		}
		ts, err := time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			continue
		}
		if ts.Before(cutoff) {
			if err := rs.client.Del(ctx, key).Err(); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

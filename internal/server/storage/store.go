package storage

import (
	"context"
	"time"

	"github.com/palemoky/eyalet-online/internal/game/room"
)

// RoomStore 以房间号为键的持久化存储。Redis 表与平面文件两种后端
// 语义一致，可互换使用。
type RoomStore interface {
	// Save 写入或更新快照，首次写入的时间戳在之后的更新中保留
	Save(ctx context.Context, snap *room.Snapshot) error
	// Load 读取快照，不存在时返回 (nil, nil)
	Load(ctx context.Context, code string) (*room.Snapshot, error)
	// Delete 删除快照
	Delete(ctx context.Context, code string) error
	// Cleanup 删除更新时间早于保留期的行，返回删除数量。
	// 这是显式的保留策略，默认没有任何定时任务调用它。
	Cleanup(ctx context.Context, olderThan time.Duration) (int, error)
}

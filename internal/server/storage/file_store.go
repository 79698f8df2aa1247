package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/palemoky/eyalet-online/internal/game/room"
)

// FileStore 平面文件快照存储：每个房间号一个 JSON 文件。
// 保留期清理以文件修改时间为准。
type FileStore struct {
	dir string
}

// NewFileStore 创建文件存储，目录不存在时创建
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建快照目录失败: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save 写入快照文件
func (fs *FileStore) Save(ctx context.Context, snap *room.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化房间快照失败: %w", err)
	}

	// 先写临时文件再改名，避免进程中断留下半个快照
	path := fs.path(snap.Code)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load 读取快照，不存在时返回 (nil, nil)
func (fs *FileStore) Load(ctx context.Context, code string) (*room.Snapshot, error) {
	data, err := os.ReadFile(fs.path(code))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap room.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("反序列化房间快照失败: %w", err)
	}
	return &snap, nil
}

// Delete 删除快照文件
func (fs *FileStore) Delete(ctx context.Context, code string) error {
	err := os.Remove(fs.path(code))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Cleanup 删除修改时间早于保留期的快照文件
func (fs *FileStore) Cleanup(ctx context.Context, olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(fs.dir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

func (fs *FileStore) path(code string) string {
	return filepath.Join(fs.dir, strings.ToUpper(code)+".json")
}

package storage

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/palemoky/eyalet-online/internal/game/room"
)

const (
	writerQueueSize = 64
	writeTimeout    = 10 * time.Second
)

// ErrWriterClosed 写入队列已关闭
var ErrWriterClosed = errors.New("storage writer closed")

// Writer 把持久化写入挪到后台协程执行：快照在房间锁内构建，
// 慢速磁盘/网络写入不会阻塞任何连接的消息处理路径。
// 调用方依然同步拿到确定的成功/失败结果。
type Writer struct {
	store RoomStore
	jobs  chan writeJob
	done  chan struct{}
	once  sync.Once
}

type writeJob struct {
	snap  *room.Snapshot
	reply chan error
}

// NewWriter 创建并启动后台写入器
func NewWriter(store RoomStore) *Writer {
	w := &Writer{
		store: store,
		jobs:  make(chan writeJob, writerQueueSize),
		done:  make(chan struct{}),
	}
	go w.loop()
	return w
}

// Save 提交快照并等待写入结果
func (w *Writer) Save(ctx context.Context, snap *room.Snapshot) error {
	select {
	case <-w.done:
		return ErrWriterClosed
	default:
	}

	job := writeJob{snap: snap, reply: make(chan error, 1)}

	select {
	case w.jobs <- job:
	case <-w.done:
		return ErrWriterClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-job.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close 停止写入器，排队中的任务由后台协程写完。重复调用安全
func (w *Writer) Close() {
	w.once.Do(func() { close(w.done) })
}

func (w *Writer) loop() {
	for {
		select {
		case job := <-w.jobs:
			w.run(job)
		case <-w.done:
			// 清空剩余队列再退出
			for {
				select {
				case job := <-w.jobs:
					w.run(job)
				default:
					return
				}
			}
		}
	}
}

func (w *Writer) run(job writeJob) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	err := w.store.Save(ctx, job.snap)
	if err != nil {
		log.Printf("持久化房间 %s 失败: %v", job.snap.Code, err)
	}
	job.reply <- err
}

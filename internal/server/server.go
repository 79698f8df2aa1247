package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/eyalet-online/internal/config"
	"github.com/palemoky/eyalet-online/internal/game/diplomacy"
	"github.com/palemoky/eyalet-online/internal/game/room"
	"github.com/palemoky/eyalet-online/internal/server/handlers"
	"github.com/palemoky/eyalet-online/internal/server/storage"
)

// 过期快照的清理间隔
const cleanupInterval = time.Hour

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 桌面客户端不带 Origin 头，放行所有来源
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server 游戏协调服务器，持有房间管理器、外交引擎、
// 存储后端与 playerID→连接 的路由表。
type Server struct {
	cfg       *config.Config
	rooms     *room.Manager
	diplomacy *diplomacy.Engine
	store     storage.RoomStore
	writer    *storage.Writer
	handler   *handlers.Handler

	clients   map[string]handlers.Client // playerID -> 在线连接
	clientsMu sync.RWMutex

	// 连接数上限信号量
	sem chan struct{}

	httpServer *http.Server
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewServer 创建服务器，按配置选择存储后端
func NewServer(cfg *config.Config) (*Server, error) {
	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		rooms:     room.NewManager(cfg.Game),
		diplomacy: diplomacy.NewEngine(),
		store:     store,
		writer:    storage.NewWriter(store),
		clients:   make(map[string]handlers.Client),
		sem:       make(chan struct{}, cfg.Server.MaxConnections),
		stop:      make(chan struct{}),
	}
	s.handler = handlers.New(s.rooms, s.diplomacy, s.store, s.writer, s)
	return s, nil
}

// newStore 构建存储后端。redis 后端启动时即探活，连不上直接失败。
func newStore(cfg *config.Config) (storage.RoomStore, error) {
	switch cfg.Storage.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("连接 Redis 失败: %w", err)
		}
		log.Printf("✅ Redis 已连接: %s", cfg.Redis.Addr)
		return storage.NewRedisStore(client), nil
	case "file":
		return storage.NewFileStore(cfg.Storage.Dir)
	default:
		return nil, fmt.Errorf("未知存储后端: %q", cfg.Storage.Backend)
	}
}

// Start 启动 HTTP 服务并阻塞，直到监听失败或 Shutdown 被调用
func (s *Server) Start() error {
	if d := s.cfg.Storage.RetentionDuration(); d > 0 {
		go s.cleanupLoop(d)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpServer = &http.Server{Addr: addr, Handler: mux}

	log.Printf("🏰 奥斯曼行省在线 服务器启动: ws://%s/ws", addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown 优雅停机：停止接收连接、关闭存储写入队列
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	s.writer.Close()
	return err
}

// handleWebSocket 升级连接并启动读写协程
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	select {
	case s.sem <- struct{}{}:
	default:
		http.Error(w, "server full", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		<-s.sem
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s, conn)
	go client.WritePump()
	go func() {
		defer func() { <-s.sem }()
		client.ReadPump()
	}()
}

// handleHealth 健康检查，报告活动房间数与在线连接数
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.clientsMu.RLock()
	online := len(s.clients)
	s.clientsMu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","rooms":%d,"online":%d}`, s.rooms.Count(), online)
}

// cleanupLoop 定期清理过期快照与过期外交提议
func (s *Server) cleanupLoop(retention time.Duration) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			removed, err := s.store.Cleanup(ctx, retention)
			cancel()
			if err != nil {
				log.Printf("快照清理失败: %v", err)
			} else if removed > 0 {
				log.Printf("🧹 已清理 %d 个过期快照", removed)
			}
			if swept := s.diplomacy.Sweep(); swept > 0 {
				log.Printf("🧹 已清理 %d 条过期外交提议", swept)
			}
		case <-s.stop:
			return
		}
	}
}

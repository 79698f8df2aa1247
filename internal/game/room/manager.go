package room

import (
	"log"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/palemoky/eyalet-online/internal/apperrors"
	"github.com/palemoky/eyalet-online/internal/config"
)

const (
	// 房间号长度
	roomCodeLength = 6
	// 房间号字符集
	roomCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Manager 房间管理器，是活动房间表与玩家→房间路由表的唯一持有者。
// 锁序固定为先管理器锁、后房间锁。
type Manager struct {
	rooms      map[string]*Room
	playerRoom map[string]string // playerID -> roomCode
	cfg        config.GameConfig
	mu         sync.RWMutex
}

// NewManager 创建房间管理器
func NewManager(cfg config.GameConfig) *Manager {
	return &Manager{
		rooms:      make(map[string]*Room),
		playerRoom: make(map[string]string),
		cfg:        cfg,
	}
}

// CreateRoom 创建房间，创建者自动成为房主
func (m *Manager) CreateRoom(playerName string) (*Room, *Player) {
	m.mu.Lock()
	defer m.mu.Unlock()

	player := NewPlayer(playerName)
	r := &Room{
		Code:        m.generateCode(),
		HostID:      player.ID,
		MaxPlayers:  m.cfg.MaxPlayers,
		Players:     make(map[string]*Player),
		PlayerOrder: []string{},
		State:       newGameState(m.cfg.StartYear, m.cfg.StartMonth, m.cfg.StartDay),
		CreatedAt:   time.Now(),
	}
	_ = r.join(player) // 空房间不会满也未开局

	m.rooms[r.Code] = r
	m.playerRoom[player.ID] = r.Code

	log.Printf("🏰 房间已创建: %s (房主: %s)", r.Code, playerName)
	return r, player
}

// JoinRoom 加入房间
func (m *Manager) JoinRoom(code, playerName string) (*Room, *Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[strings.ToUpper(code)]
	if !ok {
		return nil, nil, apperrors.ErrRoomNotFound
	}

	player := NewPlayer(playerName)
	if err := r.join(player); err != nil {
		return nil, nil, err
	}
	m.playerRoom[player.ID] = r.Code

	log.Printf("👤 %s 加入房间: %s", playerName, r.Code)
	return r, player, nil
}

// Get 按房间号查找房间
func (m *Manager) Get(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[strings.ToUpper(code)]
}

// RoomOf 按玩家查找其所在房间
func (m *Manager) RoomOf(playerID string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	code, ok := m.playerRoom[playerID]
	if !ok {
		return nil, apperrors.ErrPlayerNotFound
	}
	r, ok := m.rooms[code]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	return r, nil
}

// Reconnect 校验重连请求并恢复玩家在线状态。
// 失败顺序：房间不存在 → 玩家不是成员 → 令牌不符；失败时不动任何状态。
func (m *Manager) Reconnect(code, playerID, token string) (*Room, *Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[strings.ToUpper(code)]
	if !ok {
		return nil, nil, apperrors.ErrRoomNotFound
	}

	r.mu.Lock()
	player, err := r.reconnect(playerID, token)
	r.mu.Unlock()
	if err != nil {
		return nil, nil, err
	}

	m.playerRoom[playerID] = r.Code

	log.Printf("🔄 %s 重连到房间: %s", player.Name, r.Code)
	return r, player, nil
}

// Disconnect 处理玩家掉线：标记离线、解除路由，所有成员都离线时
// 立刻回收房间（除非之前已被显式持久化，可从快照重建）。
// 返回掉线者视图与房间是否被删除；玩家不在任何房间时 room 为 nil。
func (m *Manager) Disconnect(playerID string) (r *Room, view PlayerView, deleted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code, ok := m.playerRoom[playerID]
	if !ok {
		return nil, PlayerView{}, false
	}
	delete(m.playerRoom, playerID)

	r, ok = m.rooms[code]
	if !ok {
		return nil, PlayerView{}, false
	}

	r.mu.Lock()
	player, empty := r.markDisconnected(playerID)
	if player != nil {
		view = player.view()
	}
	r.mu.Unlock()

	if player == nil {
		return nil, PlayerView{}, false
	}

	if empty {
		delete(m.rooms, code)
		for id, c := range m.playerRoom {
			if c == code {
				delete(m.playerRoom, id)
			}
		}
		log.Printf("🗑️  房间已回收: %s", code)
		return r, view, true
	}
	return r, view, false
}

// Restore 从快照重建房间，所有玩家置为离线，须凭原令牌重连。
// 同号房间仍活跃时拒绝。
func (m *Manager) Restore(snap *Snapshot) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := strings.ToUpper(snap.Code)
	if _, ok := m.rooms[code]; ok {
		return nil, apperrors.ErrRoomActive
	}

	r := snap.restore()
	m.rooms[code] = r

	log.Printf("📂 房间已从快照加载: %s (%d 名玩家待重连)", code, len(r.Players))
	return r, nil
}

// Count 当前活动房间数
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// generateCode 采样生成未被占用的 6 位房间号。调用方必须持有管理器锁
func (m *Manager) generateCode() string {
	for {
		b := make([]byte, roomCodeLength)
		for i := range b {
			b[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		code := string(b)
		if _, ok := m.rooms[code]; !ok {
			return code
		}
	}
}

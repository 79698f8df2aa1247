package room

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Player 房间成员。GameState 是单机模拟层的黑盒快照，
// 协调器只存储和转发，从不解读其中的经济/军事数值。
type Player struct {
	ID             string
	Name           string
	Province       string
	Ready          bool
	Connected      bool
	ReconnectToken string // 终身不变，是重连的唯一凭证
	LastActivity   time.Time
	DisconnectedAt time.Time
	GameState      map[string]any
}

// PlayerView 玩家的对外视图
type PlayerView struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Province  string         `json:"province"`
	Ready     bool           `json:"ready"`
	Connected bool           `json:"connected"`
	GameState map[string]any `json:"game_state"`
}

// NewPlayer 创建玩家并签发重连令牌
func NewPlayer(name string) *Player {
	return &Player{
		ID:             uuid.New().String(),
		Name:           name,
		Connected:      true,
		ReconnectToken: generateToken(),
		LastActivity:   time.Now(),
		GameState:      DefaultPlayerState(),
	}
}

// DefaultPlayerState 新玩家的初始模拟状态
func DefaultPlayerState() map[string]any {
	return map[string]any{
		"gold":       1000,
		"population": 10000,
		"army":       500,
		"resources": map[string]any{
			"food":  100,
			"wood":  100,
			"stone": 50,
			"iron":  25,
		},
		"buildings": []any{},
	}
}

// view 构建玩家视图。调用方必须持有房间锁
func (p *Player) view() PlayerView {
	return PlayerView{
		ID:        p.ID,
		Name:      p.Name,
		Province:  p.Province,
		Ready:     p.Ready,
		Connected: p.Connected,
		GameState: deepCopyState(p.GameState),
	}
}

// generateToken 生成 32 字符的十六进制重连令牌
func generateToken() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// deepCopyState 深拷贝黑盒状态，视图在锁外序列化时不与在线修改竞争。
// 状态来自 JSON，往返一次即可得到独立副本。
func deepCopyState(state map[string]any) map[string]any {
	if state == nil {
		return nil
	}
	data, err := json.Marshal(state)
	if err != nil {
		return map[string]any{}
	}
	var cp map[string]any
	if err := json.Unmarshal(data, &cp); err != nil {
		return map[string]any{}
	}
	return cp
}

package room

import "time"

// Snapshot 房间的持久化形态。与运行时 Room 分离，
// 快照里不存在连接句柄，玩家恢复后一律离线。
type Snapshot struct {
	Code            string                    `json:"code"`
	HostID          string                    `json:"host_id"`
	MaxPlayers      int                       `json:"max_players"`
	GameStarted     bool                      `json:"game_started"`
	CurrentTurn     int                       `json:"current_turn"`
	CurrentPlayerID string                    `json:"current_player_id"`
	GameState       *GameState                `json:"game_state"`
	Players         map[string]PlayerSnapshot `json:"players"`
	PlayerOrder     []string                  `json:"player_order"`
	SavedAt         string                    `json:"saved_at"`
}

// PlayerSnapshot 玩家的持久化形态，重连令牌原样保存
type PlayerSnapshot struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Province       string         `json:"province"`
	Ready          bool           `json:"ready"`
	ReconnectToken string         `json:"reconnect_token"`
	GameState      map[string]any `json:"game_state"`
}

// Snapshot 导出房间快照，字段均为独立副本
func (r *Room) Snapshot() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := make(map[string]PlayerSnapshot, len(r.Players))
	for id, p := range r.Players {
		players[id] = PlayerSnapshot{
			ID:             p.ID,
			Name:           p.Name,
			Province:       p.Province,
			Ready:          p.Ready,
			ReconnectToken: p.ReconnectToken,
			GameState:      deepCopyState(p.GameState),
		}
	}

	return &Snapshot{
		Code:            r.Code,
		HostID:          r.HostID,
		MaxPlayers:      r.MaxPlayers,
		GameStarted:     r.GameStarted,
		CurrentTurn:     r.CurrentTurn,
		CurrentPlayerID: r.CurrentPlayerID,
		GameState:       r.State.Clone(),
		Players:         players,
		PlayerOrder:     append([]string{}, r.PlayerOrder...),
		SavedAt:         time.Now().Format(time.RFC3339),
	}
}

// restore 从快照重建运行时房间
func (s *Snapshot) restore() *Room {
	r := &Room{
		Code:            s.Code,
		HostID:          s.HostID,
		MaxPlayers:      s.MaxPlayers,
		GameStarted:     s.GameStarted,
		CurrentTurn:     s.CurrentTurn,
		CurrentPlayerID: s.CurrentPlayerID,
		State:           s.GameState.Clone(),
		Players:         make(map[string]*Player, len(s.Players)),
		PlayerOrder:     append([]string{}, s.PlayerOrder...),
		CreatedAt:       time.Now(),
	}

	for id, ps := range s.Players {
		r.Players[id] = &Player{
			ID:             ps.ID,
			Name:           ps.Name,
			Province:       ps.Province,
			Ready:          ps.Ready,
			Connected:      false, // 重连是恢复在线的唯一途径
			ReconnectToken: ps.ReconnectToken,
			GameState:      deepCopyState(ps.GameState),
		}
	}

	// 兼容没有显式顺序的旧快照：按成员表补齐
	if len(r.PlayerOrder) == 0 {
		for id := range r.Players {
			r.PlayerOrder = append(r.PlayerOrder, id)
		}
	}
	return r
}

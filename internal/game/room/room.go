package room

import (
	"fmt"
	"sync"
	"time"

	"github.com/palemoky/eyalet-online/internal/apperrors"
)

// Room 游戏房间。所有读-改-写序列都在 mu 之下整体执行，
// 两个玩家同时选同一行省这类竞态由房间锁杜绝。
type Room struct {
	Code            string
	HostID          string
	MaxPlayers      int
	GameStarted     bool
	CurrentTurn     int
	CurrentPlayerID string
	Players         map[string]*Player
	PlayerOrder     []string // 加入顺序，即固定的回合顺序
	State           *GameState
	CreatedAt       time.Time

	mu sync.Mutex
}

// RoomView 房间的对外视图，字段均为锁内构建的独立副本
type RoomView struct {
	Code               string                `json:"code"`
	HostID             string                `json:"host_id"`
	Players            map[string]PlayerView `json:"players"`
	MaxPlayers         int                   `json:"max_players"`
	GameStarted        bool                  `json:"game_started"`
	CurrentTurn        int                   `json:"current_turn"`
	CurrentPlayerID    string                `json:"current_player_id"`
	AvailableProvinces []string              `json:"available_provinces"`
	GameState          *GameState            `json:"game_state"`
}

// join 把玩家加入房间，游戏已开始或满员时拒绝且不改动成员表
func (r *Room) join(p *Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.GameStarted {
		return apperrors.ErrGameStarted
	}
	if len(r.Players) >= r.MaxPlayers {
		return apperrors.ErrRoomFull
	}

	r.Players[p.ID] = p
	r.PlayerOrder = append(r.PlayerOrder, p.ID)
	return nil
}

// View 构建房间视图
func (r *Room) View() RoomView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view()
}

// view 构建房间视图。调用方必须持有房间锁
func (r *Room) view() RoomView {
	players := make(map[string]PlayerView, len(r.Players))
	for id, p := range r.Players {
		players[id] = p.view()
	}
	return RoomView{
		Code:               r.Code,
		HostID:             r.HostID,
		Players:            players,
		MaxPlayers:         r.MaxPlayers,
		GameStarted:        r.GameStarted,
		CurrentTurn:        r.CurrentTurn,
		CurrentPlayerID:    r.CurrentPlayerID,
		AvailableProvinces: r.availableProvinces(),
		GameState:          r.State.Clone(),
	}
}

// PlayerView 构建单个玩家的视图
func (r *Room) PlayerView(playerID string) (PlayerView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.Players[playerID]
	if !ok {
		return PlayerView{}, apperrors.ErrPlayerNotFound
	}
	return p.view(), nil
}

// MemberIDs 返回全部成员 ID 的快照，按加入顺序
func (r *Room) MemberIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, len(r.PlayerOrder))
	copy(ids, r.PlayerOrder)
	return ids
}

// HasPlayer 检查玩家是否为房间成员
func (r *Room) HasPlayer(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.Players[playerID]
	return ok
}

// SelectProvince 选择行省，已被占用则失败
func (r *Room) SelectProvince(playerID, province string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.Players[playerID]
	if !ok {
		return apperrors.ErrPlayerNotFound
	}

	for _, prov := range r.availableProvinces() {
		if prov == province {
			p.Province = province
			return nil
		}
	}
	return apperrors.ErrProvinceTaken
}

// SetReady 切换准备状态，未选行省时拒绝。
// 返回是否全员就绪（至少 2 人且人人有行省）。
func (r *Room) SetReady(playerID string, ready bool) (allReady bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.Players[playerID]
	if !ok {
		return false, apperrors.ErrPlayerNotFound
	}
	if p.Province == "" {
		return false, apperrors.ErrNoProvince
	}

	p.Ready = ready

	if len(r.Players) < 2 {
		return false, nil
	}
	for _, member := range r.Players {
		if !member.Ready || member.Province == "" {
			return false, nil
		}
	}
	return true, nil
}

// UpdatePlayerState 把新状态浅合并进玩家的黑盒快照
func (r *Room) UpdatePlayerState(playerID string, state map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.Players[playerID]
	if !ok {
		return apperrors.ErrPlayerNotFound
	}
	r.mergePlayerState(p, state)
	return nil
}

// mergePlayerState 浅合并状态。调用方必须持有房间锁
func (r *Room) mergePlayerState(p *Player, state map[string]any) {
	if p.GameState == nil {
		p.GameState = map[string]any{}
	}
	for k, v := range state {
		p.GameState[k] = v
	}
	p.LastActivity = time.Now()
}

// AppendChat 追加聊天记录，历史保留最近 chatHistoryLimit 条
func (r *Room) AppendChat(entry ChatEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.State.Messages = append(r.State.Messages, entry)
	if len(r.State.Messages) > chatHistoryLimit {
		r.State.Messages = r.State.Messages[len(r.State.Messages)-chatHistoryLimit:]
	}
}

const chatHistoryLimit = 200

// FormAlliance 记录结盟
func (r *Room) FormAlliance(player1, player2 string) Pact {
	r.mu.Lock()
	defer r.mu.Unlock()

	pact := Pact{Player1: player1, Player2: player2, StartedTurn: r.CurrentTurn}
	r.State.Alliances = append(r.State.Alliances, pact)
	return pact
}

// FormTradeAgreement 记录贸易协定
func (r *Room) FormTradeAgreement(player1, player2 string) Pact {
	r.mu.Lock()
	defer r.mu.Unlock()

	pact := Pact{Player1: player1, Player2: player2, StartedTurn: r.CurrentTurn}
	r.State.TradeAgreements = append(r.State.TradeAgreements, pact)
	return pact
}

// DeclareWar 追加一条状态为 active 的战争记录
func (r *Room) DeclareWar(attackerID, defenderID string) (*War, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.Players[attackerID]; !ok {
		return nil, apperrors.ErrPlayerNotFound
	}
	if _, ok := r.Players[defenderID]; !ok {
		return nil, apperrors.ErrTargetNotFound
	}

	war := &War{
		ID:          fmt.Sprintf("war_%d_%s_%s", r.CurrentTurn, shortID(attackerID), shortID(defenderID)),
		Attacker:    attackerID,
		Defender:    defenderID,
		Status:      "active",
		StartedTurn: r.CurrentTurn,
		Battles:     []BattleEntry{},
	}
	r.State.Wars = append(r.State.Wars, war)
	return war, nil
}

// ApplyBattle 结算一次战斗：读取双方兵力、调用结算函数、写回损耗，
// 并在双方存在进行中的战争时追加战斗日志。整个序列持锁执行。
func (r *Room) ApplyBattle(attackerID, defenderID string, resolve func(attackerArmy, defenderArmy int) BattleOutcome) (BattleOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attacker, ok := r.Players[attackerID]
	if !ok {
		return BattleOutcome{}, apperrors.ErrPlayerNotFound
	}
	defender, ok := r.Players[defenderID]
	if !ok {
		return BattleOutcome{}, apperrors.ErrTargetNotFound
	}

	outcome := resolve(armyOf(attacker), armyOf(defender))
	// 快照里 game_state 可能是 null，写回前补一个空 map
	if attacker.GameState == nil {
		attacker.GameState = map[string]any{}
	}
	if defender.GameState == nil {
		defender.GameState = map[string]any{}
	}
	attacker.GameState["army"] = outcome.AttackerArmy
	defender.GameState["army"] = outcome.DefenderArmy

	for _, war := range r.State.Wars {
		if war.Status != "active" {
			continue
		}
		if (war.Attacker == attackerID && war.Defender == defenderID) ||
			(war.Attacker == defenderID && war.Defender == attackerID) {
			war.Battles = append(war.Battles, BattleEntry{
				Turn:           r.CurrentTurn,
				Winner:         outcome.Winner,
				AttackerLosses: outcome.AttackerLosses,
				DefenderLosses: outcome.DefenderLosses,
			})
			break
		}
	}
	return outcome, nil
}

// armyOf 从黑盒状态读取兵力，缺省 100（与客户端约定一致）。
// JSON 反序列化后的数字是 float64，两种表示都要接受。
func armyOf(p *Player) int {
	switch v := p.GameState["army"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 100
	}
}

// shortID 取 ID 前四位用于战争编号
func shortID(id string) string {
	if len(id) > 4 {
		return id[:4]
	}
	return id
}

// reconnect 校验令牌并恢复在线状态。调用方必须持有房间锁。
// 校验失败时不改动任何玩家字段。
func (r *Room) reconnect(playerID, token string) (*Player, error) {
	p, ok := r.Players[playerID]
	if !ok {
		return nil, apperrors.ErrPlayerNotFound
	}
	if p.ReconnectToken != token {
		return nil, apperrors.ErrInvalidToken
	}

	p.Connected = true
	p.LastActivity = time.Now()
	p.DisconnectedAt = time.Time{}
	return p, nil
}

// markDisconnected 标记玩家掉线，返回房间是否已无在线成员。
// 调用方必须持有房间锁
func (r *Room) markDisconnected(playerID string) (p *Player, empty bool) {
	p, ok := r.Players[playerID]
	if !ok {
		return nil, false
	}

	p.Connected = false
	p.DisconnectedAt = time.Now()

	for _, member := range r.Players {
		if member.Connected {
			return p, false
		}
	}
	return p, true
}

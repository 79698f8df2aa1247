package protocol

// --- 客户端请求 ---

// CreateRoomRequest 创建房间请求
type CreateRoomRequest struct {
	PlayerName string `json:"player_name"`
}

// JoinRoomRequest 加入房间请求
type JoinRoomRequest struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
}

// SelectProvinceRequest 选择行省请求
type SelectProvinceRequest struct {
	PlayerID string `json:"player_id"`
	Province string `json:"province"`
}

// ReadyRequest 准备请求。ready 字段缺省时视为 true
type ReadyRequest struct {
	PlayerID string `json:"player_id"`
	Ready    *bool  `json:"ready"`
}

// StartGameRequest 开始游戏请求
type StartGameRequest struct {
	PlayerID string `json:"player_id"`
}

// EndTurnRequest 结束回合请求，state 为玩家的模拟状态快照
type EndTurnRequest struct {
	PlayerID string         `json:"player_id"`
	State    map[string]any `json:"state"`
}

// DiplomacyRequest 外交请求
type DiplomacyRequest struct {
	PlayerID   string          `json:"player_id"`
	TargetID   string          `json:"target_id"`
	ActionType DiplomacyAction `json:"action_type"`
}

// ChatRequest 聊天请求
type ChatRequest struct {
	PlayerID string `json:"player_id"`
	Message  string `json:"message"`
}

// UpdateStateRequest 玩家状态同步请求
type UpdateStateRequest struct {
	PlayerID string         `json:"player_id"`
	State    map[string]any `json:"state"`
}

// ReconnectRequest 断线重连请求
type ReconnectRequest struct {
	RoomCode       string `json:"room_code"`
	PlayerID       string `json:"player_id"`
	ReconnectToken string `json:"reconnect_token"`
}

// SaveRoomRequest 保存房间请求
type SaveRoomRequest struct {
	PlayerID string `json:"player_id"`
}

// LoadRoomRequest 加载房间请求
type LoadRoomRequest struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
}

// --- 服务端事件 ---
// 房间和玩家视图由 game/room 包构建，这里以 any 承载，避免循环依赖。

// RoomCreatedPayload 房间创建成功
type RoomCreatedPayload struct {
	Success        bool   `json:"success"`
	RoomCode       string `json:"room_code"`
	PlayerID       string `json:"player_id"`
	ReconnectToken string `json:"reconnect_token"`
	Room           any    `json:"room"`
}

// RoomJoinedPayload 加入房间成功
type RoomJoinedPayload struct {
	Success        bool   `json:"success"`
	PlayerID       string `json:"player_id"`
	ReconnectToken string `json:"reconnect_token"`
	Room           any    `json:"room"`
}

// PlayerJoinedPayload 其他玩家加入通知
type PlayerJoinedPayload struct {
	Player any `json:"player"`
	Room   any `json:"room"`
}

// ProvinceSelectedPayload 行省选定通知，room 视图内含最新的可选行省列表
type ProvinceSelectedPayload struct {
	PlayerID string `json:"player_id"`
	Province string `json:"province"`
	Room     any    `json:"room"`
}

// PlayerReadyPayload 玩家准备状态通知
type PlayerReadyPayload struct {
	PlayerID string `json:"player_id"`
	Ready    bool   `json:"ready"`
	Room     any    `json:"room"`
}

// AllReadyPayload 全员就绪通知
type AllReadyPayload struct {
	Message string `json:"message"`
}

// GameStartedPayload 游戏开始通知
type GameStartedPayload struct {
	Room        any `json:"room"`
	FirstPlayer any `json:"first_player"`
}

// TurnEndedPayload 回合结束通知
type TurnEndedPayload struct {
	PreviousPlayer string `json:"previous_player"`
	CurrentPlayer  string `json:"current_player"`
	Room           any    `json:"room"`
	GameState      any    `json:"game_state"`
}

// PlayerStateUpdatedPayload 玩家状态同步通知
type PlayerStateUpdatedPayload struct {
	PlayerID string `json:"player_id"`
	Player   any    `json:"player"`
}

// ProposalPayload 外交提议通知（结盟/贸易）
type ProposalPayload struct {
	FromPlayer   any    `json:"from_player"`
	FromPlayerID string `json:"from_player_id"`
	Message      string `json:"message"`
}

// ProposalRejectedPayload 外交提议被拒绝通知
type ProposalRejectedPayload struct {
	FromPlayer any    `json:"from_player"`
	Message    string `json:"message"`
}

// PactFormedPayload 结盟/贸易协定达成通知
type PactFormedPayload struct {
	Player1 any    `json:"player1"`
	Player2 any    `json:"player2"`
	Message string `json:"message"`
}

// WarDeclaredPayload 宣战通知
type WarDeclaredPayload struct {
	WarID    string `json:"war_id"`
	Attacker any    `json:"attacker"`
	Defender any    `json:"defender"`
	Message  string `json:"message"`
}

// BattleResultPayload 战斗结果通知
type BattleResultPayload struct {
	Attacker       any    `json:"attacker"`
	Defender       any    `json:"defender"`
	Winner         string `json:"winner"` // "attacker" 或 "defender"
	AttackerLosses int    `json:"attacker_losses"`
	DefenderLosses int    `json:"defender_losses"`
	Message        string `json:"message"`
}

// ChatMessagePayload 聊天消息
type ChatMessagePayload struct {
	FromPlayer any    `json:"from_player"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
}

// ReconnectedPayload 重连成功（发给重连者本人）
type ReconnectedPayload struct {
	Success  bool   `json:"success"`
	PlayerID string `json:"player_id"`
	Room     any    `json:"room"`
}

// PlayerPresencePayload 玩家上线/掉线通知
type PlayerPresencePayload struct {
	Player any `json:"player"`
	Room   any `json:"room"`
}

// RoomSavedPayload 房间保存成功通知
type RoomSavedPayload struct {
	RoomCode string `json:"room_code"`
	Message  string `json:"message"`
}

// RoomLoadedPayload 房间加载成功
type RoomLoadedPayload struct {
	Success  bool   `json:"success"`
	RoomCode string `json:"room_code"`
	Room     any    `json:"room"`
	Message  string `json:"message"`
}

// ErrorPayload 错误事件
type ErrorPayload struct {
	Message string `json:"message"`
}

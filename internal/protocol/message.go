package protocol

import (
	"encoding/json"
	"errors"
)

// Action 客户端请求的动作类型
type Action string

// 客户端 → 服务端 动作
const (
	ActionCreateRoom     Action = "create_room"     // 创建房间
	ActionJoinRoom       Action = "join_room"       // 加入房间
	ActionSelectProvince Action = "select_province" // 选择行省
	ActionReady          Action = "ready"           // 准备就绪
	ActionStartGame      Action = "start_game"      // 开始游戏（仅房主）
	ActionEndTurn        Action = "end_turn"        // 结束回合
	ActionDiplomacy      Action = "diplomacy"       // 外交动作（含子类型）
	ActionChat           Action = "chat"            // 聊天
	ActionUpdateState    Action = "update_state"    // 同步玩家状态
	ActionReconnect      Action = "reconnect"       // 断线重连
	ActionSaveRoom       Action = "save_room"       // 保存房间（仅房主）
	ActionLoadRoom       Action = "load_room"       // 加载已保存房间
	ActionPing           Action = "ping"            // 心跳
)

// DiplomacyAction 外交子动作
type DiplomacyAction string

const (
	DiplomacyProposeAlliance DiplomacyAction = "propose_alliance"
	DiplomacyDeclareWar      DiplomacyAction = "declare_war"
	DiplomacyBattle          DiplomacyAction = "battle"
	DiplomacyProposeTrade    DiplomacyAction = "propose_trade"
	DiplomacyAcceptAlliance  DiplomacyAction = "accept_alliance"
	DiplomacyRejectAlliance  DiplomacyAction = "reject_alliance"
	DiplomacyAcceptTrade     DiplomacyAction = "accept_trade"
	DiplomacyRejectTrade     DiplomacyAction = "reject_trade"
)

// MessageType 服务端事件类型
type MessageType string

// 服务端 → 客户端 事件
const (
	// 房间相关
	MsgRoomCreated      MessageType = "room_created"      // 房间创建成功
	MsgRoomJoined       MessageType = "room_joined"       // 加入房间成功
	MsgPlayerJoined     MessageType = "player_joined"     // 其他玩家加入
	MsgProvinceSelected MessageType = "province_selected" // 行省已选定
	MsgPlayerReady      MessageType = "player_ready"      // 玩家准备状态变更
	MsgAllReady         MessageType = "all_ready"         // 全员就绪

	// 游戏流程
	MsgGameStarted        MessageType = "game_started"         // 游戏开始
	MsgTurnEnded          MessageType = "turn_ended"           // 回合结束
	MsgPlayerStateUpdated MessageType = "player_state_updated" // 玩家状态同步

	// 外交
	MsgAllianceProposal MessageType = "alliance_proposal"      // 收到结盟提议
	MsgAllianceFormed   MessageType = "alliance_formed"        // 结盟达成
	MsgAllianceRejected MessageType = "alliance_rejected"      // 结盟被拒绝
	MsgTradeProposal    MessageType = "trade_proposal"         // 收到贸易提议
	MsgTradeFormed      MessageType = "trade_agreement_formed" // 贸易协定达成
	MsgTradeRejected    MessageType = "trade_rejected"         // 贸易被拒绝
	MsgWarDeclared      MessageType = "war_declared"           // 宣战
	MsgBattleResult     MessageType = "battle_result"          // 战斗结果

	// 连接相关
	MsgReconnected        MessageType = "reconnected"         // 重连成功（发给本人）
	MsgPlayerReconnected  MessageType = "player_reconnected"  // 玩家重连（通知其他人）
	MsgPlayerDisconnected MessageType = "player_disconnected" // 玩家掉线
	MsgPong               MessageType = "pong"                // 心跳应答

	// 持久化
	MsgRoomSaved  MessageType = "room_saved"  // 房间已保存
	MsgRoomLoaded MessageType = "room_loaded" // 房间已加载

	// 其他
	MsgChatMessage MessageType = "chat_message" // 聊天消息
	MsgError       MessageType = "error"        // 错误
)

// ErrInvalidEnvelope 无法解析的入站消息
var ErrInvalidEnvelope = errors.New("invalid message envelope")

// Envelope 入站消息信封。协议为扁平 JSON：
// {"action": "...", ...动作相关字段...}
type Envelope struct {
	Action Action
	raw    []byte
}

// Decode 解析入站消息信封
func Decode(data []byte) (*Envelope, error) {
	var head struct {
		Action Action `json:"action"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, ErrInvalidEnvelope
	}
	return &Envelope{Action: head.Action, raw: data}, nil
}

// Raw 返回完整的原始消息，供按动作解析具体字段
func (e *Envelope) Raw() []byte { return e.raw }

// Message 出站消息。协议为扁平 JSON：type 与各事件字段平铺在同一层，
// 编码时把 Payload 的字段与 type 合并，而不是嵌套 payload 对象。
type Message struct {
	Type    MessageType
	Payload any
}

// NewMessage 创建出站消息
func NewMessage(msgType MessageType, payload any) *Message {
	return &Message{Type: msgType, Payload: payload}
}

// Encode 编码为单行 JSON 文本
func (m *Message) Encode() ([]byte, error) {
	fields := make(map[string]any)
	if m.Payload != nil {
		b, err := json.Marshal(m.Payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, &fields); err != nil {
			return nil, err
		}
	}
	fields["type"] = m.Type
	return json.Marshal(fields)
}

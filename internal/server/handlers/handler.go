package handlers

import (
	"errors"
	"log"

	"github.com/palemoky/eyalet-online/internal/apperrors"
	"github.com/palemoky/eyalet-online/internal/game/diplomacy"
	"github.com/palemoky/eyalet-online/internal/game/room"
	"github.com/palemoky/eyalet-online/internal/protocol"
	"github.com/palemoky/eyalet-online/internal/protocol/encoding"
	"github.com/palemoky/eyalet-online/internal/server/storage"
)

// Client 消息处理器眼中的一条客户端连接
type Client interface {
	PlayerID() string
	SetPlayerID(id string)
	Send(msg *protocol.Message)
}

// Gateway 连接网关：连接表登记与事件派发
type Gateway interface {
	// Bind 把玩家 ID 绑定到连接，重复绑定时替换旧句柄
	Bind(playerID string, c Client)
	// SendToPlayer 单播，玩家没有在线连接时静默忽略
	SendToPlayer(playerID string, msg *protocol.Message)
	// BroadcastRoom 广播给房间内除 excludeID 外的在线成员，尽力而为
	BroadcastRoom(r *room.Room, msg *protocol.Message, excludeID string)
}

// Handler 消息处理器
type Handler struct {
	rooms     *room.Manager
	diplomacy *diplomacy.Engine
	store     storage.RoomStore
	writer    *storage.Writer
	gw        Gateway
}

// New 创建处理器
func New(rooms *room.Manager, dip *diplomacy.Engine, store storage.RoomStore, writer *storage.Writer, gw Gateway) *Handler {
	return &Handler{
		rooms:     rooms,
		diplomacy: dip,
		store:     store,
		writer:    writer,
		gw:        gw,
	}
}

// Handle 按动作分发入站消息
func (h *Handler) Handle(c Client, env *protocol.Envelope) {
	switch env.Action {
	// 连接操作
	case protocol.ActionPing:
		h.handlePing(c)
	case protocol.ActionReconnect:
		h.handleReconnect(c, env)

	// 房间操作
	case protocol.ActionCreateRoom:
		h.handleCreateRoom(c, env)
	case protocol.ActionJoinRoom:
		h.handleJoinRoom(c, env)
	case protocol.ActionSelectProvince:
		h.handleSelectProvince(c, env)
	case protocol.ActionReady:
		h.handleReady(c, env)

	// 游戏流程
	case protocol.ActionStartGame:
		h.handleStartGame(c, env)
	case protocol.ActionEndTurn:
		h.handleEndTurn(c, env)
	case protocol.ActionUpdateState:
		h.handleUpdateState(c, env)

	// 外交
	case protocol.ActionDiplomacy:
		h.handleDiplomacy(c, env)

	// 其他
	case protocol.ActionChat:
		h.handleChat(c, env)
	case protocol.ActionSaveRoom:
		h.handleSaveRoom(c, env)
	case protocol.ActionLoadRoom:
		h.handleLoadRoom(c, env)

	default:
		log.Printf("⚠️  未知动作: %q (玩家: %s)", env.Action, c.PlayerID())
		h.sendError(c, apperrors.ErrUnknownAction)
	}
}

// sendError 把协调器错误回复给客户端。错误分类之外的意外错误
// 不在这里兜底，向上抛出后只终结当前连接
func (h *Handler) sendError(c Client, err error) {
	if errors.Is(err, protocol.ErrInvalidEnvelope) {
		err = apperrors.ErrInvalidPayload
	}

	var ge *apperrors.GameError
	if errors.As(err, &ge) {
		c.Send(encoding.NewErrorMessage(ge.Message))
		return
	}
	panic(err)
}

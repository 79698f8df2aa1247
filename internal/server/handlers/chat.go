package handlers

import (
	"time"

	"github.com/palemoky/eyalet-online/internal/game/room"
	"github.com/palemoky/eyalet-online/internal/protocol"
	"github.com/palemoky/eyalet-online/internal/protocol/encoding"
)

// handleChat 处理聊天：记入房间历史并广播给所有成员（含发送者）
func (h *Handler) handleChat(c Client, env *protocol.Envelope) {
	req, err := encoding.ParseRequest[protocol.ChatRequest](env)
	if err != nil {
		h.sendError(c, err)
		return
	}

	r, err := h.rooms.RoomOf(req.PlayerID)
	if err != nil {
		h.sendError(c, err)
		return
	}

	sender, err := r.PlayerView(req.PlayerID)
	if err != nil {
		h.sendError(c, err)
		return
	}

	ts := time.Now().Format(time.RFC3339)
	r.AppendChat(room.ChatEntry{
		PlayerID:   req.PlayerID,
		PlayerName: sender.Name,
		Message:    req.Message,
		Timestamp:  ts,
	})

	h.gw.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgChatMessage, protocol.ChatMessagePayload{
		FromPlayer: sender,
		Message:    req.Message,
		Timestamp:  ts,
	}), "")
}

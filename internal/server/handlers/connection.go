package handlers

import (
	"log"

	"github.com/palemoky/eyalet-online/internal/protocol"
	"github.com/palemoky/eyalet-online/internal/protocol/encoding"
)

// handlePing 心跳应答
func (h *Handler) handlePing(c Client) {
	c.Send(encoding.MustNewMessage(protocol.MsgPong, nil))
}

// handleReconnect 处理断线重连：校验令牌、把新连接重新绑定到玩家
func (h *Handler) handleReconnect(c Client, env *protocol.Envelope) {
	req, err := encoding.ParseRequest[protocol.ReconnectRequest](env)
	if err != nil {
		h.sendError(c, err)
		return
	}

	r, player, err := h.rooms.Reconnect(req.RoomCode, req.PlayerID, req.ReconnectToken)
	if err != nil {
		log.Printf("🚫 重连被拒: 房间 %s 玩家 %s (%v)", req.RoomCode, req.PlayerID, err)
		h.sendError(c, err)
		return
	}

	c.SetPlayerID(player.ID)
	h.gw.Bind(player.ID, c)

	view := r.View()
	c.Send(encoding.MustNewMessage(protocol.MsgReconnected, protocol.ReconnectedPayload{
		Success:  true,
		PlayerID: player.ID,
		Room:     view,
	}))

	h.gw.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgPlayerReconnected, protocol.PlayerPresencePayload{
		Player: view.Players[player.ID],
		Room:   view,
	}), player.ID)
}

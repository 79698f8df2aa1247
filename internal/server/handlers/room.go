package handlers

import (
	"log"

	"github.com/palemoky/eyalet-online/internal/protocol"
	"github.com/palemoky/eyalet-online/internal/protocol/encoding"
)

// 未提供昵称时的默认值
const defaultPlayerName = "Anonim"

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(c Client, env *protocol.Envelope) {
	req, err := encoding.ParseRequest[protocol.CreateRoomRequest](env)
	if err != nil {
		h.sendError(c, err)
		return
	}

	name := req.PlayerName
	if name == "" {
		name = defaultPlayerName
	}

	r, player := h.rooms.CreateRoom(name)
	c.SetPlayerID(player.ID)
	h.gw.Bind(player.ID, c)

	c.Send(encoding.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		Success:        true,
		RoomCode:       r.Code,
		PlayerID:       player.ID,
		ReconnectToken: player.ReconnectToken,
		Room:           r.View(),
	}))
}

// handleJoinRoom 处理加入房间
func (h *Handler) handleJoinRoom(c Client, env *protocol.Envelope) {
	req, err := encoding.ParseRequest[protocol.JoinRoomRequest](env)
	if err != nil {
		h.sendError(c, err)
		return
	}

	name := req.PlayerName
	if name == "" {
		name = defaultPlayerName
	}

	r, player, err := h.rooms.JoinRoom(req.RoomCode, name)
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.SetPlayerID(player.ID)
	h.gw.Bind(player.ID, c)

	view := r.View()
	playerView := view.Players[player.ID]

	// 先通知房间内其他人
	h.gw.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: playerView,
		Room:   view,
	}), player.ID)

	c.Send(encoding.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		Success:        true,
		PlayerID:       player.ID,
		ReconnectToken: player.ReconnectToken,
		Room:           view,
	}))
}

// handleSelectProvince 处理选择行省
func (h *Handler) handleSelectProvince(c Client, env *protocol.Envelope) {
	req, err := encoding.ParseRequest[protocol.SelectProvinceRequest](env)
	if err != nil {
		h.sendError(c, err)
		return
	}

	r, err := h.rooms.RoomOf(req.PlayerID)
	if err != nil {
		h.sendError(c, err)
		return
	}

	if err := r.SelectProvince(req.PlayerID, req.Province); err != nil {
		h.sendError(c, err)
		return
	}

	log.Printf("🗺️  玩家 %s 选择行省: %s (房间: %s)", req.PlayerID, req.Province, r.Code)

	// 广播给所有人，room 视图内含重新计算的可选行省列表
	h.gw.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgProvinceSelected, protocol.ProvinceSelectedPayload{
		PlayerID: req.PlayerID,
		Province: req.Province,
		Room:     r.View(),
	}), "")
}

// handleReady 处理准备状态切换，ready 缺省视为 true
func (h *Handler) handleReady(c Client, env *protocol.Envelope) {
	req, err := encoding.ParseRequest[protocol.ReadyRequest](env)
	if err != nil {
		h.sendError(c, err)
		return
	}

	ready := true
	if req.Ready != nil {
		ready = *req.Ready
	}

	r, err := h.rooms.RoomOf(req.PlayerID)
	if err != nil {
		h.sendError(c, err)
		return
	}

	allReady, err := r.SetReady(req.PlayerID, ready)
	if err != nil {
		h.sendError(c, err)
		return
	}

	h.gw.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgPlayerReady, protocol.PlayerReadyPayload{
		PlayerID: req.PlayerID,
		Ready:    ready,
		Room:     r.View(),
	}), "")

	if allReady {
		h.gw.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgAllReady, protocol.AllReadyPayload{
			Message: "所有玩家已就绪！房主可以开始游戏。",
		}), "")
	}
}

package handlers

import (
	"log"

	"github.com/palemoky/eyalet-online/internal/protocol"
	"github.com/palemoky/eyalet-online/internal/protocol/encoding"
)

// handleStartGame 处理开始游戏，仅房主可发起
func (h *Handler) handleStartGame(c Client, env *protocol.Envelope) {
	req, err := encoding.ParseRequest[protocol.StartGameRequest](env)
	if err != nil {
		h.sendError(c, err)
		return
	}

	r, err := h.rooms.RoomOf(req.PlayerID)
	if err != nil {
		h.sendError(c, err)
		return
	}

	if err := r.Start(req.PlayerID); err != nil {
		h.sendError(c, err)
		return
	}

	view := r.View()
	log.Printf("⚔️  游戏开始: 房间 %s, 首位行动 %s", r.Code, view.CurrentPlayerID)

	h.gw.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgGameStarted, protocol.GameStartedPayload{
		Room:        view,
		FirstPlayer: view.Players[view.CurrentPlayerID],
	}), "")
}

// handleEndTurn 处理结束回合：合并状态快照、推进回合环
func (h *Handler) handleEndTurn(c Client, env *protocol.Envelope) {
	req, err := encoding.ParseRequest[protocol.EndTurnRequest](env)
	if err != nil {
		h.sendError(c, err)
		return
	}

	r, err := h.rooms.RoomOf(req.PlayerID)
	if err != nil {
		h.sendError(c, err)
		return
	}

	result, err := r.EndTurn(req.PlayerID, req.State)
	if err != nil {
		h.sendError(c, err)
		return
	}

	view := r.View()
	h.gw.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgTurnEnded, protocol.TurnEndedPayload{
		PreviousPlayer: result.PreviousPlayerID,
		CurrentPlayer:  result.CurrentPlayerID,
		Room:           view,
		GameState:      view.GameState,
	}), "")
}

// handleUpdateState 处理回合中途的状态同步
func (h *Handler) handleUpdateState(c Client, env *protocol.Envelope) {
	req, err := encoding.ParseRequest[protocol.UpdateStateRequest](env)
	if err != nil {
		h.sendError(c, err)
		return
	}

	r, err := h.rooms.RoomOf(req.PlayerID)
	if err != nil {
		h.sendError(c, err)
		return
	}

	if err := r.UpdatePlayerState(req.PlayerID, req.State); err != nil {
		h.sendError(c, err)
		return
	}

	playerView, err := r.PlayerView(req.PlayerID)
	if err != nil {
		h.sendError(c, err)
		return
	}

	h.gw.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgPlayerStateUpdated, protocol.PlayerStateUpdatedPayload{
		PlayerID: req.PlayerID,
		Player:   playerView,
	}), req.PlayerID)
}

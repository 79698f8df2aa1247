package handlers

import (
	"fmt"
	"log"

	"github.com/palemoky/eyalet-online/internal/apperrors"
	"github.com/palemoky/eyalet-online/internal/game/diplomacy"
	"github.com/palemoky/eyalet-online/internal/game/room"
	"github.com/palemoky/eyalet-online/internal/protocol"
	"github.com/palemoky/eyalet-online/internal/protocol/encoding"
)

// handleDiplomacy 按 action_type 分发外交子动作
func (h *Handler) handleDiplomacy(c Client, env *protocol.Envelope) {
	req, err := encoding.ParseRequest[protocol.DiplomacyRequest](env)
	if err != nil {
		h.sendError(c, err)
		return
	}

	r, err := h.rooms.RoomOf(req.PlayerID)
	if err != nil {
		h.sendError(c, err)
		return
	}

	switch req.ActionType {
	case protocol.DiplomacyProposeAlliance:
		err = h.propose(r, req, diplomacy.KindAlliance, protocol.MsgAllianceProposal, "%s 向您提议结盟！")
	case protocol.DiplomacyAcceptAlliance:
		err = h.acceptAlliance(r, req)
	case protocol.DiplomacyRejectAlliance:
		err = h.reject(r, req, diplomacy.KindAlliance, protocol.MsgAllianceRejected, "%s 拒绝了您的结盟提议")
	case protocol.DiplomacyProposeTrade:
		err = h.propose(r, req, diplomacy.KindTrade, protocol.MsgTradeProposal, "%s 向您提议贸易协定！")
	case protocol.DiplomacyAcceptTrade:
		err = h.acceptTrade(r, req)
	case protocol.DiplomacyRejectTrade:
		err = h.reject(r, req, diplomacy.KindTrade, protocol.MsgTradeRejected, "%s 拒绝了您的贸易提议")
	case protocol.DiplomacyDeclareWar:
		err = h.declareWar(r, req)
	case protocol.DiplomacyBattle:
		err = h.battle(r, req)
	default:
		log.Printf("⚠️  未知外交动作: %q", req.ActionType)
		err = &apperrors.GameError{Kind: apperrors.KindProtocol, Message: "未知外交动作"}
	}
	if err != nil {
		h.sendError(c, err)
	}
}

// propose 登记提议并单播通知对方
func (h *Handler) propose(r *room.Room, req *protocol.DiplomacyRequest, kind diplomacy.ProposalKind, msgType protocol.MessageType, format string) error {
	from, err := r.PlayerView(req.PlayerID)
	if err != nil {
		return err
	}
	if !r.HasPlayer(req.TargetID) {
		return apperrors.ErrTargetNotFound
	}

	h.diplomacy.Propose(r.Code, kind, req.PlayerID, req.TargetID)

	h.gw.SendToPlayer(req.TargetID, encoding.MustNewMessage(msgType, protocol.ProposalPayload{
		FromPlayer:   from,
		FromPlayerID: req.PlayerID,
		Message:      fmt.Sprintf(format, from.Name),
	}))
	return nil
}

// acceptAlliance 应答者接受结盟，TargetID 为当初的发起者
func (h *Handler) acceptAlliance(r *room.Room, req *protocol.DiplomacyRequest) error {
	if _, err := h.diplomacy.Take(r.Code, diplomacy.KindAlliance, req.TargetID, req.PlayerID); err != nil {
		return err
	}

	proposer, err := r.PlayerView(req.TargetID)
	if err != nil {
		return err
	}
	responder, err := r.PlayerView(req.PlayerID)
	if err != nil {
		return err
	}

	r.FormAlliance(req.TargetID, req.PlayerID)
	log.Printf("🤝 结盟达成: %s ↔ %s (房间: %s)", proposer.Name, responder.Name, r.Code)

	h.gw.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgAllianceFormed, protocol.PactFormedPayload{
		Player1: proposer,
		Player2: responder,
		Message: fmt.Sprintf("%s 与 %s 结成同盟！", proposer.Name, responder.Name),
	}), "")
	return nil
}

// acceptTrade 应答者接受贸易协定
func (h *Handler) acceptTrade(r *room.Room, req *protocol.DiplomacyRequest) error {
	if _, err := h.diplomacy.Take(r.Code, diplomacy.KindTrade, req.TargetID, req.PlayerID); err != nil {
		return err
	}

	proposer, err := r.PlayerView(req.TargetID)
	if err != nil {
		return err
	}
	responder, err := r.PlayerView(req.PlayerID)
	if err != nil {
		return err
	}

	r.FormTradeAgreement(req.TargetID, req.PlayerID)
	log.Printf("💰 贸易协定达成: %s ↔ %s (房间: %s)", proposer.Name, responder.Name, r.Code)

	h.gw.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgTradeFormed, protocol.PactFormedPayload{
		Player1: proposer,
		Player2: responder,
		Message: fmt.Sprintf("%s 与 %s 签订贸易协定！", proposer.Name, responder.Name),
	}), "")
	return nil
}

// reject 应答者拒绝提议，单播通知发起者
func (h *Handler) reject(r *room.Room, req *protocol.DiplomacyRequest, kind diplomacy.ProposalKind, msgType protocol.MessageType, format string) error {
	if _, err := h.diplomacy.Take(r.Code, kind, req.TargetID, req.PlayerID); err != nil {
		return err
	}

	responder, err := r.PlayerView(req.PlayerID)
	if err != nil {
		return err
	}

	h.gw.SendToPlayer(req.TargetID, encoding.MustNewMessage(msgType, protocol.ProposalRejectedPayload{
		FromPlayer: responder,
		Message:    fmt.Sprintf(format, responder.Name),
	}))
	return nil
}

// declareWar 宣战并广播全房间
func (h *Handler) declareWar(r *room.Room, req *protocol.DiplomacyRequest) error {
	war, err := r.DeclareWar(req.PlayerID, req.TargetID)
	if err != nil {
		return err
	}

	attacker, err := r.PlayerView(req.PlayerID)
	if err != nil {
		return err
	}
	defender, err := r.PlayerView(req.TargetID)
	if err != nil {
		return err
	}

	log.Printf("⚔️  宣战: %s → %s (房间: %s)", attacker.Name, defender.Name, r.Code)

	h.gw.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgWarDeclared, protocol.WarDeclaredPayload{
		WarID:    war.ID,
		Attacker: attacker,
		Defender: defender,
		Message:  fmt.Sprintf("%s 向 %s 宣战！", attacker.Name, defender.Name),
	}), "")
	return nil
}

// battle 结算一次战斗并广播结果，双方视图在结算后重新取以反映损耗
func (h *Handler) battle(r *room.Room, req *protocol.DiplomacyRequest) error {
	outcome, err := r.ApplyBattle(req.PlayerID, req.TargetID, diplomacy.ResolveBattle)
	if err != nil {
		return err
	}

	attacker, err := r.PlayerView(req.PlayerID)
	if err != nil {
		return err
	}
	defender, err := r.PlayerView(req.TargetID)
	if err != nil {
		return err
	}

	winnerName := attacker.Name
	if outcome.Winner == "defender" {
		winnerName = defender.Name
	}

	// winner 字段沿用角色字符串（attacker/defender），与战争日志一致
	h.gw.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgBattleResult, protocol.BattleResultPayload{
		Attacker:       attacker,
		Defender:       defender,
		Winner:         outcome.Winner,
		AttackerLosses: outcome.AttackerLosses,
		DefenderLosses: outcome.DefenderLosses,
		Message:        fmt.Sprintf("%s 在战斗中获胜！", winnerName),
	}), "")
	return nil
}

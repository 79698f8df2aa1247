package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/palemoky/eyalet-online/internal/apperrors"
	"github.com/palemoky/eyalet-online/internal/protocol"
	"github.com/palemoky/eyalet-online/internal/protocol/encoding"
)

// 单次存储操作的超时上限
const storageTimeout = 10 * time.Second

// 存储后端故障对玩家只报通用错误，细节只进日志
var (
	errSaveFailed = &apperrors.GameError{Kind: apperrors.KindValidation, Message: "保存失败，请稍后重试"}
	errLoadFailed = &apperrors.GameError{Kind: apperrors.KindValidation, Message: "加载失败，请稍后重试"}
)

// handleSaveRoom 处理保存房间，仅房主可发起
func (h *Handler) handleSaveRoom(c Client, env *protocol.Envelope) {
	req, err := encoding.ParseRequest[protocol.SaveRoomRequest](env)
	if err != nil {
		h.sendError(c, err)
		return
	}

	r, err := h.rooms.RoomOf(req.PlayerID)
	if err != nil {
		h.sendError(c, err)
		return
	}
	if r.HostID != req.PlayerID {
		h.sendError(c, apperrors.ErrNotHost)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if err := h.writer.Save(ctx, r.Snapshot()); err != nil {
		log.Printf("💾 房间保存失败: %s (%v)", r.Code, err)
		h.sendError(c, errSaveFailed)
		return
	}

	log.Printf("💾 房间已保存: %s", r.Code)
	h.gw.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgRoomSaved, protocol.RoomSavedPayload{
		RoomCode: r.Code,
		Message:  fmt.Sprintf("房间 %s 已保存，可凭房间号随时加载。", r.Code),
	}), "")
}

// handleLoadRoom 从存储恢复已保存的房间。同号房间仍活跃时拒绝，
// 恢复后所有玩家为离线状态，需各自凭令牌重连。
func (h *Handler) handleLoadRoom(c Client, env *protocol.Envelope) {
	req, err := encoding.ParseRequest[protocol.LoadRoomRequest](env)
	if err != nil {
		h.sendError(c, err)
		return
	}

	code := strings.ToUpper(req.RoomCode)
	if h.rooms.Get(code) != nil {
		h.sendError(c, apperrors.ErrRoomActive)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	snap, err := h.store.Load(ctx, code)
	if err != nil {
		log.Printf("📂 房间加载失败: %s (%v)", code, err)
		h.sendError(c, errLoadFailed)
		return
	}
	if snap == nil {
		h.sendError(c, apperrors.ErrSaveNotFound)
		return
	}

	r, err := h.rooms.Restore(snap)
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.Send(encoding.MustNewMessage(protocol.MsgRoomLoaded, protocol.RoomLoadedPayload{
		Success:  true,
		RoomCode: r.Code,
		Room:     r.View(),
		Message:  fmt.Sprintf("房间 %s 已加载，玩家需凭重连令牌回到房间。", r.Code),
	}))
}

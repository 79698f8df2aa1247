package server

import (
	"log"

	"github.com/palemoky/eyalet-online/internal/game/room"
	"github.com/palemoky/eyalet-online/internal/protocol"
	"github.com/palemoky/eyalet-online/internal/protocol/encoding"
	"github.com/palemoky/eyalet-online/internal/server/handlers"
)

// Bind 把玩家 ID 绑定到连接，重连时替换掉旧句柄
func (s *Server) Bind(playerID string, c handlers.Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[playerID] = c
}

// SendToPlayer 单播消息，玩家没有在线连接时静默忽略
func (s *Server) SendToPlayer(playerID string, msg *protocol.Message) {
	s.clientsMu.RLock()
	c, ok := s.clients[playerID]
	s.clientsMu.RUnlock()
	if ok {
		c.Send(msg)
	}
}

// BroadcastRoom 把消息广播给房间内除 excludeID 外的在线成员。
// 尽力而为：没有连接的成员直接跳过。
func (s *Server) BroadcastRoom(r *room.Room, msg *protocol.Message, excludeID string) {
	for _, id := range r.MemberIDs() {
		if id == excludeID {
			continue
		}
		s.SendToPlayer(id, msg)
	}
}

// handleDisconnect 连接断开时的清理：解除路由、标记掉线并通知房间。
// 重连已经换绑到新连接时，旧连接的断开不做任何处理。
func (s *Server) handleDisconnect(c *Client) {
	c.Close()

	playerID := c.PlayerID()
	if playerID == "" {
		return
	}

	s.clientsMu.Lock()
	if s.clients[playerID] != handlers.Client(c) {
		s.clientsMu.Unlock()
		return
	}
	delete(s.clients, playerID)
	s.clientsMu.Unlock()

	r, view, deleted := s.rooms.Disconnect(playerID)
	if r == nil {
		return
	}
	if deleted {
		s.diplomacy.DropRoom(r.Code)
		return
	}

	log.Printf("🔌 玩家掉线: %s (房间: %s)", playerID, r.Code)
	s.BroadcastRoom(r, encoding.MustNewMessage(protocol.MsgPlayerDisconnected, protocol.PlayerPresencePayload{
		Player: view,
		Room:   r.View(),
	}), playerID)
}

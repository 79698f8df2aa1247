//go:build !production

package testutil

import (
	"sync"

	"github.com/palemoky/eyalet-online/internal/game/room"
	"github.com/palemoky/eyalet-online/internal/protocol"
	"github.com/palemoky/eyalet-online/internal/server/handlers"
)

// RecorderClient 记录收到消息的简单客户端，用于处理器测试
type RecorderClient struct {
	mu       sync.Mutex
	playerID string
	Messages []*protocol.Message
}

func (c *RecorderClient) PlayerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playerID
}

func (c *RecorderClient) SetPlayerID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerID = id
}

func (c *RecorderClient) Send(msg *protocol.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Messages = append(c.Messages, msg)
}

// Last 最后一条收到的消息，没有时返回 nil
func (c *RecorderClient) Last() *protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// OfType 按类型筛选收到的消息
func (c *RecorderClient) OfType(msgType protocol.MessageType) []*protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*protocol.Message
	for _, m := range c.Messages {
		if m.Type == msgType {
			out = append(out, m)
		}
	}
	return out
}

// Reset 清空已记录的消息
func (c *RecorderClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Messages = nil
}

// RecorderGateway 内存版网关：把单播/广播投递到已绑定的 RecorderClient
type RecorderGateway struct {
	mu      sync.Mutex
	clients map[string]handlers.Client
}

func NewRecorderGateway() *RecorderGateway {
	return &RecorderGateway{clients: make(map[string]handlers.Client)}
}

func (g *RecorderGateway) Bind(playerID string, c handlers.Client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[playerID] = c
}

func (g *RecorderGateway) SendToPlayer(playerID string, msg *protocol.Message) {
	g.mu.Lock()
	c, ok := g.clients[playerID]
	g.mu.Unlock()
	if ok {
		c.Send(msg)
	}
}

func (g *RecorderGateway) BroadcastRoom(r *room.Room, msg *protocol.Message, excludeID string) {
	for _, id := range r.MemberIDs() {
		if id == excludeID {
			continue
		}
		g.SendToPlayer(id, msg)
	}
}

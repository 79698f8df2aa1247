package server

import (
	"log"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/eyalet-online/internal/protocol"
	"github.com/palemoky/eyalet-online/internal/protocol/encoding"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 读取超时（pong 等待时间）
	pongWait = 60 * time.Second

	// ping 发送间隔（必须小于 pongWait）
	pingPeriod = (pongWait * 9) / 10

	// 消息最大大小
	maxMessageSize = 64 * 1024
)

// Client 一条客户端长连接。playerID 在 create_room/join_room/reconnect
// 成功前为空，之后绑定到房间成员。
type Client struct {
	server *Server
	conn   *websocket.Conn
	send   chan []byte

	mu       sync.RWMutex
	playerID string
	closed   bool
}

// NewClient 创建客户端
func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		server: s,
		conn:   conn,
		send:   make(chan []byte, 256),
	}
}

// PlayerID 返回绑定的玩家 ID，未绑定时为空
func (c *Client) PlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// SetPlayerID 绑定玩家 ID（创建/加入/重连成功时）
func (c *Client) SetPlayerID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerID = id
}

// ReadPump 从 WebSocket 读取消息并逐条分发。
// 同一连接的消息严格按接收顺序处理。
func (c *Client) ReadPump() {
	defer func() {
		// 处理器抛出的意外错误只终结这条连接，不拖垮进程；
		// 掉线清理照常执行
		if r := recover(); r != nil {
			log.Printf("[PANIC] 连接处理异常: %v\n%s", r, debug.Stack())
		}
		c.server.handleDisconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("读取错误: %v", err)
			}
			break
		}

		env, err := protocol.Decode(message)
		if err != nil {
			c.Send(encoding.NewErrorMessage("invalid payload"))
			continue
		}

		c.server.handler.Handle(c, env)
	}
}

// WritePump 向 WebSocket 写入消息并定期发送 ping
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send 发送消息给客户端，尽力而为：编码失败或缓冲区满只记录日志
func (c *Client) Send(msg *protocol.Message) {
	data, err := msg.Encode()
	if err != nil {
		log.Printf("消息编码错误: %v", err)
		return
	}

	// 入队必须和 closed 判断在同一把锁内，否则并发 Close 会
	// 向已关闭的通道写入
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return
	}
	select {
	case c.send <- data:
		c.mu.RUnlock()
	default:
		c.mu.RUnlock()
		// 发送缓冲区已满，掉线处理交给读协程
		log.Printf("客户端 %s 发送缓冲区已满，关闭连接", c.PlayerID())
		c.Close()
	}
}

// Close 关闭客户端连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

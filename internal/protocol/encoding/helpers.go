package encoding

import (
	"encoding/json"

	"github.com/palemoky/eyalet-online/internal/protocol"
)

// ParseRequest 按动作把入站信封解析为具体请求类型
func ParseRequest[T any](env *protocol.Envelope) (*T, error) {
	var req T
	if err := json.Unmarshal(env.Raw(), &req); err != nil {
		return nil, protocol.ErrInvalidEnvelope
	}
	return &req, nil
}

// MustNewMessage 创建出站消息，payload 无法编码时 panic。
// payload 均为本包内定义的结构体，编码失败属于编程错误。
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	if payload != nil {
		if _, err := json.Marshal(payload); err != nil {
			panic(err)
		}
	}
	return protocol.NewMessage(msgType, payload)
}

// NewErrorMessage 创建错误事件
func NewErrorMessage(text string) *protocol.Message {
	return protocol.NewMessage(protocol.MsgError, protocol.ErrorPayload{Message: text})
}

package server

import (
	"sync"
	"testing"

	"github.com/palemoky/eyalet-online/internal/protocol"
	"github.com/palemoky/eyalet-online/internal/protocol/encoding"
)

func TestClient_SendAfterClose(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	c := NewClient(s, nil)
	c.Close()
	c.Close()

	// A send racing the closed channel must be a no-op, not a panic
	c.Send(encoding.MustNewMessage(protocol.MsgPong, nil))
}

func TestClient_ConcurrentSendAndClose(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	msg := encoding.MustNewMessage(protocol.MsgPong, nil)

	for i := 0; i < 50; i++ {
		c := NewClient(s, nil)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				c.Send(msg)
			}
		}()
		go func() {
			defer wg.Done()
			c.Close()
		}()
		wg.Wait()
	}
}

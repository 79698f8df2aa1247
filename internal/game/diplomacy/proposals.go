package diplomacy

import (
	"sync"
	"time"

	"github.com/palemoky/eyalet-online/internal/apperrors"
)

// ProposalKind 提议类型
type ProposalKind string

const (
	KindAlliance ProposalKind = "alliance"
	KindTrade    ProposalKind = "trade"
)

// 提议有效期，超时未应答视为不存在
const proposalTTL = 10 * time.Minute

// Proposal 待处理的外交提议。只在被接受/拒绝前存在，从不持久化。
type Proposal struct {
	RoomCode  string
	Kind      ProposalKind
	FromID    string
	ToID      string
	CreatedAt time.Time
}

type proposalKey struct {
	room string
	kind ProposalKind
	from string
	to   string
}

// Engine 外交提议登记表。服务端对每个 (房间, 类型, 发起者, 接收者)
// 只保留一个待处理提议；重复提议覆盖旧条目并刷新有效期。
type Engine struct {
	proposals map[proposalKey]*Proposal
	now       func() time.Time
	mu        sync.Mutex
}

// NewEngine 创建外交引擎
func NewEngine() *Engine {
	return &Engine{
		proposals: make(map[proposalKey]*Proposal),
		now:       time.Now,
	}
}

// Propose 登记一条提议
func (e *Engine) Propose(roomCode string, kind ProposalKind, fromID, toID string) *Proposal {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := &Proposal{
		RoomCode:  roomCode,
		Kind:      kind,
		FromID:    fromID,
		ToID:      toID,
		CreatedAt: e.now(),
	}
	e.proposals[proposalKey{roomCode, kind, fromID, toID}] = p
	return p
}

// Take 取走一条待处理提议（接受与拒绝都会消费掉它）。
// fromID 是当初的发起者，toID 是应答者。不存在或已过期时报错。
func (e *Engine) Take(roomCode string, kind ProposalKind, fromID, toID string) (*Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := proposalKey{roomCode, kind, fromID, toID}
	p, ok := e.proposals[key]
	if !ok {
		return nil, apperrors.ErrProposalNotFound
	}
	delete(e.proposals, key)

	if e.now().Sub(p.CreatedAt) > proposalTTL {
		return nil, apperrors.ErrProposalNotFound
	}
	return p, nil
}

// DropRoom 丢弃某房间的全部待处理提议（房间回收时调用）
func (e *Engine) DropRoom(roomCode string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for key := range e.proposals {
		if key.room == roomCode {
			delete(e.proposals, key)
		}
	}
}

// Sweep 清理过期提议，返回清理数量
func (e *Engine) Sweep() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := e.now().Add(-proposalTTL)
	removed := 0
	for key, p := range e.proposals {
		if p.CreatedAt.Before(cutoff) {
			delete(e.proposals, key)
			removed++
		}
	}
	return removed
}

// Pending 当前待处理提议数
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.proposals)
}

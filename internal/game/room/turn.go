package room

import "github.com/palemoky/eyalet-online/internal/apperrors"

// 固定月长表，不考虑闰年（与历法起点 1520-01-01 的原始规则一致）
var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// TurnResult 一次回合推进的结果
type TurnResult struct {
	PreviousPlayerID string
	CurrentPlayerID  string
	WrappedRound     bool // 回合环是否转满一圈
}

// Start 开始游戏。要求调用者是房主、至少 2 名成员且人人选定行省。
// 成功后第一位加入者成为当前玩家。
func (r *Room) Start(callerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if callerID != r.HostID {
		return apperrors.ErrNotHost
	}
	if len(r.Players) < 2 {
		return apperrors.ErrNeedMorePlayers
	}
	for _, p := range r.Players {
		if p.Province == "" {
			return &apperrors.GameError{
				Kind:    apperrors.KindValidation,
				Message: p.Name + " 还没有选择行省",
			}
		}
	}

	r.GameStarted = true
	r.CurrentTurn = 1
	r.CurrentPlayerID = r.PlayerOrder[0]
	return nil
}

// EndTurn 结束当前玩家的回合并推进回合环。只有当前玩家可以调用。
// state 是调用者回合结束时的模拟快照，推进前合并进玩家状态。
// 环转满一圈时回合数加一，历法前进一天。
func (r *Room) EndTurn(callerID string, state map[string]any) (TurnResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.Players[callerID]
	if !ok {
		return TurnResult{}, apperrors.ErrPlayerNotFound
	}
	if !r.GameStarted {
		return TurnResult{}, apperrors.ErrGameNotStarted
	}
	if r.CurrentPlayerID != callerID {
		return TurnResult{}, apperrors.ErrNotYourTurn
	}

	if len(state) > 0 {
		r.mergePlayerState(p, state)
	}

	currentIndex := 0
	for i, id := range r.PlayerOrder {
		if id == callerID {
			currentIndex = i
			break
		}
	}
	nextIndex := (currentIndex + 1) % len(r.PlayerOrder)
	r.CurrentPlayerID = r.PlayerOrder[nextIndex]

	result := TurnResult{
		PreviousPlayerID: callerID,
		CurrentPlayerID:  r.CurrentPlayerID,
		WrappedRound:     nextIndex == 0,
	}

	if result.WrappedRound {
		r.CurrentTurn++
		r.advanceCalendar()
	}
	return result, nil
}

// advanceCalendar 历法前进一天，月满进月、年满进年。
// 调用方必须持有房间锁
func (r *Room) advanceCalendar() {
	r.State.Day++
	if r.State.Day > monthLengths[r.State.Month-1] {
		r.State.Day = 1
		r.State.Month++
		if r.State.Month > 12 {
			r.State.Month = 1
			r.State.Year++
		}
	}
}

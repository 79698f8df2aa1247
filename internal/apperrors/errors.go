package apperrors

// Kind 错误类别，决定外层消息循环如何处理
type Kind int

const (
	KindProtocol   Kind = iota // 消息格式错误、未知动作
	KindValidation             // 当前状态不允许该操作
	KindAuth                   // 重连令牌不匹配
	KindNotFound               // 房间/玩家/提议不存在
)

// GameError 协调器错误，Message 直接下发给客户端
type GameError struct {
	Kind    Kind
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	// 协议层的固定文案，恶意或损坏的消息一律回复这一条
	ErrInvalidPayload = &GameError{KindProtocol, "invalid payload"}
	ErrUnknownAction  = &GameError{KindProtocol, "未知动作"}

	ErrRoomNotFound     = &GameError{KindNotFound, "房间不存在"}
	ErrPlayerNotFound   = &GameError{KindNotFound, "玩家不存在"}
	ErrTargetNotFound   = &GameError{KindNotFound, "目标玩家不存在"}
	ErrProposalNotFound = &GameError{KindNotFound, "没有待处理的提议"}
	ErrSaveNotFound     = &GameError{KindNotFound, "没有找到已保存的房间"}

	ErrRoomFull        = &GameError{KindValidation, "房间已满"}
	ErrGameStarted     = &GameError{KindValidation, "游戏已经开始"}
	ErrGameNotStarted  = &GameError{KindValidation, "游戏尚未开始"}
	ErrProvinceTaken   = &GameError{KindValidation, "该行省已被占用"}
	ErrNoProvince      = &GameError{KindValidation, "请先选择行省"}
	ErrNotHost         = &GameError{KindValidation, "只有房主可以执行该操作"}
	ErrNeedMorePlayers = &GameError{KindValidation, "至少需要 2 名玩家"}
	ErrNotYourTurn     = &GameError{KindValidation, "还没轮到您"}
	ErrRoomActive      = &GameError{KindValidation, "该房间仍在进行中"}

	ErrInvalidToken = &GameError{KindAuth, "重连令牌无效"}
)

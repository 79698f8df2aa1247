package room

// GameState 房间级游戏状态：历法、外交记录与聊天历史。
// 外交记录只增不删，作为完整的事件账本保留。
type GameState struct {
	Year            int         `json:"year"`
	Month           int         `json:"month"`
	Day             int         `json:"day"`
	Alliances       []Pact      `json:"alliances"`
	Wars            []*War      `json:"wars"`
	TradeAgreements []Pact      `json:"trade_agreements"`
	Messages        []ChatEntry `json:"messages"`
}

// Pact 结盟或贸易协定，player1/player2 为无序对
type Pact struct {
	Player1     string `json:"player1"`
	Player2     string `json:"player2"`
	StartedTurn int    `json:"started_turn"`
}

// War 战争记录
type War struct {
	ID          string        `json:"id"`
	Attacker    string        `json:"attacker"`
	Defender    string        `json:"defender"`
	Status      string        `json:"status"`
	StartedTurn int           `json:"started_turn"`
	Battles     []BattleEntry `json:"battles"`
}

// BattleEntry 战斗日志条目
type BattleEntry struct {
	Turn           int    `json:"turn"`
	Winner         string `json:"winner"`
	AttackerLosses int    `json:"attacker_losses"`
	DefenderLosses int    `json:"defender_losses"`
}

// BattleOutcome 单次战斗的结算结果
type BattleOutcome struct {
	Winner         string // attacker 或 defender
	AttackerLosses int
	DefenderLosses int
	AttackerArmy   int // 结算后兵力
	DefenderArmy   int
}

// ChatEntry 聊天历史条目
type ChatEntry struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
}

// newGameState 按配置的起始日期初始化游戏状态
func newGameState(year, month, day int) *GameState {
	return &GameState{
		Year:            year,
		Month:           month,
		Day:             day,
		Alliances:       []Pact{},
		Wars:            []*War{},
		TradeAgreements: []Pact{},
		Messages:        []ChatEntry{},
	}
}

// Clone 深拷贝游戏状态，供在锁外序列化的视图使用
func (gs *GameState) Clone() *GameState {
	cp := &GameState{
		Year:            gs.Year,
		Month:           gs.Month,
		Day:             gs.Day,
		Alliances:       append([]Pact{}, gs.Alliances...),
		TradeAgreements: append([]Pact{}, gs.TradeAgreements...),
		Messages:        append([]ChatEntry{}, gs.Messages...),
		Wars:            make([]*War, 0, len(gs.Wars)),
	}
	for _, w := range gs.Wars {
		wc := *w
		wc.Battles = append([]BattleEntry{}, w.Battles...)
		cp.Wars = append(cp.Wars, &wc)
	}
	return cp
}

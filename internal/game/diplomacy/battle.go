package diplomacy

import (
	"math/rand/v2"

	"github.com/palemoky/eyalet-online/internal/game/room"
)

// ResolveBattle 结算一次战斗。双方兵力各乘以 [0.8, 1.2) 的独立随机系数
// 得到有效战力，战力高者获胜；胜者损失本方兵力的 [0.1, 0.3)，
// 败者损失本方兵力的 [0.4, 0.7)，损失向下取整，兵力不会降到零以下。
func ResolveBattle(attackerArmy, defenderArmy int) room.BattleOutcome {
	attackerStrength := float64(attackerArmy) * uniform(0.8, 1.2)
	defenderStrength := float64(defenderArmy) * uniform(0.8, 1.2)

	var outcome room.BattleOutcome
	if attackerStrength > defenderStrength {
		outcome.Winner = "attacker"
		outcome.AttackerLosses = int(float64(attackerArmy) * uniform(0.1, 0.3))
		outcome.DefenderLosses = int(float64(defenderArmy) * uniform(0.4, 0.7))
	} else {
		outcome.Winner = "defender"
		outcome.AttackerLosses = int(float64(attackerArmy) * uniform(0.4, 0.7))
		outcome.DefenderLosses = int(float64(defenderArmy) * uniform(0.1, 0.3))
	}

	outcome.AttackerArmy = max(0, attackerArmy-outcome.AttackerLosses)
	outcome.DefenderArmy = max(0, defenderArmy-outcome.DefenderLosses)
	return outcome
}

func uniform(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

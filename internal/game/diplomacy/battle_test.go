package diplomacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBattle_Bounds(t *testing.T) {
	t.Parallel()

	// The resolver is random, check invariants over many runs
	for i := 0; i < 1000; i++ {
		outcome := ResolveBattle(500, 500)

		assert.Contains(t, []string{"attacker", "defender"}, outcome.Winner)
		assert.GreaterOrEqual(t, outcome.AttackerArmy, 0)
		assert.GreaterOrEqual(t, outcome.DefenderArmy, 0)
		assert.Equal(t, 500-outcome.AttackerLosses, outcome.AttackerArmy)
		assert.Equal(t, 500-outcome.DefenderLosses, outcome.DefenderArmy)

		// The winner loses 10-30%, the loser 40-70%
		if outcome.Winner == "attacker" {
			assert.InDelta(t, 100, outcome.AttackerLosses, 50) // [50, 150)
			assert.InDelta(t, 275, outcome.DefenderLosses, 75) // [200, 350)
		} else {
			assert.InDelta(t, 275, outcome.AttackerLosses, 75)
			assert.InDelta(t, 100, outcome.DefenderLosses, 50)
		}
	}
}

func TestResolveBattle_OverwhelmingForce(t *testing.T) {
	t.Parallel()

	// 10000 vs 100: even the worst roll (0.8x vs 1.2x) leaves the
	// attacker far ahead, so the defender can never win
	for i := 0; i < 200; i++ {
		outcome := ResolveBattle(10000, 100)
		assert.Equal(t, "attacker", outcome.Winner)
	}
}

func TestResolveBattle_ZeroArmies(t *testing.T) {
	t.Parallel()

	// 0 vs 0 strength ties go to the defender, nobody loses troops
	outcome := ResolveBattle(0, 0)
	assert.Equal(t, "defender", outcome.Winner)
	assert.Equal(t, 0, outcome.AttackerLosses)
	assert.Equal(t, 0, outcome.DefenderLosses)
	assert.Equal(t, 0, outcome.AttackerArmy)
	assert.Equal(t, 0, outcome.DefenderArmy)
}

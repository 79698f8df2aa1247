package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/eyalet-online/internal/apperrors"
)

// startTestGame prepares a started 3-player game.
func startTestGame(t *testing.T) (*Room, []*Player) {
	t.Helper()

	_, r, players := newTestRoom(t, 3)
	for i, p := range players {
		require.NoError(t, r.SelectProvince(p.ID, Provinces[i]))
	}
	require.NoError(t, r.Start(players[0].ID))
	return r, players
}

func TestRoom_StartValidation(t *testing.T) {
	t.Parallel()

	_, r, players := newTestRoom(t, 2)

	// Only the host may start
	err := r.Start(players[1].ID)
	assert.ErrorIs(t, err, apperrors.ErrNotHost)

	// Everyone must have picked a province
	require.NoError(t, r.SelectProvince(players[0].ID, Provinces[0]))
	err = r.Start(players[0].ID)
	var ge *apperrors.GameError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, apperrors.KindValidation, ge.Kind)

	require.NoError(t, r.SelectProvince(players[1].ID, Provinces[1]))
	require.NoError(t, r.Start(players[0].ID))

	view := r.View()
	assert.True(t, view.GameStarted)
	assert.Equal(t, 1, view.CurrentTurn)
	assert.Equal(t, players[0].ID, view.CurrentPlayerID)
}

func TestRoom_StartNeedsTwoPlayers(t *testing.T) {
	t.Parallel()

	_, r, players := newTestRoom(t, 1)
	require.NoError(t, r.SelectProvince(players[0].ID, Provinces[0]))

	err := r.Start(players[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrNeedMorePlayers)
}

func TestRoom_EndTurnRotation(t *testing.T) {
	t.Parallel()

	r, players := startTestGame(t)

	// Not the current player's turn
	_, err := r.EndTurn(players[1].ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotYourTurn)

	result, err := r.EndTurn(players[0].ID, map[string]any{"gold": 900})
	require.NoError(t, err)
	assert.Equal(t, players[0].ID, result.PreviousPlayerID)
	assert.Equal(t, players[1].ID, result.CurrentPlayerID)
	assert.False(t, result.WrappedRound)

	// The submitted snapshot was merged before the hand-off
	view, err := r.PlayerView(players[0].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 900, view.GameState["gold"])

	_, err = r.EndTurn(players[1].ID, nil)
	require.NoError(t, err)

	result, err = r.EndTurn(players[2].ID, nil)
	require.NoError(t, err)
	assert.True(t, result.WrappedRound)
	assert.Equal(t, players[0].ID, result.CurrentPlayerID)

	roomView := r.View()
	assert.Equal(t, 2, roomView.CurrentTurn)
}

func TestRoom_EndTurnBeforeStart(t *testing.T) {
	t.Parallel()

	_, r, players := newTestRoom(t, 2)
	_, err := r.EndTurn(players[0].ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrGameNotStarted)
}

func TestRoom_CalendarAdvance(t *testing.T) {
	t.Parallel()

	r, players := startTestGame(t)

	playRound := func() {
		for _, p := range players {
			_, err := r.EndTurn(p.ID, nil)
			require.NoError(t, err)
		}
	}

	playRound()
	view := r.View()
	assert.Equal(t, 1520, view.GameState.Year)
	assert.Equal(t, 1, view.GameState.Month)
	assert.Equal(t, 2, view.GameState.Day)

	// 30 more rounds roll January over into February
	for i := 0; i < 30; i++ {
		playRound()
	}
	view = r.View()
	assert.Equal(t, 2, view.GameState.Month)
	assert.Equal(t, 1, view.GameState.Day)
}

func TestAdvanceCalendar_YearRollover(t *testing.T) {
	t.Parallel()

	r := &Room{State: newGameState(1520, 12, 31)}
	r.advanceCalendar()

	assert.Equal(t, 1521, r.State.Year)
	assert.Equal(t, 1, r.State.Month)
	assert.Equal(t, 1, r.State.Day)
}

func TestAdvanceCalendar_FixedFebruary(t *testing.T) {
	t.Parallel()

	// 1520 is a leap year, the fixed calendar still caps February at 28
	r := &Room{State: newGameState(1520, 2, 28)}
	r.advanceCalendar()

	assert.Equal(t, 3, r.State.Month)
	assert.Equal(t, 1, r.State.Day)
}

package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/eyalet-online/internal/protocol"
)

func TestParseRequest(t *testing.T) {
	t.Parallel()

	env, err := protocol.Decode([]byte(`{"action":"join_room","room_code":"abc123","player_name":"Fatih"}`))
	require.NoError(t, err)

	req, err := ParseRequest[protocol.JoinRoomRequest](env)
	require.NoError(t, err)
	assert.Equal(t, "abc123", req.RoomCode)
	assert.Equal(t, "Fatih", req.PlayerName)
}

func TestParseRequest_WrongFieldType(t *testing.T) {
	t.Parallel()

	env, err := protocol.Decode([]byte(`{"action":"join_room","room_code":42}`))
	require.NoError(t, err)

	_, err = ParseRequest[protocol.JoinRoomRequest](env)
	assert.ErrorIs(t, err, protocol.ErrInvalidEnvelope)
}

func TestParseRequest_OptionalReadyFlag(t *testing.T) {
	t.Parallel()

	// Absent ready is distinguishable from an explicit false
	env, err := protocol.Decode([]byte(`{"action":"ready","player_id":"p1"}`))
	require.NoError(t, err)
	req, err := ParseRequest[protocol.ReadyRequest](env)
	require.NoError(t, err)
	assert.Nil(t, req.Ready)

	env, err = protocol.Decode([]byte(`{"action":"ready","player_id":"p1","ready":false}`))
	require.NoError(t, err)
	req, err = ParseRequest[protocol.ReadyRequest](env)
	require.NoError(t, err)
	require.NotNil(t, req.Ready)
	assert.False(t, *req.Ready)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	data, err := NewErrorMessage("invalid payload").Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","message":"invalid payload"}`, string(data))
}

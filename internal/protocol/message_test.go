package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	env, err := Decode([]byte(`{"action":"create_room","player_name":"Fatih"}`))
	require.NoError(t, err)
	assert.Equal(t, ActionCreateRoom, env.Action)
	assert.JSONEq(t, `{"action":"create_room","player_name":"Fatih"}`, string(env.Raw()))
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{not json`))
	assert.ErrorIs(t, err, ErrInvalidEnvelope)

	// A JSON array is not a valid envelope either
	_, err = Decode([]byte(`[1,2,3]`))
	assert.ErrorIs(t, err, ErrInvalidEnvelope)
}

func TestMessage_EncodeFlat(t *testing.T) {
	t.Parallel()

	msg := NewMessage(MsgPlayerReady, PlayerReadyPayload{PlayerID: "p1", Ready: true})
	data, err := msg.Encode()
	require.NoError(t, err)

	// The payload fields sit next to type, not under a nested key
	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "player_ready", flat["type"])
	assert.Equal(t, "p1", flat["player_id"])
	assert.Equal(t, true, flat["ready"])
	assert.NotContains(t, flat, "payload")
}

func TestMessage_EncodeNilPayload(t *testing.T) {
	t.Parallel()

	data, err := NewMessage(MsgPong, nil).Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pong"}`, string(data))
}

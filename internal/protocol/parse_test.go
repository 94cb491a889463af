package protocol_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tyrowin/cursorparty/internal/protocol"
)

func TestParseVariants(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    protocol.Inbound
	}{
		{
			name:    "cursor",
			payload: `{"type":"cursor","x":100,"y":250.5}`,
			want:    protocol.Cursor{X: 100, Y: 250.5},
		},
		{
			name:    "cursor with string coordinates",
			payload: `{"type":"cursor","x":"42","y":" 7 "}`,
			want:    protocol.Cursor{X: 42, Y: 7},
		},
		{
			name:    "cursor with missing and null coordinates",
			payload: `{"type":"cursor","y":null}`,
			want:    protocol.Cursor{},
		},
		{
			name:    "cursor beyond float range",
			payload: `{"type":"cursor","x":1e400,"y":-1e400}`,
			want:    protocol.Cursor{X: protocol.Coord(math.Inf(1)), Y: protocol.Coord(math.Inf(-1))},
		},
		{
			name:    "cursor with string beyond float range",
			payload: `{"type":"cursor","x":"1e400","y":"-1e400"}`,
			want:    protocol.Cursor{X: protocol.Coord(math.Inf(1)), Y: protocol.Coord(math.Inf(-1))},
		},
		{
			name:    "reaction",
			payload: `{"type":"reaction","x":1,"y":2,"emoji":"🔥"}`,
			want:    protocol.Reaction{X: 1, Y: 2, Emoji: "🔥"},
		},
		{
			name:    "firework",
			payload: `{"type":"firework","x":-5,"y":9000}`,
			want:    protocol.Firework{X: -5, Y: 9000},
		},
		{
			name:    "name",
			payload: `{"type":"name","name":"  Alice "}`,
			want:    protocol.Rename{Name: "  Alice "},
		},
		{
			name:    "private message",
			payload: `{"type":"private_message","targetUserId":"b1","message":"hi"}`,
			want:    protocol.PrivateMessage{TargetUserID: "b1", Message: "hi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := protocol.Parse([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Kind(), got.Kind())
		})
	}
}

func TestParseMalformed(t *testing.T) {
	payloads := []string{
		``,
		`not json`,
		`{"type":"cursor"`,
		`[1,2,3]`,
		`"cursor"`,
		`{"type":42}`,
		`{"type":"cursor","x":{"nested":true},"y":0}`,
		`{"type":"cursor","x":"left","y":0}`,
		`{"type":"cursor","x":true,"y":0}`,
		`{"type":"name","name":7}`,
		`{"type":"private_message","targetUserId":["a"],"message":"hi"}`,
	}

	for _, payload := range payloads {
		t.Run(payload, func(t *testing.T) {
			msg, err := protocol.Parse([]byte(payload))
			require.ErrorIs(t, err, protocol.ErrMalformed)
			assert.Nil(t, msg)
		})
	}
}

func TestParseUnknownKind(t *testing.T) {
	payloads := []string{
		`{}`,
		`null`,
		`{"type":""}`,
		`{"type":"teleport","x":1,"y":1}`,
		`{"type":"welcome","userId":"x"}`,
		`{"type":"join","userId":"x","count":99}`,
		`{"type":"leave","userId":"x","count":0}`,
		`{"type":"CURSOR","x":1,"y":1}`,
	}

	for _, payload := range payloads {
		t.Run(payload, func(t *testing.T) {
			msg, err := protocol.Parse([]byte(payload))
			require.ErrorIs(t, err, protocol.ErrUnknownKind)
			assert.NotErrorIs(t, err, protocol.ErrMalformed)
			assert.Nil(t, msg)
		})
	}
}

func TestEncodeFieldNames(t *testing.T) {
	data, err := protocol.Encode(protocol.NewCursorMoved("b1", 100, 100, "#FF6B6B", "Bob"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"cursor","userId":"b1","x":100,"y":100,"color":"#FF6B6B","name":"Bob"}`, string(data))

	data, err = protocol.Encode(protocol.NewRenamed("a1", "Alice", "User12"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"name","userId":"a1","name":"Alice","oldName":"User12"}`, string(data))

	data, err = protocol.Encode(protocol.NewPrivateDelivery("psst"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"private_message","message":"psst"}`, string(data))

	data, err = protocol.Encode(protocol.NewLeave("b1", "Bob", 1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"leave","userId":"b1","name":"Bob","count":1}`, string(data))
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnUnmarshal(t *testing.T) {
	var turns []Turn
	err := json.Unmarshal([]byte(`[
		{"role": "user", "content": "hello"},
		{"role": "assistant", "content": 42},
		{"role": "narrator", "content": {"a": 1}},
		{"content": null},
		{"role": "system", "content": "x", "name": "ignored"}
	]`), &turns)
	require.NoError(t, err)

	assert.Equal(t, []Turn{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "42"},
		{Role: "narrator", Content: `{"a": 1}`},
		{},
		{Role: "system", Content: "x"},
	}, turns)
}

func TestTurnUnmarshal_NotAnObject(t *testing.T) {
	var turn Turn
	assert.Error(t, json.Unmarshal([]byte(`"just a string"`), &turn))
}

func TestHistoryUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []Turn
		wantErr bool
	}{
		{name: "absent", body: `{}`},
		{name: "null", body: `{"message_history": null}`},
		{name: "empty", body: `{"message_history": []}`, want: []Turn{}},
		{
			name: "turns",
			body: `{"message_history": [{"role": "user", "content": "hi"}]}`,
			want: []Turn{{Role: "user", Content: "hi"}},
		},
		{name: "string", body: `{"message_history": "x"}`, wantErr: true},
		{name: "list of strings", body: `{"message_history": ["hi"]}`, wantErr: true},
		{name: "bare object", body: `{"message_history": {"role": "user"}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req struct {
				History History `json:"message_history"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			if tt.wantErr {
				assert.Error(t, req.History.Err)
				assert.Nil(t, req.History.Turns)
				return
			}
			assert.NoError(t, req.History.Err)
			assert.Equal(t, tt.want, req.History.Turns)
		})
	}
}

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a prior conversation message. It is forwarded as-is and never validated.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UnmarshalJSON accepts any JSON value for role and content. Strings are
// unquoted, everything else keeps its raw JSON text.
func (t *Turn) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Role = rawText(raw["role"])
	t.Content = rawText(raw["content"])
	return nil
}

func rawText(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

// History is the message_history of a chat request. Decoding never fails:
// a value that is not a list of objects is kept as Err so the chat can
// report it in the answer stream instead of rejecting the request.
type History struct {
	Turns []Turn
	Err   error
}

func (h *History) UnmarshalJSON(data []byte) error {
	h.Turns, h.Err = nil, nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		h.Err = fmt.Errorf("invalid message_history: %v", err)
		return nil
	}
	h.Turns = turns
	return nil
}

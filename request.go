package historyhooks

import "github.com/google/uuid"

// ProviderRequest is the request a host assembles for one model call.
// Contexts holds the full conversation history plus the new user turn,
// in order. Hooks mutate it in place; the slice stays shared with the
// host, which sends it to the model after the pipeline returns.
type ProviderRequest struct {
	SessionID    string        `json:"session_id,omitempty"`
	Prompt       string        `json:"prompt,omitempty"`
	SystemPrompt string        `json:"system_prompt,omitempty"`
	Contexts     []interface{} `json:"contexts"`
}

// NewSessionID returns a fresh session handle, for hosts that do not
// carry a stable message-origin id of their own.
func NewSessionID() string {
	return uuid.NewString()
}

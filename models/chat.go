package models

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a session's conversation history.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse is what the chat handler returns to the frontend.
type ChatResponse struct {
	Response          string   `json:"response"`
	Options           []string `json:"options,omitempty"`
	ConversationState string   `json:"conversation_state,omitempty"`
	RequiresInput     bool     `json:"requires_input"`
	BookingID         string   `json:"booking_id,omitempty"`
	PaymentRef        string   `json:"payment_ref,omitempty"`
}

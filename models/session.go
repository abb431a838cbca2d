package models

import "time"

// Session holds the full per-user conversational state: message history,
// accumulated booking context, and the offers shown during this flow so a
// later "select 2" can be resolved without re-searching.
//
// Sessions are persisted as a single JSON document. Version is bumped on
// every save; a concurrent writer loses with a conflict and retries its turn.
type Session struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	Messages      []Message           `json:"messages"`
	Context       ConversationContext `json:"context"`
	Offers        []Offer             `json:"offers,omitempty"`
	SelectedOffer *Offer              `json:"selectedOffer,omitempty"`
	Passenger     PassengerDetails    `json:"passenger"`
	Version       int64               `json:"version"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// PassengerDetails is collected field by field during the info steps.
type PassengerDetails struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Age      int    `json:"age,omitempty"`
}

const systemPrompt = "You are a helpful flight booking assistant. Keep responses concise and friendly. Always confirm details before proceeding with bookings."

// NewSession returns a fresh session seeded with the system prompt.
func NewSession(id, userID string) *Session {
	now := time.Now()
	return &Session{
		ID:     id,
		UserID: userID,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt, Timestamp: now},
		},
		Context:   ConversationContext{BookingStep: StepInitial},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

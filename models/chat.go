package models

import "time"

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId,omitempty"`
}

// ChatResponse is what the chat handler returns to the frontend.
type ChatResponse struct {
	Response  string   `json:"response"`
	SessionID string   `json:"sessionId"`
	AudioURL  string   `json:"audioUrl,omitempty"`
	Sources   []string `json:"sources"`
}

// ConversationMessage is a single turn in a session's history.
type ConversationMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session tracks one conversation: its history and any in-progress flow state.
type Session struct {
	ID                  string
	History             []ConversationMessage
	BookingDraft        *BookingDraft
	CancellationPending bool
	LastActivity        time.Time
}

// AddMessage appends a turn to the history and refreshes the activity clock.
func (s *Session) AddMessage(role, text string) {
	s.History = append(s.History, ConversationMessage{
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	})
	s.LastActivity = time.Now()
}

// SessionStats summarizes store activity for the admin surface.
type SessionStats struct {
	ActiveSessions       int       `json:"activeSessions"`
	TotalMessages        int       `json:"totalMessages"`
	ActiveBookings       int       `json:"activeBookings"`
	PendingCancellations int       `json:"pendingCancellations"`
	Timestamp            time.Time `json:"timestamp"`
}

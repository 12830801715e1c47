package model

import "time"

// ChatMessage is one turn of a user's conversation history.
type ChatMessage struct {
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest is the inbound message envelope from the transport layer.
type ChatRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	UserID   string `json:"user_id"`
}

// AnonymousUserID is the sentinel used when the transport supplies no
// user id. All anonymous callers share one conversation; a known
// limitation of the envelope, not something to fix silently here.
const AnonymousUserID = "anonymous"

// ResolveUserID applies the anonymous sentinel.
func (r *ChatRequest) ResolveUserID() string {
	if r.UserID == "" {
		return AnonymousUserID
	}
	return r.UserID
}

// ChatResponse is the outbound reply envelope.
type ChatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// NewChatResponse stamps a reply with the current time in ISO-8601.
func NewChatResponse(reply string) ChatResponse {
	return ChatResponse{
		Response:  reply,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

package model

// Message is one entry in the intake chat. Messages are never edited after
// they are appended to a conversation.
type Message struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	IsUser       bool   `json:"is_user"`
	AvatarSource string `json:"avatar_source,omitempty"`
}

type ConversationSession struct {
	SessionID string `json:"session_id"`
	Collected bool   `json:"collected"`
}

// ChatRequest is the body of POST chat/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type ChatResponse struct {
	SessionID            string         `json:"session_id"`
	FollowUpQuestions    []string       `json:"follow_up_questions"`
	ConversationComplete bool           `json:"conversation_complete"`
	ExtractedParams      map[string]any `json:"extracted_params,omitempty"`
}

package mockapi

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"fast-trip/model"
)

// CollectedSentinel is the last follow-up of a finished intake.
const CollectedSentinel = "Thank you! All information is collected."

// RequiredFields are the trip details the intake asks for, in order.
var RequiredFields = []string{
	"budget", "start_location", "destination", "start_date", "end_date",
	"accessibility_needs", "dietary_needs", "age", "interest", "how_packed_trip",
	"okay_with_walking", "trip_type", "number_of_travellers",
}

type conversation struct {
	state   map[string]any
	history []string
}

func newConversation() *conversation {
	state := make(map[string]any, len(RequiredFields))
	for _, f := range RequiredFields {
		state[f] = nil
	}
	return &conversation{state: state}
}

func (c *conversation) missing() []string {
	var out []string
	for _, f := range RequiredFields {
		if c.state[f] == nil {
			out = append(out, f)
		}
	}
	return out
}

// answer records message against the first missing field and returns the
// next question.
func (c *conversation) answer(message string) (next string, complete bool) {
	c.history = append(c.history, message)

	missing := c.missing()
	if len(missing) == 0 {
		return CollectedSentinel, true
	}
	c.state[missing[0]] = "mock_" + missing[0]
	if len(missing) == 1 {
		return CollectedSentinel, true
	}
	return "Could you please tell me your " + strings.ReplaceAll(missing[1], "_", " ") + "?", false
}

func (c *conversation) params() map[string]any {
	out := make(map[string]any, len(c.state))
	for k, v := range c.state {
		out[k] = v
	}
	return out
}

// ConversationStore keeps mock intake sessions in memory.
type ConversationStore struct {
	mu       sync.Mutex
	sessions map[string]*conversation
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{sessions: make(map[string]*conversation)}
}

// Chat answers one message. Unknown session ids, the "new" placeholder
// included, start a fresh session under a new id.
func (s *ConversationStore) Chat(req model.ChatRequest) model.ChatResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := req.SessionID
	conv, ok := s.sessions[id]
	if !ok {
		id = uuid.New().String()
		conv = newConversation()
		s.sessions[id] = conv
	}

	next, complete := conv.answer(req.Message)
	return model.ChatResponse{
		SessionID:            id,
		FollowUpQuestions:    []string{next},
		ConversationComplete: complete,
		ExtractedParams:      conv.params(),
	}
}

func (s *ConversationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

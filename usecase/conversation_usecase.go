package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"fast-trip/model"
	"fast-trip/pkg/tripapi"
)

const (
	// CollectedSentinel is the follow-up text the conversational API sends
	// once every required trip field is filled. Matched exactly.
	CollectedSentinel = "Thank you! All information is collected."

	// PlaceholderSessionID is sent until the server assigns a session.
	PlaceholderSessionID = "new"

	AvatarAssistant = "/static/avatar-assistant.svg"
	AvatarUser      = "/static/avatar-user.svg"

	msgChatFailed = "We couldn't reach the travel assistant. Please try again."
)

// ChatAPI is the part of the trip API the conversation talks to.
type ChatAPI interface {
	Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error)
}

// ConversationUsecase drives the intake chat for one page view. It moves
// from collecting to collected exactly once and never back.
type ConversationUsecase struct {
	api    ChatAPI
	ids    *idGenerator
	logger *slog.Logger

	lifetime context.Context
	cancel   context.CancelFunc

	// sendMu keeps a single request outstanding per conversation
	sendMu sync.Mutex

	mu        sync.RWMutex
	messages  []model.Message
	sessionID string
	collected bool
	failure   string
}

func NewConversationUsecase(api ChatAPI, greeting string, logger *slog.Logger) *ConversationUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	lifetime, cancel := context.WithCancel(context.Background())
	u := &ConversationUsecase{
		api:       api,
		ids:       newIDGenerator(),
		logger:    logger,
		lifetime:  lifetime,
		cancel:    cancel,
		sessionID: PlaceholderSessionID,
	}
	u.messages = []model.Message{{
		ID:           u.ids.New(),
		Text:         greeting,
		IsUser:       false,
		AvatarSource: AvatarAssistant,
	}}
	return u
}

// SendMessage appends the user's message right away, forwards it to the
// conversational API and merges the reply. Blank input does nothing.
func (u *ConversationUsecase) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	// 1. Optimistic append
	u.mu.Lock()
	if u.lifetime.Err() != nil {
		u.mu.Unlock()
		return ErrViewClosed
	}
	if u.collected {
		u.mu.Unlock()
		return ErrConversationCollected
	}
	pendingID := u.ids.New()
	u.messages = append(u.messages, model.Message{
		ID:           pendingID,
		Text:         text,
		IsUser:       true,
		AvatarSource: AvatarUser,
	})
	u.failure = ""
	u.mu.Unlock()

	// 2. Forward to the conversational API
	u.sendMu.Lock()
	defer u.sendMu.Unlock()

	u.mu.Lock()
	sessionID, collected := u.sessionID, u.collected
	if collected {
		// an earlier queued send finished the intake; nothing will answer
		// this message, so take it back
		u.messages = slices.DeleteFunc(u.messages, func(m model.Message) bool {
			return m.ID == pendingID
		})
		u.mu.Unlock()
		return ErrConversationCollected
	}
	u.mu.Unlock()

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(u.lifetime, cancel)
	defer stop()

	resp, err := u.api.Chat(callCtx, model.ChatRequest{Message: text, SessionID: sessionID})

	// 3. Merge the reply
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.lifetime.Err() != nil {
		u.logger.Debug("Discarding chat reply for closed view", "session_id", sessionID)
		return ErrViewClosed
	}
	if err != nil {
		u.failure = tripapi.UserMessage(err, msgChatFailed)
		u.logger.Warn("Chat message failed", "session_id", sessionID, "error", err)
		return fmt.Errorf("send chat message: %w", err)
	}
	u.applyLocked(resp)
	return nil
}

func (u *ConversationUsecase) applyLocked(resp *model.ChatResponse) {
	if resp.SessionID != "" && resp.SessionID != u.sessionID {
		u.logger.Debug("Adopting server session", "previous", u.sessionID, "session_id", resp.SessionID)
		u.sessionID = resp.SessionID
	}

	questions := resp.FollowUpQuestions
	if len(questions) > 0 && questions[0] != CollectedSentinel && !resp.ConversationComplete {
		for _, q := range questions {
			u.messages = append(u.messages, model.Message{
				ID:           u.ids.New(),
				Text:         q,
				IsUser:       false,
				AvatarSource: AvatarAssistant,
			})
		}
		return
	}

	u.collected = true
	u.logger.Info("Trip information collected", "session_id", u.sessionID)
}

// Messages returns a copy of the conversation in the order it happened.
func (u *ConversationUsecase) Messages() []model.Message {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return slices.Clone(u.messages)
}

func (u *ConversationUsecase) Session() model.ConversationSession {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return model.ConversationSession{SessionID: u.sessionID, Collected: u.collected}
}

func (u *ConversationUsecase) Collected() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.collected
}

// Failure is the message of the last failed send, cleared by the next send.
func (u *ConversationUsecase) Failure() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.failure
}

// Close ends the view's lifetime. A reply still in flight is cancelled and
// will not touch the conversation.
func (u *ConversationUsecase) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cancel()
}

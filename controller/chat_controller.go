package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"fast-trip/dao"
	"fast-trip/usecase"
	"fast-trip/view"
)

// ChatCookie holds the id of the visitor's chat view.
const ChatCookie = "fasttrip_chat"

type ChatController struct {
	views           *dao.ViewRepository[*usecase.ConversationUsecase]
	newConversation func() *usecase.ConversationUsecase
	pages           pageWriter
	logger          *slog.Logger
}

func NewChatController(
	views *dao.ViewRepository[*usecase.ConversationUsecase],
	newConversation func() *usecase.ConversationUsecase,
	renderer *view.Renderer,
	logger *slog.Logger,
) *ChatController {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatController{
		views:           views,
		newConversation: newConversation,
		pages:           pageWriter{renderer: renderer, logger: logger},
		logger:          logger,
	}
}

// Index renders the landing page with the visitor's conversation, opening
// one when there is none.
func (c *ChatController) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		c.pages.writeError(w, http.StatusNotFound, "Page not found.")
		return
	}
	conv := c.conversation(w, r)
	c.pages.write(w, http.StatusOK, view.PageChat, view.ChatPage{
		Messages:  conv.Messages(),
		Collected: conv.Collected(),
		Failure:   conv.Failure(),
		FAQ:       view.DefaultFAQ,
	})
}

// Send forwards the submitted message and redirects back to the chat.
// Failures are kept on the conversation and shown by Index.
func (c *ChatController) Send(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.pages.writeError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}
	conv := c.conversation(w, r)

	err := conv.SendMessage(r.Context(), r.PostForm.Get("message"))
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrConversationCollected):
		c.logger.Debug("Ignoring message after intake finished")
	case errors.Is(err, usecase.ErrViewClosed):
		c.logger.Debug("Chat view closed during send")
	default:
		c.logger.Info("Chat send failed", "error", err)
	}
	http.Redirect(w, r, "/#chat", http.StatusSeeOther)
}

// Reset closes the visitor's conversation and starts over.
func (c *ChatController) Reset(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(ChatCookie); err == nil {
		c.views.Delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     ChatCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *ChatController) conversation(w http.ResponseWriter, r *http.Request) *usecase.ConversationUsecase {
	if cookie, err := r.Cookie(ChatCookie); err == nil {
		if conv, err := c.views.Get(cookie.Value); err == nil {
			return conv
		}
	}

	conv := c.newConversation()
	id := c.views.Insert(conv)
	http.SetCookie(w, &http.Cookie{
		Name:     ChatCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return conv
}

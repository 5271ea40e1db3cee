package usecase

import "errors"

var (
	ErrConversationCollected = errors.New("all trip information is already collected")
	ErrViewClosed            = errors.New("view closed")
)

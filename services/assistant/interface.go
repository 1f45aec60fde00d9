package assistant

import (
	"context"

	"matero/models"
)

// TurnResult is what one user turn produces: the assistant's replies plus a
// snapshot of where the dialogue now stands.
type TurnResult struct {
	SessionID string       `json:"sessionId"`
	Step      Step         `json:"step"`
	Replies   []string     `json:"replies"`
	Draft     models.Draft `json:"draft"`
}

// AssistantService is the turn-based dialogue engine guiding a user through
// a material request.
type AssistantService interface {
	// StartSession begins (or restarts) a conversation for the user and
	// returns the welcome prompt.
	StartSession(ctx context.Context, ident models.Submitter) (*TurnResult, error)

	// HandleTurn processes one user message. When the conversation has
	// streaming enabled and onChunk is non-nil, incremental AI text is
	// delivered through it; the final reply is always in the result too.
	HandleTurn(ctx context.Context, ident models.Submitter, text string, onChunk func(string)) (*TurnResult, error)

	// EndSession closes the conversation and its audit session.
	EndSession(ctx context.Context, ident models.Submitter) error
}

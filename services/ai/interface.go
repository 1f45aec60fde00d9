package ai

import (
	"context"

	"matero/models"
)

// Message is one prompt entry sent to the completion endpoint.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResult is a completed exchange: the display reply with action markers
// stripped, and the extracted structured action, if any.
type ChatResult struct {
	Reply  string
	Action *models.AssistantAction
}

// ChatClient talks to an external completion endpoint. SendStream delivers
// incremental display text through onChunk; marker payloads never reach it.
type ChatClient interface {
	Send(ctx context.Context, messages []Message) (*ChatResult, error)
	SendStream(ctx context.Context, messages []Message, onChunk func(text string)) (*ChatResult, error)
}

package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TypeAssistantReset returns a conversation to a fresh site step a few
	// seconds after a successful submission.
	TypeAssistantReset = "assistant:reset"
	// TypeRequestSubmitted finalizes the audit session for a submitted request.
	TypeRequestSubmitted = "request:submitted"
)

type AssistantResetPayload struct {
	UserID string `json:"userId"`
}

type RequestSubmittedPayload struct {
	RequestID string `json:"requestId"`
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

func NewAssistantResetTask(payload AssistantResetPayload, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	return asynq.NewTask(TypeAssistantReset, b), []asynq.Option{asynq.ProcessIn(delay)}, nil
}

func NewRequestSubmittedTask(payload RequestSubmittedPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	return asynq.NewTask(TypeRequestSubmitted, b), nil, nil
}

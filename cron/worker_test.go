package cron

import (
	"context"
	"testing"
	"time"

	"matero/models"
	"matero/services/assistant"
	"matero/services/tasks"
)

type memStates struct {
	states map[string]assistant.ConvState
}

func (m *memStates) Get(_ context.Context, userID string) (*assistant.ConvState, error) {
	st, ok := m.states[userID]
	if !ok {
		return nil, nil
	}
	cp := st
	return &cp, nil
}

func (m *memStates) Set(_ context.Context, userID string, st *assistant.ConvState) error {
	m.states[userID] = *st
	return nil
}

func (m *memStates) Clear(_ context.Context, userID string) error {
	delete(m.states, userID)
	return nil
}

type memSessions struct {
	statuses map[string]string
}

func (m *memSessions) StartSession(_ context.Context, userID string) (string, error) {
	return "sess-1", nil
}

func (m *memSessions) SaveMessage(_ context.Context, sessionID string, msg models.SessionMessage) error {
	return nil
}

func (m *memSessions) UpdateSession(_ context.Context, sessionID, status string) error {
	m.statuses[sessionID] = status
	return nil
}

func (m *memSessions) GetMessages(_ context.Context, sessionID string) ([]models.SessionMessage, error) {
	return nil, nil
}

func TestHandleAssistantResetOnlyAfterSubmission(t *testing.T) {
	states := &memStates{states: make(map[string]assistant.ConvState)}

	st := assistant.NewConvState("sess-1")
	st.Step = assistant.StepSubmitted
	st.AIEnabled = true
	st.Draft = models.Draft{SiteName: "Riverside Apartments"}
	states.states["u1"] = st

	task, _, err := tasks.NewAssistantResetTask(tasks.AssistantResetPayload{UserID: "u1"}, time.Second)
	if err != nil {
		t.Fatalf("NewAssistantResetTask: %v", err)
	}

	if err := handleAssistantReset(states)(context.Background(), task); err != nil {
		t.Fatalf("handleAssistantReset: %v", err)
	}

	got := states.states["u1"]
	if got.Step != assistant.StepSite || got.Draft.SiteName != "" {
		t.Fatalf("state not reset: %+v", got)
	}
	if !got.AIEnabled {
		t.Fatal("AI toggle must survive the reset")
	}
}

func TestHandleAssistantResetLeavesActiveConversationAlone(t *testing.T) {
	states := &memStates{states: make(map[string]assistant.ConvState)}

	st := assistant.NewConvState("sess-1")
	st.Step = assistant.StepItems
	st.Draft = models.Draft{SiteName: "Hilltop Mall"}
	states.states["u1"] = st

	task, _, _ := tasks.NewAssistantResetTask(tasks.AssistantResetPayload{UserID: "u1"}, time.Second)
	if err := handleAssistantReset(states)(context.Background(), task); err != nil {
		t.Fatalf("handleAssistantReset: %v", err)
	}

	if got := states.states["u1"]; got.Step != assistant.StepItems || got.Draft.SiteName != "Hilltop Mall" {
		t.Fatalf("active conversation was touched: %+v", got)
	}
}

func TestHandleRequestSubmittedUpdatesSession(t *testing.T) {
	sessions := &memSessions{statuses: make(map[string]string)}

	task, _, err := tasks.NewRequestSubmittedTask(tasks.RequestSubmittedPayload{
		RequestID: "req-1", SessionID: "sess-1", UserID: "u1",
	})
	if err != nil {
		t.Fatalf("NewRequestSubmittedTask: %v", err)
	}

	if err := handleRequestSubmitted(sessions)(context.Background(), task); err != nil {
		t.Fatalf("handleRequestSubmitted: %v", err)
	}
	if sessions.statuses["sess-1"] != models.SessionSubmitted {
		t.Fatalf("status = %q", sessions.statuses["sess-1"])
	}
}

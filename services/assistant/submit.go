package assistant

import (
	"context"
	"fmt"

	"matero/models"
	"matero/services/tasks"
	"matero/utils"

	"go.uber.org/zap"
)

// allowedRoles may forward a finished draft to the submission sink.
var allowedRoles = map[string]bool{
	"Site Engineer": true,
	"ICT":           true,
	"Admin":         true,
	"Manager":       true,
}

const (
	msgNotSignedIn   = "You need to be signed in to submit a request."
	msgNotAuthorized = "Your role (%s) isn't authorized to submit material requests. Please ask a Site Engineer, ICT, Admin or Manager."
	msgSubmitted     = "Request submitted! I'll start a fresh one for you in a moment."
)

// submit runs the submission gate: identity, role allow-list, then the sink.
// On failure the conversation stays in confirm with the draft intact so the
// user can retry; on success the auto-reset task is scheduled.
func (s *DefaultAssistantService) submit(ctx context.Context, st ConvState, ident models.Submitter, out *turnOutput) ConvState {
	if ident.UserID == "" {
		st.say(out, msgNotSignedIn)
		return st
	}
	if !allowedRoles[ident.Role] {
		st.say(out, fmt.Sprintf(msgNotAuthorized, ident.Role))
		return st
	}

	req := models.MaterialRequest{
		SiteName:  st.Draft.SiteName,
		Priority:  st.Draft.Priority,
		Items:     st.Draft.Items,
		Notes:     st.Draft.Notes,
		Submitter: ident,
	}
	requestID, err := s.Requests.Create(ctx, req)
	if err != nil {
		// The sink's message is surfaced verbatim; the draft stays alive.
		st.say(out, err.Error())
		return st
	}

	st.Step = StepSubmitted
	st.say(out, msgSubmitted)

	if task, opts, err := tasks.NewAssistantResetTask(tasks.AssistantResetPayload{UserID: ident.UserID}, s.ResetDelay); err == nil {
		s.enqueue(task, opts)
	}
	if task, opts, err := tasks.NewRequestSubmittedTask(tasks.RequestSubmittedPayload{
		RequestID: requestID,
		SessionID: st.SessionID,
		UserID:    ident.UserID,
	}); err == nil {
		s.enqueue(task, opts)
	}

	utils.GetLogger().Info("material request submitted",
		zap.String("requestId", requestID),
		zap.String("user", ident.UserID),
		zap.String("site", st.Draft.SiteName),
		zap.Int("items", len(st.Draft.Items)),
	)
	return st
}

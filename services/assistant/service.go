package assistant

import (
	"context"
	"fmt"
	"sync"
	"time"

	chatlogRepo "matero/database/repository/chatlog"
	requestRepo "matero/database/repository/request"
	"matero/models"
	"matero/services/ai"
	"matero/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TaskEnqueuer is the slice of asynq.Client the service needs; tests swap in
// a fake.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultAssistantService orchestrates one turn at a time per conversation:
// load state, reduce, perform effects (AI call, submission, logging), save.
type DefaultAssistantService struct {
	States   StateStore
	Catalog  *CatalogHolder
	Chat     ai.ChatClient
	Sessions chatlogRepo.SessionRepository
	Requests requestRepo.RequestRepository
	Queue    TaskEnqueuer

	// ResetDelay is how long a submitted conversation lingers before the
	// auto-reset task returns it to a fresh site step.
	ResetDelay time.Duration

	// busy holds one mutex per active conversation. A turn that arrives
	// while another is in flight is rejected, not queued; this is the
	// single-active-turn guarantee.
	busy sync.Map
}

func (s *DefaultAssistantService) lockFor(userID string) *sync.Mutex {
	mu, _ := s.busy.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// StartSession begins (or restarts) a conversation for the user.
func (s *DefaultAssistantService) StartSession(ctx context.Context, ident models.Submitter) (*TurnResult, error) {
	sessionID, err := s.Sessions.StartSession(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	st := NewConvState(sessionID)
	if err := s.States.Set(ctx, ident.UserID, &st); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}

	s.logMessage(sessionID, models.RoleAssistant, msgWelcome, "")
	return s.result(&st, []string{msgWelcome}), nil
}

// EndSession closes the conversation and marks the audit session ended.
func (s *DefaultAssistantService) EndSession(ctx context.Context, ident models.Submitter) error {
	st, err := s.States.Get(ctx, ident.UserID)
	if err != nil {
		return err
	}
	if st != nil && st.SessionID != "" {
		if err := s.Sessions.UpdateSession(ctx, st.SessionID, models.SessionEnded); err != nil {
			utils.GetLogger().Warn("end session: status update failed", zap.Error(err))
		}
	}
	return s.States.Clear(ctx, ident.UserID)
}

// HandleTurn processes one user message end to end. Any unexpected failure
// inside the turn degrades to an inline error reply; the draft survives.
func (s *DefaultAssistantService) HandleTurn(ctx context.Context, ident models.Submitter, text string, onChunk func(string)) (result *TurnResult, err error) {
	logger := utils.GetLogger()

	mu := s.lockFor(ident.UserID)
	if !mu.TryLock() {
		return &TurnResult{Replies: []string{msgProcessing}}, nil
	}
	defer mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("assistant turn panic", zap.Any("panic", r), zap.String("user", ident.UserID))
			result = &TurnResult{Replies: []string{"[Error] Something went wrong handling that message. Your draft is intact, please try again."}}
			err = nil
		}
	}()

	st, err := s.States.Get(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if st == nil {
		started, err := s.StartSession(ctx, ident)
		if err != nil {
			return nil, err
		}
		st, err = s.States.Get(ctx, ident.UserID)
		if err != nil || st == nil {
			return started, err
		}
	}

	s.logMessage(st.SessionID, models.RoleUser, text, "")

	catalog := s.Catalog.Current()
	next, out := reduce(*st, text, catalog)

	switch out.effect {
	case effectSubmit:
		next = s.submit(ctx, next, ident, &out)
	case effectEndSession:
		if err := s.Sessions.UpdateSession(ctx, next.SessionID, models.SessionEnded); err != nil {
			logger.Warn("session status update failed", zap.Error(err))
		}
		s.logReplies(next.SessionID, out.replies)
		if err := s.States.Clear(ctx, ident.UserID); err != nil {
			logger.Warn("state clear failed", zap.Error(err))
		}
		return s.result(&next, out.replies), nil
	case effectNewSession:
		if err := s.Sessions.UpdateSession(ctx, next.SessionID, models.SessionEnded); err != nil {
			logger.Warn("session status update failed", zap.Error(err))
		}
		sessionID, err := s.Sessions.StartSession(ctx, ident.UserID)
		if err != nil {
			return nil, fmt.Errorf("new session: %w", err)
		}
		fresh := NewConvState(sessionID)
		fresh.AIEnabled = next.AIEnabled
		fresh.StreamEnabled = next.StreamEnabled
		next = fresh
	}

	if out.wantAI && s.Chat != nil {
		next = s.augment(ctx, next, catalog, &out, onChunk)
	}

	if err := s.States.Set(ctx, ident.UserID, &next); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}

	s.logReplies(next.SessionID, out.replies)
	return s.result(&next, out.replies), nil
}

// augment forwards the turn to the completion endpoint and merges the reply.
// Failures become an inline transcript error, never an aborted turn.
func (s *DefaultAssistantService) augment(ctx context.Context, st ConvState, catalog *Catalog, out *turnOutput, onChunk func(string)) ConvState {
	msgs := buildPrompt(st)

	var (
		res *ai.ChatResult
		err error
	)
	if st.StreamEnabled && onChunk != nil {
		res, err = s.Chat.SendStream(ctx, msgs, onChunk)
	} else {
		res, err = s.Chat.Send(ctx, msgs)
	}
	if err != nil {
		utils.GetLogger().Warn("ai augmentation failed", zap.Error(err))
		errMsg := "[Error] AI assistant unavailable right now."
		st.addAssistant(errMsg)
		out.replies = append(out.replies, errMsg)
		return st
	}

	if res.Reply != "" {
		st.AddAIReply(res.Reply)
		out.replies = append(out.replies, res.Reply)
	}
	return applyAction(st, res.Action, catalog)
}

func (s *DefaultAssistantService) result(st *ConvState, replies []string) *TurnResult {
	return &TurnResult{
		SessionID: st.SessionID,
		Step:      st.Step,
		Replies:   replies,
		Draft:     st.Draft,
	}
}

// logMessage mirrors a turn into the audit session, fire-and-forget. A
// logging failure never blocks or corrupts the dialogue.
func (s *DefaultAssistantService) logMessage(sessionID, role, content, actionType string) {
	if s.Sessions == nil || sessionID == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		msg := models.SessionMessage{Role: role, Content: content, ActionType: actionType}
		if err := s.Sessions.SaveMessage(ctx, sessionID, msg); err != nil {
			utils.GetLogger().Debug("session log write failed", zap.Error(err))
		}
	}()
}

func (s *DefaultAssistantService) logReplies(sessionID string, replies []string) {
	for _, r := range replies {
		s.logMessage(sessionID, models.RoleAssistant, r, "")
	}
}

// enqueue pushes a background task, logging instead of failing the turn.
func (s *DefaultAssistantService) enqueue(task *asynq.Task, opts []asynq.Option) {
	if s.Queue == nil || task == nil {
		return
	}
	if _, err := s.Queue.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Warn("task enqueue failed", zap.String("type", task.Type()), zap.Error(err))
	}
}

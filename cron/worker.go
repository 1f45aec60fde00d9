package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"matero/config"
	chatlogRepo "matero/database/repository/chatlog"
	"matero/models"
	"matero/services/assistant"
	"matero/services/tasks"
	"matero/utils"

	"github.com/hibiken/asynq"
	cronv3 "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InitWorker runs the asynq worker for assistant background tasks.
func InitWorker(states assistant.StateStore, sessions chatlogRepo.SessionRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAssistantReset, handleAssistantReset(states))
	mux.HandleFunc(tasks.TypeRequestSubmitted, handleRequestSubmitted(sessions))

	go func() {
		log.Println("[Worker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleAssistantReset returns a submitted conversation to a fresh site step.
// If the user already moved on (state changed or gone), it does nothing.
func handleAssistantReset(states assistant.StateStore) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.AssistantResetPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return err
		}

		st, err := states.Get(ctx, p.UserID)
		if err != nil {
			return err
		}
		if st == nil || st.Step != assistant.StepSubmitted {
			return nil
		}

		fresh := assistant.NewConvState(st.SessionID)
		fresh.AIEnabled = st.AIEnabled
		fresh.StreamEnabled = st.StreamEnabled
		return states.Set(ctx, p.UserID, &fresh)
	}
}

// handleRequestSubmitted marks the audit session for a submitted request.
func handleRequestSubmitted(sessions chatlogRepo.SessionRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.RequestSubmittedPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return err
		}

		if err := sessions.UpdateSession(ctx, p.SessionID, models.SessionSubmitted); err != nil {
			utils.GetLogger().Warn("submitted session status update failed",
				zap.String("sessionId", p.SessionID), zap.Error(err))
			return err
		}
		utils.GetLogger().Info("request submitted",
			zap.String("requestId", p.RequestID),
			zap.String("userId", p.UserID),
		)
		return nil
	}
}

// InitCatalogRefresh schedules periodic catalog snapshot reloads. The
// schedule comes from CATALOG_REFRESH_CRON; a running session keeps whatever
// snapshot it matched against until its next turn.
func InitCatalogRefresh(holder *assistant.CatalogHolder) *cronv3.Cron {
	c := cronv3.New()
	spec := config.AppConfig.CatalogRefreshCron

	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := holder.Refresh(ctx); err != nil {
			utils.GetLogger().Warn("scheduled catalog refresh failed", zap.Error(err))
		}
	}); err != nil {
		utils.GetLogger().Error("invalid catalog refresh schedule",
			zap.String("spec", spec), zap.Error(err))
		return c
	}

	c.Start()
	return c
}

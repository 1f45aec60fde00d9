package chatlogRepo

import (
	"context"

	"matero/database"
	"matero/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SessionRepository persists assistant conversations as an audit trail.
// It is best-effort from the dialogue's perspective; callers swallow errors.
type SessionRepository interface {
	StartSession(ctx context.Context, userID string) (string, error)
	SaveMessage(ctx context.Context, sessionID string, msg models.SessionMessage) error
	UpdateSession(ctx context.Context, sessionID string, status string) error
	GetMessages(ctx context.Context, sessionID string) ([]models.SessionMessage, error)
}

type mongoSessionRepo struct {
	sessions *mongo.Collection
	messages *mongo.Collection
}

// NewMongoSessionRepo returns a new SessionRepository instance using MongoDB.
func NewMongoSessionRepo() SessionRepository {
	db := database.MongoClient.Database("matero")
	return &mongoSessionRepo{
		sessions: db.Collection("chat_sessions"),
		messages: db.Collection("chat_messages"),
	}
}

package chatlogRepo

import (
	"context"
	"time"

	"matero/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StartSession creates a new active chat session for the user and returns its ID.
func (r *mongoSessionRepo) StartSession(ctx context.Context, userID string) (string, error) {
	session := models.ChatSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    models.SessionActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := r.sessions.InsertOne(ctx, session); err != nil {
		return "", err
	}
	return session.ID, nil
}

// SaveMessage appends one turn to the session log.
func (r *mongoSessionRepo) SaveMessage(ctx context.Context, sessionID string, msg models.SessionMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.SessionID = sessionID
	msg.CreatedAt = time.Now()
	_, err := r.messages.InsertOne(ctx, msg)
	return err
}

// UpdateSession sets the session status.
func (r *mongoSessionRepo) UpdateSession(ctx context.Context, sessionID string, status string) error {
	_, err := r.sessions.UpdateOne(ctx,
		bson.M{"id": sessionID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	return err
}

// GetMessages returns a session's logged turns in insertion order.
func (r *mongoSessionRepo) GetMessages(ctx context.Context, sessionID string) ([]models.SessionMessage, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.messages.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []models.SessionMessage
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

package requestRepo

import (
	"context"
	"time"

	"matero/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new submitted request and returns its ID.
func (r *mongoRequestRepo) Create(ctx context.Context, req models.MaterialRequest) (string, error) {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.Status == "" {
		req.Status = "pending"
	}
	req.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return "", err
	}
	return req.ID, nil
}

// GetByID returns a submitted request by its ID.
func (r *mongoRequestRepo) GetByID(ctx context.Context, id string) (*models.MaterialRequest, error) {
	var req models.MaterialRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// GetBySubmitter fetches all requests submitted by a specific user.
func (r *mongoRequestRepo) GetBySubmitter(ctx context.Context, userID string) ([]models.MaterialRequest, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"submitter.userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reqs []models.MaterialRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

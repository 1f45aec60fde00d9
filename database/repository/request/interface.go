package requestRepo

import (
	"context"

	"matero/database"
	"matero/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RequestRepository is the submission sink for finished material requests.
type RequestRepository interface {
	Create(ctx context.Context, req models.MaterialRequest) (string, error)
	GetByID(ctx context.Context, id string) (*models.MaterialRequest, error)
	GetBySubmitter(ctx context.Context, userID string) ([]models.MaterialRequest, error)
}

type mongoRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoRequestRepo returns a new RequestRepository instance using MongoDB.
func NewMongoRequestRepo() RequestRepository {
	db := database.MongoClient.Database("matero")
	return &mongoRequestRepo{
		coll: db.Collection("material_requests"),
	}
}

package catalogRepo

import (
	"context"

	"matero/database"
	"matero/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository exposes the read-only material catalog and site list.
type CatalogRepository interface {
	FetchMaterials(ctx context.Context) ([]models.MaterialRef, error)
	FetchSites(ctx context.Context) ([]string, error)
}

type mongoCatalogRepo struct {
	materials *mongo.Collection
	sites     *mongo.Collection
}

// NewMongoCatalogRepo returns a new CatalogRepository instance using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database("matero")
	return &mongoCatalogRepo{
		materials: db.Collection("materials"),
		sites:     db.Collection("sites"),
	}
}

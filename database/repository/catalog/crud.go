package catalogRepo

import (
	"context"

	"matero/models"

	"go.mongodb.org/mongo-driver/bson"
)

// FetchMaterials returns every catalog material in collection order.
func (r *mongoCatalogRepo) FetchMaterials(ctx context.Context) ([]models.MaterialRef, error) {
	cursor, err := r.materials.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var materials []models.MaterialRef
	if err := cursor.All(ctx, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

// FetchSites returns the known site names.
func (r *mongoCatalogRepo) FetchSites(ctx context.Context) ([]string, error) {
	cursor, err := r.sites.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sites []models.Site
	if err := cursor.All(ctx, &sites); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(sites))
	for _, s := range sites {
		names = append(names, s.Name)
	}
	return names, nil
}

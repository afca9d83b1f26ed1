// File: database/repository/business/interface.go
package businessRepo

import (
	"context"

	"hebelki/database"
	"hebelki/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BusinessRepository manages tenant records.
type BusinessRepository interface {
	Create(ctx context.Context, b *models.Business) error
	GetByID(ctx context.Context, id string) (*models.Business, error)
	GetBySlug(ctx context.Context, slug string) (*models.Business, error)
	Update(ctx context.Context, b *models.Business) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Business, error)
	EnsureIndexes() error
}

type mongoBusinessRepo struct {
	coll *mongo.Collection
}

// NewMongoBusinessRepo constructs a Mongo-backed BusinessRepository.
func NewMongoBusinessRepo() BusinessRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoBusinessRepo{coll: db.Collection("businesses")}
}

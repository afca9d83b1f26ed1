// File: database/repository/service/interface.go
package serviceRepo

import (
	"context"

	"hebelki/database"
	"hebelki/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceRepository manages the bookable service catalog of a business.
type ServiceRepository interface {
	Create(ctx context.Context, s *models.Service) error
	GetByID(ctx context.Context, businessID, id string) (*models.Service, error)
	List(ctx context.Context, businessID string, activeOnly bool) ([]models.Service, error)
	UpdateFields(ctx context.Context, businessID, id string, fields map[string]interface{}) (*models.Service, error)
	Archive(ctx context.Context, businessID, id string) error
	EnsureIndexes() error
}

type mongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo constructs a Mongo-backed ServiceRepository.
func NewMongoServiceRepo() ServiceRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoServiceRepo{coll: db.Collection("services")}
}

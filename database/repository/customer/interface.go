// File: database/repository/customer/interface.go
package customerRepo

import (
	"context"

	"hebelki/database"
	"hebelki/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CustomerRepository manages customer records of a business.
type CustomerRepository interface {
	Create(ctx context.Context, c *models.Customer) error
	GetByID(ctx context.Context, businessID, id string) (*models.Customer, error)
	GetByEmail(ctx context.Context, businessID, email string) (*models.Customer, error)
	List(ctx context.Context, businessID string, limit int64) ([]models.Customer, error)
	Search(ctx context.Context, businessID, query string, limit int64) ([]models.Customer, error)
	UpdateFields(ctx context.Context, businessID, id string, fields map[string]interface{}) (*models.Customer, error)
	AddNote(ctx context.Context, businessID, id string, note models.CustomerNote) error
	MarkDeletionRequested(ctx context.Context, businessID, email string) (*models.Customer, error)
	Anonymize(ctx context.Context, businessID, id string) (*models.Customer, error)
	EnsureIndexes() error
}

type mongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo constructs a Mongo-backed CustomerRepository.
func NewMongoCustomerRepo() CustomerRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoCustomerRepo{coll: db.Collection("customers")}
}

// File: database/repository/staff/interface.go
package staffRepo

import (
	"context"

	"hebelki/database"
	"hebelki/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// StaffRepository manages staff member records, including auth material and
// per-member capability whitelists.
type StaffRepository interface {
	Create(ctx context.Context, s *models.Staff) error
	GetByID(ctx context.Context, businessID, id string) (*models.Staff, error)
	GetByEmail(ctx context.Context, businessID, email string) (*models.Staff, error)
	List(ctx context.Context, businessID string, activeOnly bool) ([]models.Staff, error)
	ListQualified(ctx context.Context, businessID, serviceID string) ([]models.Staff, error)
	UpdateFields(ctx context.Context, businessID, id string, fields map[string]interface{}) (*models.Staff, error)
	SetAllowedTools(ctx context.Context, businessID, id string, tools []string) error
	SetTokenHash(ctx context.Context, businessID, id, tokenHash string) error
	EnsureIndexes() error
}

type mongoStaffRepo struct {
	coll *mongo.Collection
}

// NewMongoStaffRepo constructs a Mongo-backed StaffRepository.
func NewMongoStaffRepo() StaffRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoStaffRepo{coll: db.Collection("staff")}
}

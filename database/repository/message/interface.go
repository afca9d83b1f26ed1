// File: database/repository/message/interface.go
package messageRepo

import (
	"context"

	"hebelki/database"
	"hebelki/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// MessageRepository logs outbound customer messages for audit and history.
type MessageRepository interface {
	Create(ctx context.Context, m *models.MessageRecord) error
	ListByCustomer(ctx context.Context, businessID, customerID string, limit int64) ([]models.MessageRecord, error)
	EnsureIndexes() error
}

type mongoMessageRepo struct {
	coll *mongo.Collection
}

// NewMongoMessageRepo constructs a Mongo-backed MessageRepository.
func NewMongoMessageRepo() MessageRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoMessageRepo{coll: db.Collection("messages")}
}

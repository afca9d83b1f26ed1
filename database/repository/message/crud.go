// File: database/repository/message/crud.go
package messageRepo

import (
	"context"
	"fmt"
	"time"

	"hebelki/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoMessageRepo) Create(ctx context.Context, m *models.MessageRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.SentAt.IsZero() {
		m.SentAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to insert message record: %w", err)
	}
	return nil
}

func (r *mongoMessageRepo) ListByCustomer(ctx context.Context, businessID, customerID string, limit int64) ([]models.MessageRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx,
		bson.M{"businessId": businessID, "customerId": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.MessageRecord
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode message list: %w", err)
	}
	return messages, nil
}

// EnsureIndexes creates the necessary indexes on the messages collection.
func (r *mongoMessageRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "customerId", Value: 1}, {Key: "sentAt", Value: -1}},
			Options: options.Index().SetName("business_customer_sent_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}

// FILE: database/repository/invoice/indexes.go
package invoiceRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the invoices collection.
func (r *mongoInvoiceRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_business_number"),
		},
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "status", Value: 1}, {Key: "dueAt", Value: 1}},
			Options: options.Index().SetName("business_status_due_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create invoice indexes: %w", err)
	}

	counterIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_business_counter"),
		},
	}
	if _, err := r.counterColl.Indexes().CreateMany(ctx, counterIndexes); err != nil {
		return fmt.Errorf("failed to create invoice counter indexes: %w", err)
	}
	return nil
}

// File: database/repository/invoice/crud.go
package invoiceRepo

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

func (r *mongoInvoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, inv); err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	return nil
}

func (r *mongoInvoiceRepo) GetByID(ctx context.Context, businessID, id string) (*models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var inv models.Invoice
	err := r.coll.FindOne(ctx, bson.M{"businessId": businessID, "id": id}).Decode(&inv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", id, err)
	}
	return &inv, nil
}

func (r *mongoInvoiceRepo) List(ctx context.Context, businessID string, status models.InvoiceStatus, customerID string, limit int64) ([]models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"businessId": businessID}
	if status != "" {
		filter["status"] = status
	}
	if customerID != "" {
		filter["customerId"] = customerID
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "issuedAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer cursor.Close(ctx)

	var invoices []models.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, fmt.Errorf("failed to decode invoice list: %w", err)
	}
	return invoices, nil
}

// UpdateFields applies a partial update and returns the fresh document.
func (r *mongoInvoiceRepo) UpdateFields(ctx context.Context, businessID, id string, fields map[string]interface{}) (*models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var inv models.Invoice
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"businessId": businessID, "id": id},
		bson.M{"$set": set}, opts).Decode(&inv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to patch invoice %s: %w", id, err)
	}
	return &inv, nil
}

// NextNumber allocates the next sequential invoice number for a business via
// an atomic counter increment.
func (r *mongoInvoiceRepo) NextNumber(ctx context.Context, businessID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counterColl.FindOneAndUpdate(ctx,
		bson.M{"businessId": businessID},
		bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&counter)
	if err != nil {
		return "", fmt.Errorf("failed to allocate invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%06d", counter.Seq), nil
}

// MarkOverdue flips sent invoices past their due date to overdue, across all
// businesses. Run by the cron worker.
func (r *mongoInvoiceRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"status": models.InvoiceSent, "dueAt": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"status": models.InvoiceOverdue, "updatedAt": now}})
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", err)
	}
	return res.ModifiedCount, nil
}

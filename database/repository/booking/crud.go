// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"hebelki/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBookingRepo) GetByID(ctx context.Context, businessID, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	err := r.bookingColl.FindOne(ctx, bson.M{"businessId": businessID, "id": id}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &b, nil
}

func (r *mongoBookingRepo) GetByIdempotencyKey(ctx context.Context, businessID, key string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	err := r.bookingColl.FindOne(ctx, bson.M{"businessId": businessID, "idempotencyKey": key}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking by idempotency key: %w", err)
	}
	return &b, nil
}

// UpdateFields applies a partial update and returns the fresh document.
func (r *mongoBookingRepo) UpdateFields(ctx context.Context, businessID, id string, fields map[string]interface{}) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Booking
	err := r.bookingColl.FindOneAndUpdate(ctx,
		bson.M{"businessId": businessID, "id": id},
		bson.M{"$set": set}, opts).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to patch booking %s: %w", id, err)
	}
	return &b, nil
}

// PushNote appends free text to the customer-visible or internal note field.
// Notes are newline-joined rather than stored as an array so the agent can
// echo them back verbatim.
func (r *mongoBookingRepo) PushNote(ctx context.Context, businessID, id, note string, internal bool) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	field := "notes"
	if internal {
		field = "internalNotes"
	}

	var b models.Booking
	if err := r.bookingColl.FindOne(ctx, bson.M{"businessId": businessID, "id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}

	existing := b.Notes
	if internal {
		existing = b.InternalNotes
	}
	if existing != "" {
		note = existing + "\n" + note
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.bookingColl.FindOneAndUpdate(ctx,
		bson.M{"businessId": businessID, "id": id},
		bson.M{"$set": bson.M{field: note, "updatedAt": time.Now()}},
		opts).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to append booking note: %w", err)
	}
	return &b, nil
}

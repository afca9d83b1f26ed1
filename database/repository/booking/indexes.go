// FILE: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes on bookings, holds, booking_actions and
// slot_guards. The partial unique index on idempotencyKey is what turns a
// retried confirm into a fetch of the existing booking; the TTL index on
// holds is storage hygiene only, every conflict check filters on expiresAt
// itself.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	bookingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "staffId", Value: 1}, {Key: "startsAt", Value: 1}},
			Options: options.Index().SetName("business_staff_starts_idx"),
		},
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "startsAt", Value: 1}},
			Options: options.Index().SetName("business_starts_idx"),
		},
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "customerId", Value: 1}, {Key: "startsAt", Value: -1}},
			Options: options.Index().SetName("business_customer_idx"),
		},
		{
			Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "idempotencyKey", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_idempotency_key").
				SetPartialFilterExpression(bson.M{"idempotencyKey": bson.M{"$exists": true}}),
		},
	}
	if _, err := r.bookingColl.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	holdIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "staffId", Value: 1}, {Key: "startsAt", Value: 1}},
			Options: options.Index().SetName("business_staff_starts_idx"),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("hold_ttl_idx"),
		},
	}
	if _, err := r.holdColl.Indexes().CreateMany(ctx, holdIndexes); err != nil {
		return fmt.Errorf("failed to create hold indexes: %w", err)
	}

	actionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "bookingId", Value: 1}, {Key: "at", Value: 1}},
			Options: options.Index().SetName("business_booking_at_idx"),
		},
	}
	if _, err := r.actionColl.Indexes().CreateMany(ctx, actionIndexes); err != nil {
		return fmt.Errorf("failed to create booking action indexes: %w", err)
	}

	guardIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "staffId", Value: 1}, {Key: "day", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_slot_guard"),
		},
	}
	if _, err := r.guardColl.Indexes().CreateMany(ctx, guardIndexes); err != nil {
		return fmt.Errorf("failed to create slot guard indexes: %w", err)
	}

	return nil
}

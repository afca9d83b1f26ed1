// File: database/repository/booking/actions.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"hebelki/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AppendAction records one audit row. Rows are append-only; nothing in the
// codebase updates or deletes them.
func (r *mongoBookingRepo) AppendAction(ctx context.Context, a *models.BookingAction) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.actionColl.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to append booking action: %w", err)
	}
	return nil
}

func (r *mongoBookingRepo) ListActions(ctx context.Context, businessID, bookingID string) ([]models.BookingAction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "at", Value: 1}})
	cursor, err := r.actionColl.Find(ctx,
		bson.M{"businessId": businessID, "bookingId": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking actions: %w", err)
	}
	defer cursor.Close(ctx)

	var actions []models.BookingAction
	if err := cursor.All(ctx, &actions); err != nil {
		return nil, fmt.Errorf("failed to decode booking actions: %w", err)
	}
	return actions, nil
}

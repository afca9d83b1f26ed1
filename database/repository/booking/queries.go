// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"hebelki/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBookingRepo) Search(ctx context.Context, q BookingQuery) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"businessId": q.BusinessID}
	if q.CustomerID != "" {
		filter["customerId"] = q.CustomerID
	}
	if q.StaffID != "" {
		filter["staffId"] = q.StaffID
	}
	if q.ServiceID != "" {
		filter["serviceId"] = q.ServiceID
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	window := bson.M{}
	if !q.From.IsZero() {
		window["$gte"] = q.From
	}
	if !q.To.IsZero() {
		window["$lt"] = q.To
	}
	if len(window) > 0 {
		filter["startsAt"] = window
	}

	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}}).SetLimit(limit)
	cursor, err := r.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode booking search: %w", err)
	}
	return bookings, nil
}

// ListBetween returns bookings overlapping the half-open window [from, to),
// for one staff member or, with staffID empty, the whole business.
func (r *mongoBookingRepo) ListBetween(ctx context.Context, businessID, staffID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"businessId": businessID,
		"startsAt":   bson.M{"$lt": to},
		"endsAt":     bson.M{"$gt": from},
	}
	if staffID != "" {
		filter["staffId"] = staffID
	}

	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}})
	cursor, err := r.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings in window: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode booking window: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) ListByCustomer(ctx context.Context, businessID, customerID string, limit int64) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.bookingColl.Find(ctx,
		bson.M{"businessId": businessID, "customerId": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode customer bookings: %w", err)
	}
	return bookings, nil
}

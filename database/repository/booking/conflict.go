// File: database/repository/booking/conflict.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"hebelki/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Two half-open intervals [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.
// Back-to-back bookings (e1 == s2) therefore never conflict. Cancelled
// bookings release their slot; holds count only while expiresAt is still in
// the future.

func bookingOverlapFilter(businessID, staffID string, startsAt, endsAt time.Time, excludeID string) bson.M {
	filter := bson.M{
		"businessId": businessID,
		"staffId":    staffID,
		"status":     bson.M{"$ne": models.BookingCancelled},
		"startsAt":   bson.M{"$lt": endsAt},
		"endsAt":     bson.M{"$gt": startsAt},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

func holdOverlapFilter(businessID, staffID string, startsAt, endsAt, now time.Time, excludeHoldID string) bson.M {
	filter := bson.M{
		"businessId": businessID,
		"staffId":    staffID,
		"expiresAt":  bson.M{"$gt": now},
		"startsAt":   bson.M{"$lt": endsAt},
		"endsAt":     bson.M{"$gt": startsAt},
	}
	if excludeHoldID != "" {
		filter["id"] = bson.M{"$ne": excludeHoldID}
	}
	return filter
}

// countOverlappingBookings runs on the caller's context so it stays inside a
// session when invoked from a transaction.
func (r *mongoBookingRepo) countOverlappingBookings(ctx context.Context, businessID, staffID string, startsAt, endsAt time.Time, excludeID string) (int64, error) {
	n, err := r.bookingColl.CountDocuments(ctx, bookingOverlapFilter(businessID, staffID, startsAt, endsAt, excludeID))
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}
	return n, nil
}

func (r *mongoBookingRepo) countOverlappingHolds(ctx context.Context, businessID, staffID string, startsAt, endsAt, now time.Time, excludeHoldID string) (int64, error) {
	n, err := r.holdColl.CountDocuments(ctx, holdOverlapFilter(businessID, staffID, startsAt, endsAt, now, excludeHoldID))
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping holds: %w", err)
	}
	return n, nil
}

func (r *mongoBookingRepo) CountOverlappingBookings(ctx context.Context, businessID, staffID string, startsAt, endsAt time.Time, excludeID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.countOverlappingBookings(ctx, businessID, staffID, startsAt, endsAt, excludeID)
}

func (r *mongoBookingRepo) CountOverlappingHolds(ctx context.Context, businessID, staffID string, startsAt, endsAt, now time.Time, excludeHoldID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.countOverlappingHolds(ctx, businessID, staffID, startsAt, endsAt, now, excludeHoldID)
}

// File: database/repository/booking/holds.go
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

func (r *mongoBookingRepo) GetHold(ctx context.Context, businessID, holdID string) (*models.Hold, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var h models.Hold
	err := r.holdColl.FindOne(ctx, bson.M{"businessId": businessID, "id": holdID}).Decode(&h)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch hold %s: %w", holdID, err)
	}
	return &h, nil
}

// ListLiveHolds returns unexpired holds overlapping [from, to) for one staff
// member or, with staffID empty, the whole business.
func (r *mongoBookingRepo) ListLiveHolds(ctx context.Context, businessID, staffID string, from, to, now time.Time) ([]models.Hold, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"businessId": businessID,
		"expiresAt":  bson.M{"$gt": now},
		"startsAt":   bson.M{"$lt": to},
		"endsAt":     bson.M{"$gt": from},
	}
	if staffID != "" {
		filter["staffId"] = staffID
	}

	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}})
	cursor, err := r.holdColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list live holds: %w", err)
	}
	defer cursor.Close(ctx)

	var holds []models.Hold
	if err := cursor.All(ctx, &holds); err != nil {
		return nil, fmt.Errorf("failed to decode live holds: %w", err)
	}
	return holds, nil
}

// DeleteExpiredHolds sweeps stale hold documents across all businesses. The
// TTL index does the same job eventually; this keeps the collection tight and
// gives the cron worker a count to log. Conflict checks never rely on either:
// they always filter on expiresAt themselves.
func (r *mongoBookingRepo) DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.holdColl.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lte": now}})
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired holds: %w", err)
	}
	return res.DeletedCount, nil
}

package staffRepo

import (
	"context"
	"fmt"
	"time"

	"hebelki/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoStaffRepo) List(ctx context.Context, businessID string, activeOnly bool) ([]models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"businessId": businessID}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.Staff
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode staff list: %w", err)
	}
	return members, nil
}

// ListQualified returns active members qualified for the service, in stable
// (name, id) order. Auto-assignment walks this list and picks the first
// conflict-free member, so the order matters.
func (r *mongoStaffRepo) ListQualified(ctx context.Context, businessID, serviceID string) ([]models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"businessId": businessID,
		"active":     true,
		"serviceIds": serviceID,
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list qualified staff: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.Staff
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode qualified staff: %w", err)
	}
	return members, nil
}

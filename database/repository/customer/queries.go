package customerRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"hebelki/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoCustomerRepo) List(ctx context.Context, businessID string, limit int64) ([]models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"businessId": businessID, "deletedAt": bson.M{"$exists": false}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customer list: %w", err)
	}
	return customers, nil
}

// Search does a case-insensitive prefix/substring match over name, email and
// phone.
func (r *mongoCustomerRepo) Search(ctx context.Context, businessID, query string, limit int64) ([]models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 200 {
		limit = 25
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"businessId": businessID,
		"deletedAt":  bson.M{"$exists": false},
		"$or": []bson.M{
			{"name": pattern},
			{"email": pattern},
			{"phone": pattern},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customer search: %w", err)
	}
	return customers, nil
}

package serviceRepo

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

func (r *mongoServiceRepo) Create(ctx context.Context, s *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to insert service: %w", err)
	}
	return nil
}

func (r *mongoServiceRepo) GetByID(ctx context.Context, businessID, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.Service
	err := r.coll.FindOne(ctx, bson.M{"businessId": businessID, "id": id}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &s, nil
}

func (r *mongoServiceRepo) List(ctx context.Context, businessID string, activeOnly bool) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"businessId": businessID}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode service list: %w", err)
	}
	return services, nil
}

// UpdateFields applies a partial update and returns the fresh document.
func (r *mongoServiceRepo) UpdateFields(ctx context.Context, businessID, id string, fields map[string]interface{}) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var s models.Service
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"businessId": businessID, "id": id},
		bson.M{"$set": set}, opts).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to patch service %s: %w", id, err)
	}
	return &s, nil
}

// Archive deactivates a service; existing bookings keep referencing it.
func (r *mongoServiceRepo) Archive(ctx context.Context, businessID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"businessId": businessID, "id": id},
		bson.M{"$set": bson.M{"active": false, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to archive service %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

package staffRepo

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

func (r *mongoStaffRepo) Create(ctx context.Context, s *models.Staff) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to insert staff member: %w", err)
	}
	return nil
}

func (r *mongoStaffRepo) GetByID(ctx context.Context, businessID, id string) (*models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.Staff
	err := r.coll.FindOne(ctx, bson.M{"businessId": businessID, "id": id}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch staff member %s: %w", id, err)
	}
	return &s, nil
}

func (r *mongoStaffRepo) GetByEmail(ctx context.Context, businessID, email string) (*models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.Staff
	err := r.coll.FindOne(ctx, bson.M{"businessId": businessID, "email": email}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch staff member by email: %w", err)
	}
	return &s, nil
}

// UpdateFields applies a partial update and returns the fresh document.
func (r *mongoStaffRepo) UpdateFields(ctx context.Context, businessID, id string, fields map[string]interface{}) (*models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var s models.Staff
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"businessId": businessID, "id": id},
		bson.M{"$set": set}, opts).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to patch staff member %s: %w", id, err)
	}
	return &s, nil
}

// SetAllowedTools replaces the member's capability whitelist. An empty slice
// clears the override so the tier default applies again.
func (r *mongoStaffRepo) SetAllowedTools(ctx context.Context, businessID, id string, tools []string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var update bson.M
	if len(tools) == 0 {
		update = bson.M{"$unset": bson.M{"allowedTools": ""}, "$set": bson.M{"updatedAt": time.Now()}}
	} else {
		update = bson.M{"$set": bson.M{"allowedTools": tools, "updatedAt": time.Now()}}
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"businessId": businessID, "id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set allowed tools for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoStaffRepo) SetTokenHash(ctx context.Context, businessID, id, tokenHash string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"businessId": businessID, "id": id},
		bson.M{"$set": bson.M{"tokenHash": tokenHash, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to store token hash for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

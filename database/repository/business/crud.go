package businessRepo

import (
	"context"
	"fmt"
	"time"

	"hebelki/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBusinessRepo) Create(ctx context.Context, b *models.Business) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to insert business: %w", err)
	}
	return nil
}

func (r *mongoBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Business
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch business %s: %w", id, err)
	}
	return &b, nil
}

func (r *mongoBusinessRepo) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Business
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch business by slug %s: %w", slug, err)
	}
	return &b, nil
}

func (r *mongoBusinessRepo) Update(ctx context.Context, b *models.Business) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	b.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": b.ID}, b)
	if err != nil {
		return fmt.Errorf("failed to update business %s: %w", b.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateFields applies a partial update and returns the fresh document.
func (r *mongoBusinessRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Business
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to patch business %s: %w", id, err)
	}
	return &b, nil
}

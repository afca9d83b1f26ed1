package customerRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hebelki/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoCustomerRepo) Create(ctx context.Context, c *models.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

func (r *mongoCustomerRepo) GetByID(ctx context.Context, businessID, id string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c models.Customer
	err := r.coll.FindOne(ctx, bson.M{"businessId": businessID, "id": id}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch customer %s: %w", id, err)
	}
	return &c, nil
}

func (r *mongoCustomerRepo) GetByEmail(ctx context.Context, businessID, email string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c models.Customer
	err := r.coll.FindOne(ctx, bson.M{
		"businessId": businessID,
		"email":      strings.ToLower(strings.TrimSpace(email)),
	}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch customer by email: %w", err)
	}
	return &c, nil
}

// UpdateFields applies a partial update and returns the fresh document.
func (r *mongoCustomerRepo) UpdateFields(ctx context.Context, businessID, id string, fields map[string]interface{}) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		if k == "email" {
			if s, ok := v.(string); ok {
				v = strings.ToLower(strings.TrimSpace(s))
			}
		}
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Customer
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"businessId": businessID, "id": id},
		bson.M{"$set": set}, opts).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to patch customer %s: %w", id, err)
	}
	return &c, nil
}

func (r *mongoCustomerRepo) AddNote(ctx context.Context, businessID, id string, note models.CustomerNote) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"businessId": businessID, "id": id},
		bson.M{
			"$push": bson.M{"notes": note},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("failed to add customer note: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkDeletionRequested flags the customer identified by email; returns nil
// when no such customer exists (the caller decides how to respond).
func (r *mongoCustomerRepo) MarkDeletionRequested(ctx context.Context, businessID, email string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Customer
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"businessId": businessID, "email": strings.ToLower(strings.TrimSpace(email))},
		bson.M{"$set": bson.M{"deletionRequestedAt": time.Now(), "updatedAt": time.Now()}},
		opts).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to mark deletion request: %w", err)
	}
	return &c, nil
}

// Anonymize blanks personal fields in place. The record itself survives so
// booking history and revenue reports stay consistent.
func (r *mongoCustomerRepo) Anonymize(ctx context.Context, businessID, id string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Customer
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"businessId": businessID, "id": id},
		bson.M{"$set": bson.M{
			"name":      "Deleted Customer",
			"email":     fmt.Sprintf("deleted+%s@invalid", id),
			"phone":     "",
			"notes":     []models.CustomerNote{},
			"deletedAt": now,
			"updatedAt": now,
		}}, opts).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to anonymize customer %s: %w", id, err)
	}
	return &c, nil
}

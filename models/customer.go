package models

import "time"

// CustomerNote is a dated free-form annotation on a customer record.
type CustomerNote struct {
	Text     string    `bson:"text" json:"text"`
	AuthorID string    `bson:"authorId,omitempty" json:"authorId,omitempty"`
	At       time.Time `bson:"at" json:"at"`
}

// Customer is a person who books with a business. Email is the natural key
// within a business; confirm upserts by it.
type Customer struct {
	ID         string         `bson:"id" json:"id"`
	BusinessID string         `bson:"businessId" json:"businessId"`
	Name       string         `bson:"name" json:"name"`
	Email      string         `bson:"email" json:"email"`
	Phone      string         `bson:"phone,omitempty" json:"phone,omitempty"`
	Notes      []CustomerNote `bson:"notes,omitempty" json:"notes,omitempty"`

	// DeletionRequestedAt is set when the customer asks for their data to be
	// removed; DeletedAt when an owner executes the request (record is
	// anonymized, not dropped, to keep booking history consistent).
	DeletionRequestedAt *time.Time `bson:"deletionRequestedAt,omitempty" json:"deletionRequestedAt,omitempty"`
	DeletedAt           *time.Time `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

package models

import "time"

// Service is a bookable offering of a business.
type Service struct {
	ID          string `bson:"id" json:"id"`
	BusinessID  string `bson:"businessId" json:"businessId"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	// DurationMinutes is the appointment length; BufferMinutes is cleanup or
	// travel time appended to the reserved interval.
	DurationMinutes int `bson:"durationMinutes" json:"durationMinutes"`
	BufferMinutes   int `bson:"bufferMinutes" json:"bufferMinutes"`

	Price     float64   `bson:"price" json:"price"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SlotLength is the total interval a booking of this service reserves.
func (s *Service) SlotLength() time.Duration {
	return time.Duration(s.DurationMinutes+s.BufferMinutes) * time.Minute
}

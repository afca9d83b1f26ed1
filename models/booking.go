package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	BookingNoShow    BookingStatus = "no_show"
)

// ValidBookingStatus reports whether s is one of the known lifecycle states.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted, BookingNoShow:
		return true
	}
	return false
}

// BookingSource records which entry point created a booking.
type BookingSource string

const (
	SourceAgent BookingSource = "agent" // conversational agent confirm path
	SourceAPI   BookingSource = "api"   // public HTTP hold/confirm boundary
	SourceAdmin BookingSource = "admin" // staff/owner direct creation
)

// Booking is a durable reservation of a service/staff/time slot.
// Intervals are half-open [StartsAt, EndsAt): back-to-back bookings do not
// conflict.
type Booking struct {
	ID         string `bson:"id" json:"id"`
	BusinessID string `bson:"businessId" json:"businessId"`
	ServiceID  string `bson:"serviceId" json:"serviceId"`
	// StaffID is empty for business-level resources (no particular member).
	// Stored even when empty so conflict filters can match the bucket by
	// equality.
	StaffID    string `bson:"staffId" json:"staffId,omitempty"`
	CustomerID string `bson:"customerId,omitempty" json:"customerId,omitempty"`

	// Denormalized display names; authoritative records live in their own
	// collections.
	ServiceName  string `bson:"serviceName,omitempty" json:"serviceName,omitempty"`
	CustomerName string `bson:"customerName,omitempty" json:"customerName,omitempty"`

	StartsAt time.Time     `bson:"startsAt" json:"startsAt"`
	EndsAt   time.Time     `bson:"endsAt" json:"endsAt"`
	Status   BookingStatus `bson:"status" json:"status"`

	ConfirmationToken string        `bson:"confirmationToken,omitempty" json:"confirmationToken,omitempty"`
	Price             float64       `bson:"price" json:"price"`
	Notes             string        `bson:"notes,omitempty" json:"notes,omitempty"`
	InternalNotes     string        `bson:"internalNotes,omitempty" json:"-"`
	Source            BookingSource `bson:"source" json:"source"`

	// IdempotencyKey makes a retried confirm return the already-created
	// booking instead of inserting a duplicate. Unique per business.
	IdempotencyKey string `bson:"idempotencyKey,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

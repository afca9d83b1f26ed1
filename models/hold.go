package models

import "time"

// Hold is a time-boxed provisional reservation of a slot, not yet a booking.
// It is created by the reservation manager, consumed exactly once by confirm,
// and never mutated otherwise. A hold past ExpiresAt is treated as released
// by every subsequent conflict check; a Mongo TTL index eventually removes
// the document (storage hygiene only, never correctness).
type Hold struct {
	ID         string `bson:"id" json:"holdId"`
	BusinessID string `bson:"businessId" json:"businessId"`
	ServiceID  string `bson:"serviceId" json:"serviceId"`
	// StaffID is the resolved member (auto-assigned when the caller omitted
	// one); empty for business-level resources. Stored even when empty so
	// conflict filters can match the bucket by equality.
	StaffID string `bson:"staffId" json:"staffId,omitempty"`

	StartsAt  time.Time `bson:"startsAt" json:"startsAt"`
	EndsAt    time.Time `bson:"endsAt" json:"endsAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
}

// Expired reports whether the hold is past its TTL at the given instant.
func (h *Hold) Expired(now time.Time) bool {
	return now.After(h.ExpiresAt)
}

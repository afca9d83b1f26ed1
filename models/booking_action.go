package models

import "time"

// BookingActionType names an audited booking transition.
type BookingActionType string

const (
	ActionCreated       BookingActionType = "created"
	ActionConfirmed     BookingActionType = "confirmed"
	ActionRescheduled   BookingActionType = "rescheduled"
	ActionCancelled     BookingActionType = "cancelled"
	ActionStatusChanged BookingActionType = "status_changed"
	ActionNoted         BookingActionType = "noted"
)

// BookingAction is one append-only audit row. Every status transition on a
// booking is recorded with the acting identity; rows are never updated.
type BookingAction struct {
	ID         string            `bson:"id" json:"id"`
	BusinessID string            `bson:"businessId" json:"businessId"`
	BookingID  string            `bson:"bookingId" json:"bookingId"`
	Action     BookingActionType `bson:"action" json:"action"`
	ActorType  ActorType         `bson:"actorType" json:"actorType"`
	ActorID    string            `bson:"actorId,omitempty" json:"actorId,omitempty"`
	Metadata   map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	At         time.Time         `bson:"at" json:"at"`
}

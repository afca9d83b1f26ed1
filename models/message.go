package models

import "time"

// MessageChannel is the delivery channel of an outbound customer message.
type MessageChannel string

const (
	ChannelEmail    MessageChannel = "email"
	ChannelWhatsApp MessageChannel = "whatsapp"
)

// MessageRecord logs one outbound customer message. Transport internals are
// external collaborators; this record is what the platform itself owns.
type MessageRecord struct {
	ID         string         `bson:"id" json:"id"`
	BusinessID string         `bson:"businessId" json:"businessId"`
	CustomerID string         `bson:"customerId,omitempty" json:"customerId,omitempty"`
	Channel    MessageChannel `bson:"channel" json:"channel"`
	To         string         `bson:"to" json:"to"`
	Subject    string         `bson:"subject,omitempty" json:"subject,omitempty"`
	Body       string         `bson:"body" json:"body"`
	Status     string         `bson:"status" json:"status"` // "sent" or "failed"
	Error      string         `bson:"error,omitempty" json:"error,omitempty"`
	SentAt     time.Time      `bson:"sentAt" json:"sentAt"`
}

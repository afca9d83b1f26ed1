package models

import "time"

// DayHours is an open/close range for one weekday, "HH:MM" 24h clock in the
// business timezone. A zero value means closed that day.
type DayHours struct {
	Open  string `bson:"open" json:"open"`
	Close string `bson:"close" json:"close"`
}

// NotificationSettings controls which outbound customer messages a business
// has enabled.
type NotificationSettings struct {
	SendConfirmations bool `bson:"sendConfirmations" json:"sendConfirmations"`
	SendReminders     bool `bson:"sendReminders" json:"sendReminders"`
	ReminderLeadHours int  `bson:"reminderLeadHours" json:"reminderLeadHours"` // hours before startsAt
}

// Business is a tenant of the platform.
type Business struct {
	ID            string               `bson:"id" json:"id"`
	Slug          string               `bson:"slug" json:"slug"` // URL key, unique
	Name          string               `bson:"name" json:"name"`
	Description   string               `bson:"description,omitempty" json:"description,omitempty"`
	Timezone      string               `bson:"timezone" json:"timezone"` // IANA name, e.g. "Europe/Berlin"
	Currency      string               `bson:"currency" json:"currency"` // ISO 4217, e.g. "EUR"
	OwnerEmail    string               `bson:"ownerEmail" json:"ownerEmail"`
	Phone         string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Address       string               `bson:"address,omitempty" json:"address,omitempty"`
	Hours         map[string]DayHours  `bson:"hours" json:"hours"` // keyed "monday".."sunday"
	Notifications NotificationSettings `bson:"notifications" json:"notifications"`
	TaxRate       float64              `bson:"taxRate" json:"taxRate"` // fraction, e.g. 0.19
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Location resolves the tenant's IANA timezone, falling back to UTC when the
// stored name is empty or invalid.
func (b *Business) Location() *time.Location {
	if b.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

package models

import (
	"fmt"
	"time"
)

// IntentState is where a conversation currently sits in the booking flow.
// Purely advisory: it primes the reasoning component's next turn and is never
// consulted for authorization or validation.
type IntentState string

const (
	IntentIdle             IntentState = "idle"
	IntentBrowsingServices IntentState = "browsing_services"
	IntentCheckingSlots    IntentState = "checking_availability"
	IntentHoldActive       IntentState = "hold_active"
)

// ConversationIntent tracks the booking-flow state of one conversation.
// CustomerID is set once a confirm resolved the conversation's customer and
// survives state resets, so later turns keep the actor scoped to them.
type ConversationIntent struct {
	State         IntentState `json:"state"`
	ServiceID     string      `json:"serviceId,omitempty"`
	SelectedDate  string      `json:"selectedDate,omitempty"` // "YYYY-MM-DD"
	HoldID        string      `json:"holdId,omitempty"`
	HoldExpiresAt *time.Time  `json:"holdExpiresAt,omitempty"`
	CustomerID    string      `json:"customerId,omitempty"`
}

// Reminder renders the advisory line injected into the reasoning component's
// next turn, or "" when there is nothing worth surfacing.
func (ci *ConversationIntent) Reminder(now time.Time) string {
	switch ci.State {
	case IntentHoldActive:
		if ci.HoldExpiresAt == nil {
			return "A slot hold is active for this conversation."
		}
		remaining := ci.HoldExpiresAt.Sub(now).Round(time.Second)
		if remaining <= 0 {
			return "The previously created slot hold has expired; availability must be re-checked before confirming."
		}
		return fmt.Sprintf("A slot hold (%s) is active and expires in %s; confirm the booking before then or the slot is released.", ci.HoldID, remaining)
	case IntentCheckingSlots:
		if ci.SelectedDate != "" {
			return fmt.Sprintf("The customer was last checking availability for %s.", ci.SelectedDate)
		}
		return "The customer was last checking availability."
	case IntentBrowsingServices:
		return "The customer was last browsing the service list."
	}
	return ""
}

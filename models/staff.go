package models

import "time"

// StaffRole distinguishes regular staff from the business owner.
type StaffRole string

const (
	RoleStaff StaffRole = "staff"
	RoleOwner StaffRole = "owner"
)

// Staff is a bookable member of a business (and a dashboard identity).
type Staff struct {
	ID         string    `bson:"id" json:"id"`
	BusinessID string    `bson:"businessId" json:"businessId"`
	Name       string    `bson:"name" json:"name"`
	Email      string    `bson:"email" json:"email"`
	Phone      string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Role       StaffRole `bson:"role" json:"role"`

	// ServiceIDs lists the services this member is qualified to perform.
	ServiceIDs []string `bson:"serviceIds" json:"serviceIds"`

	// Hours are the member's working ranges keyed "monday".."sunday";
	// missing days mean not working.
	Hours map[string]DayHours `bson:"hours" json:"hours"`

	// AllowedTools is the optional capability whitelist. Empty means the
	// staff-tier default applies.
	AllowedTools []string `bson:"allowedTools,omitempty" json:"allowedTools,omitempty"`

	PasswordHash string `bson:"passwordHash" json:"-"`
	TokenHash    string `bson:"tokenHash,omitempty" json:"-"`
	FCMToken     string `bson:"fcmToken,omitempty" json:"-"`

	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// QualifiedFor reports whether the member may perform the given service.
func (s *Staff) QualifiedFor(serviceID string) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// Capabilities returns the member's whitelist, or nil when the tier default
// governs.
func (s *Staff) Capabilities() *MemberCapabilities {
	if len(s.AllowedTools) == 0 {
		return nil
	}
	return &MemberCapabilities{AllowedTools: s.AllowedTools}
}

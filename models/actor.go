package models

// ActorType is the trust tier of the identity behind a tool call.
type ActorType string

const (
	ActorCustomer ActorType = "customer"
	ActorStaff    ActorType = "staff"
	ActorOwner    ActorType = "owner"
)

// ActorContext identifies who is behind the current conversation turn.
// It is constructed server-side once per inbound turn and read-only after
// that; nothing in it ever comes from model-controlled input.
type ActorContext struct {
	Type ActorType `json:"actorType"`
	// ActorID is the staff id for staff/owner actors, or a customer id when
	// the conversation has been linked to a known customer.
	ActorID string `json:"actorId,omitempty"`
	// CustomerScopeID restricts a customer-tier actor to their own records
	// when a tool is reused across tiers.
	CustomerScopeID string `json:"customerScopeId,omitempty"`
}

// IsStaffTier reports whether the actor is staff or owner.
func (a ActorContext) IsStaffTier() bool {
	return a.Type == ActorStaff || a.Type == ActorOwner
}

// MemberCapabilities is an optional per-staff-member whitelist narrowing that
// member's tool access below the staff-tier default. It can never grant tools
// above the member's tier.
type MemberCapabilities struct {
	AllowedTools []string `bson:"allowedTools" json:"allowedTools"`
}

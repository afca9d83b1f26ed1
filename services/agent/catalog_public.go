// File: services/agent/catalog_public.go
package agent

// publicTools is the fixed public-safe partition: everything a walk-in
// customer needs to discover the business and book a slot, nothing more.
// Additions go through design review, not configuration.
func publicTools(deps *HandlerDeps) []*ToolDefinition {
	return []*ToolDefinition{
		{
			Name:        ToolGetCurrentDate,
			Description: "Get the current date, time and weekday in the business timezone. Use before interpreting relative dates like 'tomorrow'.",
			Params:      ParameterSchema{},
			Handle:      deps.handleGetCurrentDate,
		},
		{
			Name:        ToolListServices,
			Description: "List the bookable services of this business with duration and price.",
			Params:      ParameterSchema{},
			Handle:      deps.handleListServices,
		},
		{
			Name:        ToolListStaff,
			Description: "List the active staff members and which services each performs.",
			Params:      ParameterSchema{},
			Handle:      deps.handleListStaff,
		},
		{
			Name:        ToolCheckAvailability,
			Description: "List open time slots for a service on one day. Slots are advisory until held.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"serviceId": {Type: TypeString, Description: "Service to check."},
					"date":      {Type: TypeString, Description: "Day to check, YYYY-MM-DD in the business timezone."},
					"staffId":   {Type: TypeString, Description: "Restrict to one staff member. Omit for all qualified members."},
				},
				Required: []string{"serviceId", "date"},
			},
			Handle: deps.handleCheckAvailability,
		},
		{
			Name:        ToolCreateHold,
			Description: "Reserve a slot provisionally for a few minutes while the customer decides. Returns the hold id and its expiry; confirm before then or the slot is released.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"serviceId":           {Type: TypeString, Description: "Service to book."},
					"startsAt":            {Type: TypeString, Description: "Start time, RFC3339 or YYYY-MM-DDTHH:MM in the business timezone."},
					"staffId":             {Type: TypeString, Description: "Requested staff member. Omit to auto-assign; the response echoes the member actually reserved."},
					"holdDurationMinutes": {Type: TypeInteger, Description: "How long to hold the slot. Defaults to 5 minutes."},
				},
				Required: []string{"serviceId", "startsAt"},
			},
			Handle: deps.handleCreateHold,
		},
		{
			Name:        ToolConfirmBooking,
			Description: "Turn an unexpired hold into a confirmed booking. Needs the customer's name and email. Safe to retry with the same idempotencyKey.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"holdId":         {Type: TypeString, Description: "Hold returned by create_hold."},
					"customerName":   {Type: TypeString, Description: "Customer's full name."},
					"customerEmail":  {Type: TypeString, Description: "Customer's email; identifies the customer within this business."},
					"customerPhone":  {Type: TypeString, Description: "Customer's phone number."},
					"notes":          {Type: TypeString, Description: "Free-form note from the customer, visible to them."},
					"idempotencyKey": {Type: TypeString, Description: "Retry token. Omit to have one derived from the hold and email."},
				},
				Required: []string{"holdId", "customerName", "customerEmail"},
			},
			Handle: deps.handleConfirmBooking,
		},
		{
			Name:        ToolSearchKnowledge,
			Description: "Search the business's knowledge base (opening info, policies, FAQs) for an answer.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"query": {Type: TypeString, Description: "Natural-language question or keywords."},
					"limit": {Type: TypeInteger, Description: "Maximum results, default 5."},
				},
				Required: []string{"query"},
			},
			Handle: deps.handleSearchKnowledge,
		},
		{
			Name:        ToolRequestDataDeletion,
			Description: "Record a customer's request to have their personal data deleted. The business owner executes it.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"email": {Type: TypeString, Description: "Email address the customer booked with."},
				},
				Required: []string{"email"},
			},
			Handle: deps.handleRequestDataDeletion,
		},
	}
}

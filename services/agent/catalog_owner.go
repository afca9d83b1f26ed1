// File: services/agent/catalog_owner.go
package agent

// ownerTools is the owner-tier partition: catalog and staff administration,
// business settings, reports and destructive customer-data operations. A
// staff whitelist can never reach into this set.
func ownerTools(deps *HandlerDeps) []*ToolDefinition {
	return []*ToolDefinition{
		{
			Name:        ToolCreateService,
			Description: "Add a bookable service to the catalog.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"name":            {Type: TypeString, Description: "Service name shown to customers."},
					"description":     {Type: TypeString, Description: "Customer-facing description."},
					"durationMinutes": {Type: TypeInteger, Description: "Appointment length in minutes."},
					"bufferMinutes":   {Type: TypeInteger, Description: "Cleanup or travel time appended to each booking."},
					"price":           {Type: TypeNumber, Description: "Price in the business currency."},
				},
				Required: []string{"name", "durationMinutes", "price"},
			},
			Handle: deps.handleCreateService,
		},
		{
			Name:        ToolUpdateService,
			Description: "Change a service's details. Existing bookings keep their original price and length.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"serviceId":       {Type: TypeString, Description: "Service to update."},
					"name":            {Type: TypeString, Description: "New name."},
					"description":     {Type: TypeString, Description: "New description."},
					"durationMinutes": {Type: TypeInteger, Description: "New appointment length in minutes."},
					"bufferMinutes":   {Type: TypeInteger, Description: "New buffer in minutes."},
					"price":           {Type: TypeNumber, Description: "New price."},
				},
				Required: []string{"serviceId"},
			},
			Handle: deps.handleUpdateService,
		},
		{
			Name:        ToolArchiveService,
			Description: "Retire a service from the catalog. Existing bookings are untouched; new ones are refused.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"serviceId": {Type: TypeString, Description: "Service to archive."},
				},
				Required: []string{"serviceId"},
			},
			Handle: deps.handleArchiveService,
		},
		{
			Name:        ToolAddStaffMember,
			Description: "Add a staff member. Returns a temporary dashboard password when none was supplied.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"name":       {Type: TypeString, Description: "Full name."},
					"email":      {Type: TypeString, Description: "Login email, unique within the business."},
					"phone":      {Type: TypeString, Description: "Phone number."},
					"role":       {Type: TypeString, Description: "Dashboard role, default staff.", Enum: []string{"staff", "owner"}},
					"serviceIds": {Type: TypeArray, Description: "Services this member performs.", Items: &Property{Type: TypeString}},
					"password":   {Type: TypeString, Description: "Initial password. Omit to have one generated."},
				},
				Required: []string{"name", "email"},
			},
			Handle: deps.handleAddStaffMember,
		},
		{
			Name:        ToolUpdateStaffMember,
			Description: "Change a staff member's contact details.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"staffId": {Type: TypeString, Description: "Member to update."},
					"name":    {Type: TypeString, Description: "New name."},
					"email":   {Type: TypeString, Description: "New login email."},
					"phone":   {Type: TypeString, Description: "New phone number."},
				},
				Required: []string{"staffId"},
			},
			Handle: deps.handleUpdateStaffMember,
		},
		{
			Name:        ToolDeactivateStaffMember,
			Description: "Deactivate a staff member: no new bookings, no dashboard access. Their booking history stays.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"staffId": {Type: TypeString, Description: "Member to deactivate."},
				},
				Required: []string{"staffId"},
			},
			Handle: deps.handleDeactivateStaffMember,
		},
		{
			Name:        ToolSetStaffHours,
			Description: "Set a member's weekly working hours. Days left out are non-working; an empty object clears member hours so business hours apply.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"staffId": {Type: TypeString, Description: "Member whose hours to set."},
					"hours":   hoursProperty("Working ranges keyed by weekday."),
				},
				Required: []string{"staffId", "hours"},
			},
			Handle: deps.handleSetStaffHours,
		},
		{
			Name:        ToolSetStaffServices,
			Description: "Set which services a member is qualified to perform.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"staffId":    {Type: TypeString, Description: "Member to qualify."},
					"serviceIds": {Type: TypeArray, Description: "Complete new set of service ids.", Items: &Property{Type: TypeString}},
				},
				Required: []string{"staffId", "serviceIds"},
			},
			Handle: deps.handleSetStaffServices,
		},
		{
			Name:        ToolSetMemberCapabilities,
			Description: "Restrict a staff member to a whitelist of tools. An empty list restores the staff-tier default. Owner tools can never be whitelisted.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"staffId":      {Type: TypeString, Description: "Member to restrict."},
					"allowedTools": {Type: TypeArray, Description: "Tool names the member may use.", Items: &Property{Type: TypeString}},
				},
				Required: []string{"staffId", "allowedTools"},
			},
			Handle: deps.handleSetMemberCapabilities,
		},
		{
			Name:        ToolGetRevenueReport,
			Description: "Booking revenue and invoice totals for a period.",
			Params:      periodParams(),
			Handle:      deps.handleGetRevenueReport,
		},
		{
			Name:        ToolGetBookingStats,
			Description: "Booking counts per status for a period.",
			Params:      periodParams(),
			Handle:      deps.handleGetBookingStats,
		},
		{
			Name:        ToolGetNoShowReport,
			Description: "Missed appointments in a period and the customers who repeat.",
			Params:      periodParams(),
			Handle:      deps.handleGetNoShowReport,
		},
		{
			Name:        ToolUpdateBusinessProfile,
			Description: "Change the business's public profile.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"name":        {Type: TypeString, Description: "Business name."},
					"description": {Type: TypeString, Description: "Public description."},
					"phone":       {Type: TypeString, Description: "Contact phone."},
					"address":     {Type: TypeString, Description: "Street address."},
				},
			},
			Handle: deps.handleUpdateBusinessProfile,
		},
		{
			Name:        ToolUpdateBusinessHours,
			Description: "Set the business's weekly opening hours. Days left out are closed.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"hours": hoursProperty("Opening ranges keyed by weekday."),
				},
				Required: []string{"hours"},
			},
			Handle: deps.handleUpdateBusinessHours,
		},
		{
			Name:        ToolUpdateNotificationSettings,
			Description: "Toggle confirmation and reminder messages and set the reminder lead time.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"sendConfirmations": {Type: TypeBoolean, Description: "Send booking confirmations to customers."},
					"sendReminders":     {Type: TypeBoolean, Description: "Send appointment reminders."},
					"reminderLeadHours": {Type: TypeInteger, Description: "How many hours before the appointment to remind."},
				},
			},
			Handle: deps.handleUpdateNotificationSettings,
		},
		{
			Name:        ToolVoidInvoice,
			Description: "Void an unpaid invoice. Paid invoices are immutable.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"invoiceId": {Type: TypeString, Description: "Invoice to void."},
				},
				Required: []string{"invoiceId"},
			},
			Handle: deps.handleVoidInvoice,
		},
		{
			Name:        ToolExportCustomerData,
			Description: "Export everything stored about one customer: record, bookings, invoices, messages.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"customerId": {Type: TypeString, Description: "Customer to export."},
				},
				Required: []string{"customerId"},
			},
			Handle: deps.handleExportCustomerData,
		},
		{
			Name:        ToolDeleteCustomerData,
			Description: "Anonymize a customer's personal data. Booking history keeps anonymous rows. Irreversible.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"customerId": {Type: TypeString, Description: "Customer to anonymize."},
				},
				Required: []string{"customerId"},
			},
			Handle: deps.handleDeleteCustomerData,
		},
	}
}

// periodParams is the shared from/to schema of the report tools.
func periodParams() ParameterSchema {
	return ParameterSchema{
		Properties: map[string]Property{
			"from": {Type: TypeString, Description: "First day of the period, YYYY-MM-DD."},
			"to":   {Type: TypeString, Description: "Last day of the period (inclusive), YYYY-MM-DD."},
		},
		Required: []string{"from", "to"},
	}
}

// hoursProperty describes a weekly hours object: one optional entry per
// weekday, each an open/close pair.
func hoursProperty(desc string) Property {
	day := Property{
		Type: TypeObject,
		Properties: map[string]Property{
			"open":  {Type: TypeString, Description: "Opening time, HH:MM 24h."},
			"close": {Type: TypeString, Description: "Closing time, HH:MM 24h."},
		},
		Required: []string{"open", "close"},
	}
	props := make(map[string]Property, 7)
	for _, d := range weekdayKeys {
		props[d] = day
	}
	return Property{Type: TypeObject, Description: desc, Properties: props}
}

// File: services/agent/catalog_staff.go
package agent

// staffTools is the staff-tier partition: day-to-day calendar, customer and
// invoice work. A per-member whitelist can narrow this set further.
func staffTools(deps *HandlerDeps) []*ToolDefinition {
	return []*ToolDefinition{
		{
			Name:        ToolSearchBookings,
			Description: "Search bookings by customer, staff member, service, status or date range.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"customerId": {Type: TypeString, Description: "Only this customer's bookings."},
					"staffId":    {Type: TypeString, Description: "Only this member's bookings."},
					"serviceId":  {Type: TypeString, Description: "Only bookings of this service."},
					"status":     {Type: TypeString, Description: "Only this status.", Enum: []string{"pending", "confirmed", "cancelled", "completed", "no_show"}},
					"from":       {Type: TypeString, Description: "Earliest day, YYYY-MM-DD."},
					"to":         {Type: TypeString, Description: "Latest day (inclusive), YYYY-MM-DD."},
					"limit":      {Type: TypeInteger, Description: "Maximum results, default 50."},
				},
			},
			Handle: deps.handleSearchBookings,
		},
		{
			Name:        ToolGetBooking,
			Description: "Fetch one booking with its full audit history.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"bookingId": {Type: TypeString, Description: "Booking to fetch."},
				},
				Required: []string{"bookingId"},
			},
			Handle: deps.handleGetBooking,
		},
		{
			Name:        ToolCreateBooking,
			Description: "Create a booking directly, without a hold (walk-in or phone booking). May deliberately fall outside working hours.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"serviceId":     {Type: TypeString, Description: "Service to book."},
					"startsAt":      {Type: TypeString, Description: "Start time, RFC3339 or YYYY-MM-DDTHH:MM in the business timezone."},
					"staffId":       {Type: TypeString, Description: "Staff member. Omit to auto-assign."},
					"customerId":    {Type: TypeString, Description: "Existing customer. Alternative to customerEmail."},
					"customerName":  {Type: TypeString, Description: "Customer name, required when creating a new customer by email."},
					"customerEmail": {Type: TypeString, Description: "Customer email; an unknown address creates the customer record."},
					"customerPhone": {Type: TypeString, Description: "Customer phone."},
					"notes":         {Type: TypeString, Description: "Customer-visible note."},
				},
				Required: []string{"serviceId", "startsAt"},
			},
			Handle: deps.handleCreateBooking,
		},
		{
			Name:        ToolRescheduleBooking,
			Description: "Move a booking to a new start time, optionally to another staff member. The appointment keeps its length.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"bookingId": {Type: TypeString, Description: "Booking to move."},
					"startsAt":  {Type: TypeString, Description: "New start time."},
					"staffId":   {Type: TypeString, Description: "New staff member. Omit to keep the current one."},
				},
				Required: []string{"bookingId", "startsAt"},
			},
			Handle: deps.handleRescheduleBooking,
		},
		{
			Name:        ToolCancelBooking,
			Description: "Cancel a booking and free its slot.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"bookingId": {Type: TypeString, Description: "Booking to cancel."},
					"reason":    {Type: TypeString, Description: "Why it was cancelled; kept in the audit trail."},
				},
				Required: []string{"bookingId"},
			},
			Handle: deps.handleCancelBooking,
		},
		{
			Name:        ToolUpdateBookingStatus,
			Description: "Move a booking through its lifecycle (confirm, complete, mark as no-show).",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"bookingId": {Type: TypeString, Description: "Booking to update."},
					"status":    {Type: TypeString, Description: "Target status.", Enum: []string{"pending", "confirmed", "cancelled", "completed", "no_show"}},
				},
				Required: []string{"bookingId", "status"},
			},
			Handle: deps.handleUpdateBookingStatus,
		},
		{
			Name:        ToolAddBookingNote,
			Description: "Attach a note to a booking. Internal notes are hidden from the customer.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"bookingId": {Type: TypeString, Description: "Booking to annotate."},
					"note":      {Type: TypeString, Description: "Note text."},
					"internal":  {Type: TypeBoolean, Description: "True to keep the note staff-only."},
				},
				Required: []string{"bookingId", "note"},
			},
			Handle: deps.handleAddBookingNote,
		},
		{
			Name:        ToolGetDailySummary,
			Description: "All bookings of one day in order, including cancellations.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"date": {Type: TypeString, Description: "Day to summarize, YYYY-MM-DD."},
				},
				Required: []string{"date"},
			},
			Handle: deps.handleGetDailySummary,
		},
		{
			Name:        ToolGetWeekOverview,
			Description: "Booking counts per day for the seven days starting at weekStart.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"weekStart": {Type: TypeString, Description: "First day of the week to report, YYYY-MM-DD."},
				},
				Required: []string{"weekStart"},
			},
			Handle: deps.handleGetWeekOverview,
		},
		{
			Name:        ToolListCustomers,
			Description: "List the business's customers, newest first.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"limit": {Type: TypeInteger, Description: "Maximum results, default 50."},
				},
			},
			Handle: deps.handleListCustomers,
		},
		{
			Name:        ToolSearchCustomers,
			Description: "Find customers by name, email or phone fragment.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"query": {Type: TypeString, Description: "Name, email or phone fragment."},
					"limit": {Type: TypeInteger, Description: "Maximum results, default 20."},
				},
				Required: []string{"query"},
			},
			Handle: deps.handleSearchCustomers,
		},
		{
			Name:        ToolGetCustomer,
			Description: "Fetch one customer record including notes.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"customerId": {Type: TypeString, Description: "Customer to fetch."},
				},
				Required: []string{"customerId"},
			},
			Handle: deps.handleGetCustomer,
		},
		{
			Name:        ToolCreateCustomer,
			Description: "Create a customer record manually.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"name":  {Type: TypeString, Description: "Full name."},
					"email": {Type: TypeString, Description: "Email; must be unique within the business."},
					"phone": {Type: TypeString, Description: "Phone number."},
				},
				Required: []string{"name", "email"},
			},
			Handle: deps.handleCreateCustomer,
		},
		{
			Name:        ToolUpdateCustomer,
			Description: "Update a customer's contact details.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"customerId": {Type: TypeString, Description: "Customer to update."},
					"name":       {Type: TypeString, Description: "New name."},
					"email":      {Type: TypeString, Description: "New email."},
					"phone":      {Type: TypeString, Description: "New phone number."},
				},
				Required: []string{"customerId"},
			},
			Handle: deps.handleUpdateCustomer,
		},
		{
			Name:        ToolAddCustomerNote,
			Description: "Attach a dated note to a customer record (preferences, allergies, history).",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"customerId": {Type: TypeString, Description: "Customer to annotate."},
					"note":       {Type: TypeString, Description: "Note text."},
				},
				Required: []string{"customerId", "note"},
			},
			Handle: deps.handleAddCustomerNote,
		},
		{
			Name:        ToolGetCustomerHistory,
			Description: "A customer's past and upcoming bookings plus recent messages.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"customerId": {Type: TypeString, Description: "Customer to look up."},
					"limit":      {Type: TypeInteger, Description: "Maximum bookings, default 20."},
				},
				Required: []string{"customerId"},
			},
			Handle: deps.handleGetCustomerHistory,
		},
		{
			Name:        ToolSendMessage,
			Description: "Send a free-form message to a customer over email or WhatsApp. The attempt is logged either way.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"customerId": {Type: TypeString, Description: "Recipient."},
					"body":       {Type: TypeString, Description: "Message text."},
					"subject":    {Type: TypeString, Description: "Subject line, email only."},
					"channel":    {Type: TypeString, Description: "Delivery channel, default email.", Enum: []string{"email", "whatsapp"}},
				},
				Required: []string{"customerId", "body"},
			},
			Handle: deps.handleSendMessage,
		},
		{
			Name:        ToolSendBookingReminder,
			Description: "Send the appointment reminder for one booking now.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"bookingId": {Type: TypeString, Description: "Booking to remind about."},
				},
				Required: []string{"bookingId"},
			},
			Handle: deps.handleSendBookingReminder,
		},
		{
			Name:        ToolGetStaffSchedule,
			Description: "One staff member's bookings for one day, in order.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"staffId": {Type: TypeString, Description: "Staff member."},
					"date":    {Type: TypeString, Description: "Day, YYYY-MM-DD."},
				},
				Required: []string{"staffId", "date"},
			},
			Handle: deps.handleGetStaffSchedule,
		},
		{
			Name:        ToolBlockTimeSlot,
			Description: "Block an interval against bookings (lunch, maintenance, time off). Omit staffId to block the whole business.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"startsAt": {Type: TypeString, Description: "Block start, RFC3339 or YYYY-MM-DDTHH:MM."},
					"endsAt":   {Type: TypeString, Description: "Block end."},
					"staffId":  {Type: TypeString, Description: "Member to block. Omit for a business-wide block."},
					"reason":   {Type: TypeString, Description: "Why the time is blocked, staff-visible."},
				},
				Required: []string{"startsAt", "endsAt"},
			},
			Handle: deps.handleBlockTimeSlot,
		},
		{
			Name:        ToolUnblockTimeSlot,
			Description: "Release a previously blocked interval.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"blockId": {Type: TypeString, Description: "Block to release, as returned by block_time_slot."},
				},
				Required: []string{"blockId"},
			},
			Handle: deps.handleUnblockTimeSlot,
		},
		{
			Name:        ToolCreateInvoice,
			Description: "Draft an invoice for a customer. Totals and tax are computed from the line items.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"customerId": {Type: TypeString, Description: "Customer to bill."},
					"bookingId":  {Type: TypeString, Description: "Booking this invoice belongs to."},
					"lineItems": {
						Type:        TypeArray,
						Description: "Billed positions.",
						Items: &Property{
							Type: TypeObject,
							Properties: map[string]Property{
								"description": {Type: TypeString, Description: "What is billed."},
								"quantity":    {Type: TypeInteger, Description: "How many."},
								"unitPrice":   {Type: TypeNumber, Description: "Net price per unit."},
							},
							Required: []string{"description", "quantity", "unitPrice"},
						},
					},
					"dueInDays": {Type: TypeInteger, Description: "Payment terms in days, default 14."},
				},
				Required: []string{"customerId", "lineItems"},
			},
			Handle: deps.handleCreateInvoice,
		},
		{
			Name:        ToolGetInvoice,
			Description: "Fetch one invoice.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"invoiceId": {Type: TypeString, Description: "Invoice to fetch."},
				},
				Required: []string{"invoiceId"},
			},
			Handle: deps.handleGetInvoice,
		},
		{
			Name:        ToolListInvoices,
			Description: "List invoices, optionally filtered by status or customer.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"status":     {Type: TypeString, Description: "Only this status.", Enum: []string{"draft", "sent", "paid", "overdue", "void"}},
					"customerId": {Type: TypeString, Description: "Only this customer's invoices."},
					"limit":      {Type: TypeInteger, Description: "Maximum results, default 50."},
				},
			},
			Handle: deps.handleListInvoices,
		},
		{
			Name:        ToolSendInvoice,
			Description: "Email an invoice to its customer, storing the rendered document. Sending a draft marks it sent.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"invoiceId": {Type: TypeString, Description: "Invoice to send."},
				},
				Required: []string{"invoiceId"},
			},
			Handle: deps.handleSendInvoice,
		},
		{
			Name:        ToolRecordPayment,
			Description: "Record that an invoice was paid.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"invoiceId": {Type: TypeString, Description: "Invoice that was paid."},
					"method":    {Type: TypeString, Description: "How it was paid, default cash.", Enum: []string{"cash", "card", "transfer", "stripe", "other"}},
				},
				Required: []string{"invoiceId"},
			},
			Handle: deps.handleRecordPayment,
		},
		{
			Name:        ToolCreatePaymentLink,
			Description: "Create a hosted online payment link for an invoice.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"invoiceId": {Type: TypeString, Description: "Invoice to link."},
				},
				Required: []string{"invoiceId"},
			},
			Handle: deps.handleCreatePaymentLink,
		},
	}
}

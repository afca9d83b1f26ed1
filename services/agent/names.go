// File: services/agent/names.go
package agent

// ToolName is the closed enumeration of operations the reasoning component
// may call. Free-form strings exist only at the wire boundary and are
// converted exactly once, at dispatch.
type ToolName string

// Tier is the trust level a tool requires.
type Tier string

const (
	TierPublic Tier = "public"
	TierStaff  Tier = "staff"
	TierOwner  Tier = "owner"
)

// Public-safe tools, callable by any actor. This set is small and append-only
// by review, not runtime configuration.
const (
	ToolGetCurrentDate      ToolName = "get_current_date"
	ToolListServices        ToolName = "list_services"
	ToolListStaff           ToolName = "list_staff"
	ToolCheckAvailability   ToolName = "check_availability"
	ToolCreateHold          ToolName = "create_hold"
	ToolConfirmBooking      ToolName = "confirm_booking"
	ToolSearchKnowledge     ToolName = "search_knowledge"
	ToolRequestDataDeletion ToolName = "request_data_deletion"
)

// Staff-tier tools.
const (
	ToolSearchBookings      ToolName = "search_bookings"
	ToolGetBooking          ToolName = "get_booking"
	ToolCreateBooking       ToolName = "create_booking"
	ToolRescheduleBooking   ToolName = "reschedule_booking"
	ToolCancelBooking       ToolName = "cancel_booking"
	ToolUpdateBookingStatus ToolName = "update_booking_status"
	ToolAddBookingNote      ToolName = "add_booking_note"
	ToolGetDailySummary     ToolName = "get_daily_summary"
	ToolGetWeekOverview     ToolName = "get_week_overview"
	ToolListCustomers       ToolName = "list_customers"
	ToolSearchCustomers     ToolName = "search_customers"
	ToolGetCustomer         ToolName = "get_customer"
	ToolCreateCustomer      ToolName = "create_customer"
	ToolUpdateCustomer      ToolName = "update_customer"
	ToolAddCustomerNote     ToolName = "add_customer_note"
	ToolGetCustomerHistory  ToolName = "get_customer_history"
	ToolSendMessage         ToolName = "send_message"
	ToolSendBookingReminder ToolName = "send_booking_reminder"
	ToolGetStaffSchedule    ToolName = "get_staff_schedule"
	ToolBlockTimeSlot       ToolName = "block_time_slot"
	ToolUnblockTimeSlot     ToolName = "unblock_time_slot"
	ToolCreateInvoice       ToolName = "create_invoice"
	ToolGetInvoice          ToolName = "get_invoice"
	ToolListInvoices        ToolName = "list_invoices"
	ToolSendInvoice         ToolName = "send_invoice"
	ToolRecordPayment       ToolName = "record_payment"
	ToolCreatePaymentLink   ToolName = "create_payment_link"
)

// Owner-tier tools.
const (
	ToolCreateService              ToolName = "create_service"
	ToolUpdateService              ToolName = "update_service"
	ToolArchiveService             ToolName = "archive_service"
	ToolAddStaffMember             ToolName = "add_staff_member"
	ToolUpdateStaffMember          ToolName = "update_staff_member"
	ToolDeactivateStaffMember      ToolName = "deactivate_staff_member"
	ToolSetStaffHours              ToolName = "set_staff_hours"
	ToolSetStaffServices           ToolName = "set_staff_services"
	ToolSetMemberCapabilities      ToolName = "set_member_capabilities"
	ToolGetRevenueReport           ToolName = "get_revenue_report"
	ToolGetBookingStats            ToolName = "get_booking_stats"
	ToolGetNoShowReport            ToolName = "get_no_show_report"
	ToolUpdateBusinessProfile      ToolName = "update_business_profile"
	ToolUpdateBusinessHours        ToolName = "update_business_hours"
	ToolUpdateNotificationSettings ToolName = "update_notification_settings"
	ToolVoidInvoice                ToolName = "void_invoice"
	ToolExportCustomerData         ToolName = "export_customer_data"
	ToolDeleteCustomerData         ToolName = "delete_customer_data"
)

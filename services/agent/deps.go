// File: services/agent/deps.go
package agent

import (
	bookingRepo "hebelki/database/repository/booking"
	businessRepo "hebelki/database/repository/business"
	customerRepo "hebelki/database/repository/customer"
	invoiceRepo "hebelki/database/repository/invoice"
	messageRepo "hebelki/database/repository/message"
	serviceRepo "hebelki/database/repository/service"
	staffRepo "hebelki/database/repository/staff"
	"hebelki/services/booking"
	"hebelki/services/invoicing"
	"hebelki/services/knowledge"
	"hebelki/services/messaging"
	"hebelki/services/reports"
)

// HandlerDeps bundles everything tool handlers reach for. Built once at
// startup; handlers themselves stay stateless.
type HandlerDeps struct {
	Businesses businessRepo.BusinessRepository
	Services   serviceRepo.ServiceRepository
	Staff      staffRepo.StaffRepository
	Customers  customerRepo.CustomerRepository
	Bookings   bookingRepo.BookingRepository
	Invoices   invoiceRepo.InvoiceRepository
	MessageLog messageRepo.MessageRepository

	Reservations booking.ReservationService
	Invoicing    invoicing.InvoiceService
	Messages     messaging.MessageService
	Reports      reports.ReportService
	Knowledge    knowledge.Searcher

	// Registry is filled in by NewToolset once the catalog exists; the
	// capability-whitelist handler validates names against it.
	Registry *Registry
}

// NewToolset builds the full tool registry over the given dependencies.
func NewToolset(deps *HandlerDeps) *Registry {
	reg := NewRegistry(publicTools(deps), staffTools(deps), ownerTools(deps))
	deps.Registry = reg
	return reg
}

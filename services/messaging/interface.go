// File: services/messaging/interface.go
package messaging

import (
	"context"

	customerRepo "hebelki/database/repository/customer"
	messageRepo "hebelki/database/repository/message"
	staffRepo "hebelki/database/repository/staff"
	"hebelki/models"
)

// Outbound is a customer message about to be delivered.
type Outbound struct {
	CustomerID string
	Channel    models.MessageChannel
	To         string
	Subject    string
	Body       string
}

// Transport delivers one message over one channel. Implementations wrap
// external gateways; the platform only owns the message log.
type Transport interface {
	Deliver(ctx context.Context, biz *models.Business, msg *models.MessageRecord) error
}

// MessageService sends templated customer messages and records every attempt.
type MessageService interface {
	Send(ctx context.Context, biz *models.Business, out Outbound) (*models.MessageRecord, error)
	SendBookingConfirmation(ctx context.Context, biz *models.Business, b *models.Booking, email string)
	SendBookingReminder(ctx context.Context, biz *models.Business, b *models.Booking, email string) error
	SendInvoice(ctx context.Context, biz *models.Business, inv *models.Invoice, cust *models.Customer) error
}

// DefaultMessageService routes messages to per-channel transports, logs every
// attempt to the messages collection and pushes staff alerts over FCM.
type DefaultMessageService struct {
	Repo       messageRepo.MessageRepository
	Customers  customerRepo.CustomerRepository
	Staff      staffRepo.StaffRepository
	Transports map[models.MessageChannel]Transport
	Push       *StaffPusher
}

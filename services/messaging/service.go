// File: services/messaging/service.go
package messaging

import (
	"context"
	"fmt"
	"time"

	"hebelki/models"
	"hebelki/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Send delivers one message over its channel and records the attempt. The
// returned record reflects the outcome; a delivery failure is both recorded
// and returned as the error.
func (s *DefaultMessageService) Send(ctx context.Context, biz *models.Business, out Outbound) (*models.MessageRecord, error) {
	if out.To == "" {
		return nil, fmt.Errorf("message has no recipient")
	}
	transport, ok := s.Transports[out.Channel]
	if !ok {
		return nil, fmt.Errorf("no transport configured for channel %q", out.Channel)
	}

	record := &models.MessageRecord{
		ID:         uuid.New().String(),
		BusinessID: biz.ID,
		CustomerID: out.CustomerID,
		Channel:    out.Channel,
		To:         out.To,
		Subject:    out.Subject,
		Body:       out.Body,
		Status:     "sent",
		SentAt:     time.Now().UTC(),
	}

	deliveryErr := transport.Deliver(ctx, biz, record)
	if deliveryErr != nil {
		record.Status = "failed"
		record.Error = deliveryErr.Error()
	}

	// The attempt is logged either way; the message history must show
	// failures too.
	if err := s.Repo.Create(ctx, record); err != nil {
		utils.GetLogger().Error("Failed to record outbound message",
			zap.String("businessId", biz.ID),
			zap.Error(err))
	}

	if deliveryErr != nil {
		return record, fmt.Errorf("failed to deliver %s message: %w", out.Channel, deliveryErr)
	}
	return record, nil
}

// SendBookingConfirmation emails the customer and alerts the assigned staff
// member. It never fails the caller: the booking is already confirmed, so a
// messaging problem is logged and left at that.
func (s *DefaultMessageService) SendBookingConfirmation(ctx context.Context, biz *models.Business, b *models.Booking, email string) {
	if !biz.Notifications.SendConfirmations {
		return
	}
	subject, body := confirmationMessage(biz, b)
	_, err := s.Send(ctx, biz, Outbound{
		CustomerID: b.CustomerID,
		Channel:    models.ChannelEmail,
		To:         email,
		Subject:    subject,
		Body:       body,
	})
	if err != nil {
		utils.GetLogger().Warn("Booking confirmation not delivered",
			zap.String("bookingId", b.ID),
			zap.Error(err))
	}
	if s.Push != nil {
		s.Push.PushBookingAlert(ctx, biz.ID, b)
	}
}

// SendBookingReminder emails the customer ahead of their appointment.
func (s *DefaultMessageService) SendBookingReminder(ctx context.Context, biz *models.Business, b *models.Booking, email string) error {
	if !biz.Notifications.SendReminders {
		return nil
	}
	subject, body := reminderMessage(biz, b)
	_, err := s.Send(ctx, biz, Outbound{
		CustomerID: b.CustomerID,
		Channel:    models.ChannelEmail,
		To:         email,
		Subject:    subject,
		Body:       body,
	})
	return err
}

// SendInvoice emails the rendered invoice summary to the customer.
func (s *DefaultMessageService) SendInvoice(ctx context.Context, biz *models.Business, inv *models.Invoice, cust *models.Customer) error {
	if cust.Email == "" {
		return fmt.Errorf("customer %s has no email address", cust.ID)
	}
	subject, body := invoiceMessage(biz, inv, cust)
	_, err := s.Send(ctx, biz, Outbound{
		CustomerID: cust.ID,
		Channel:    models.ChannelEmail,
		To:         cust.Email,
		Subject:    subject,
		Body:       body,
	})
	return err
}

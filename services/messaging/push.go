// File: services/messaging/push.go
package messaging

import (
	"context"
	"fmt"

	staffRepo "hebelki/database/repository/staff"
	"hebelki/models"
	"hebelki/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// StaffPusher sends FCM pushes to staff dashboard devices. It is inert when
// Firebase was not configured at startup.
type StaffPusher struct {
	Staff staffRepo.StaffRepository
}

// PushToMember looks up a member's FCM token and sends a push.
func (p *StaffPusher) PushToMember(ctx context.Context, businessID, staffID, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		return nil
	}
	member, err := p.Staff.GetByID(ctx, businessID, staffID)
	if err != nil {
		return fmt.Errorf("could not find staff member %s: %w", staffID, err)
	}
	if member == nil || member.FCMToken == "" {
		return nil
	}
	msg := &messaging.Message{
		Token: member.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}

// PushBookingAlert notifies the assigned member about a new booking. Failures
// are logged, never surfaced: a push is a courtesy, not part of the booking.
func (p *StaffPusher) PushBookingAlert(ctx context.Context, businessID string, b *models.Booking) {
	if b.StaffID == "" {
		return
	}
	title := "New booking"
	body := fmt.Sprintf("%s, %s at %s", b.CustomerName, b.ServiceName, b.StartsAt.Format("Mon 15:04"))
	data := map[string]string{
		"type":      "booking",
		"bookingId": b.ID,
	}
	if err := p.PushToMember(ctx, businessID, b.StaffID, title, body, data); err != nil {
		utils.GetLogger().Warn("Staff push failed",
			zap.String("staffId", b.StaffID),
			zap.Error(err))
	}
}

// File: services/agent/handlers_messaging.go
package agent

import (
	"context"
	"strings"
	"time"

	"hebelki/models"
	"hebelki/services/messaging"
)

func (d *HandlerDeps) handleSendMessage(ctx context.Context, inv *Invocation) *ToolResult {
	body := strings.TrimSpace(argString(inv.Args, "body"))
	if body == "" {
		return Fail(CodeValidation, "body must not be empty")
	}
	cust, err := d.Customers.GetByID(ctx, inv.Business.ID, argString(inv.Args, "customerId"))
	if err != nil || cust == nil {
		return Fail(CodeNotFound, "customer not found")
	}

	channel := models.MessageChannel(argString(inv.Args, "channel"))
	if channel == "" {
		channel = models.ChannelEmail
	}
	var to string
	switch channel {
	case models.ChannelEmail:
		to = cust.Email
	case models.ChannelWhatsApp:
		to = cust.Phone
	}
	if to == "" {
		return Fail(CodeValidation, "customer has no contact address for channel "+string(channel))
	}

	rec, err := d.Messages.Send(ctx, inv.Business, messaging.Outbound{
		CustomerID: cust.ID,
		Channel:    channel,
		To:         to,
		Subject:    strings.TrimSpace(argString(inv.Args, "subject")),
		Body:       body,
	})
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{
		"messageId": rec.ID,
		"channel":   string(rec.Channel),
		"status":    rec.Status,
	})
}

func (d *HandlerDeps) handleSendBookingReminder(ctx context.Context, inv *Invocation) *ToolResult {
	if !inv.Business.Notifications.SendReminders {
		return Fail(CodeValidation, "reminders are disabled for this business")
	}
	b, err := d.Bookings.GetByID(ctx, inv.Business.ID, argString(inv.Args, "bookingId"))
	if err != nil || b == nil {
		return Fail(CodeNotFound, "booking not found")
	}
	if b.Status != models.BookingPending && b.Status != models.BookingConfirmed {
		return Fail(CodeValidation, "booking is "+string(b.Status)+", no reminder to send")
	}
	cust, err := d.Customers.GetByID(ctx, inv.Business.ID, b.CustomerID)
	if err != nil || cust == nil || cust.Email == "" {
		return Fail(CodeValidation, "booking has no reachable customer")
	}
	if err := d.Messages.SendBookingReminder(ctx, inv.Business, b, cust.Email); err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{
		"bookingId": b.ID,
		"sentTo":    cust.Email,
		"startsAt":  b.StartsAt.Format(time.RFC3339),
	})
}

// File: services/agent/handlers_booking.go
package agent

import (
	"context"
	"strings"
	"time"

	bookingRepo "hebelki/database/repository/booking"
	"hebelki/models"
	"hebelki/services/booking"
)

func (d *HandlerDeps) handleCheckAvailability(ctx context.Context, inv *Invocation) *ToolResult {
	res, err := d.Reservations.CheckAvailability(ctx, inv.Business, booking.AvailabilityRequest{
		ServiceID: argString(inv.Args, "serviceId"),
		StaffID:   argString(inv.Args, "staffId"),
		Date:      argString(inv.Args, "date"),
	})
	if err != nil {
		return failFrom(err)
	}
	return OK(jsonMap(res))
}

func (d *HandlerDeps) handleCreateHold(ctx context.Context, inv *Invocation) *ToolResult {
	res, err := d.Reservations.CreateHold(ctx, inv.Business, booking.HoldRequest{
		ServiceID:  argString(inv.Args, "serviceId"),
		StaffID:    argString(inv.Args, "staffId"),
		StartsAt:   argString(inv.Args, "startsAt"),
		TTLMinutes: argInt(inv.Args, "holdDurationMinutes"),
	})
	if err != nil {
		return failFrom(err)
	}
	h := res.Hold
	return OK(map[string]interface{}{
		"holdId":    h.ID,
		"serviceId": h.ServiceID,
		"staffId":   h.StaffID,
		"staffName": res.StaffName,
		"startsAt":  h.StartsAt.Format(time.RFC3339),
		"endsAt":    h.EndsAt.Format(time.RFC3339),
		"expiresAt": h.ExpiresAt.Format(time.RFC3339),
	})
}

func (d *HandlerDeps) handleConfirmBooking(ctx context.Context, inv *Invocation) *ToolResult {
	b, err := d.Reservations.ConfirmHold(ctx, inv.Business, booking.ConfirmRequest{
		HoldID:         argString(inv.Args, "holdId"),
		CustomerName:   argString(inv.Args, "customerName"),
		CustomerEmail:  argString(inv.Args, "customerEmail"),
		CustomerPhone:  argString(inv.Args, "customerPhone"),
		Notes:          argString(inv.Args, "notes"),
		IdempotencyKey: argString(inv.Args, "idempotencyKey"),
		Source:         models.SourceAgent,
		Actor:          inv.Actor,
	})
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{
		"bookingId":         b.ID,
		"confirmationToken": b.ConfirmationToken,
		"customerId":        b.CustomerID,
		"serviceName":       b.ServiceName,
		"staffId":           b.StaffID,
		"startsAt":          b.StartsAt.Format(time.RFC3339),
		"endsAt":            b.EndsAt.Format(time.RFC3339),
	})
}

func (d *HandlerDeps) handleSearchBookings(ctx context.Context, inv *Invocation) *ToolResult {
	q := bookingRepo.BookingQuery{
		BusinessID: inv.Business.ID,
		CustomerID: argString(inv.Args, "customerId"),
		StaffID:    argString(inv.Args, "staffId"),
		ServiceID:  argString(inv.Args, "serviceId"),
		Status:     models.BookingStatus(argString(inv.Args, "status")),
		Limit:      int64(argInt(inv.Args, "limit")),
	}
	loc := inv.Business.Location()
	if s := argString(inv.Args, "from"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, loc)
		if err != nil {
			return Fail(CodeValidation, "from must be YYYY-MM-DD")
		}
		q.From = t
	}
	if s := argString(inv.Args, "to"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, loc)
		if err != nil {
			return Fail(CodeValidation, "to must be YYYY-MM-DD")
		}
		q.To = t.AddDate(0, 0, 1)
	}
	list, err := d.Bookings.Search(ctx, q)
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{
		"bookings": jsonList(list),
		"count":    len(list),
	})
}

func (d *HandlerDeps) handleGetBooking(ctx context.Context, inv *Invocation) *ToolResult {
	id := argString(inv.Args, "bookingId")
	b, err := d.Bookings.GetByID(ctx, inv.Business.ID, id)
	if err != nil || b == nil {
		return Fail(CodeNotFound, "booking not found")
	}
	actions, err := d.Bookings.ListActions(ctx, inv.Business.ID, id)
	if err != nil {
		actions = nil
	}
	return OK(map[string]interface{}{
		"booking": jsonMap(b),
		"history": jsonList(actions),
	})
}

func (d *HandlerDeps) handleCreateBooking(ctx context.Context, inv *Invocation) *ToolResult {
	b, err := d.Reservations.CreateDirect(ctx, inv.Business, booking.DirectRequest{
		ServiceID:     argString(inv.Args, "serviceId"),
		StaffID:       argString(inv.Args, "staffId"),
		CustomerID:    argString(inv.Args, "customerId"),
		CustomerName:  argString(inv.Args, "customerName"),
		CustomerEmail: argString(inv.Args, "customerEmail"),
		CustomerPhone: argString(inv.Args, "customerPhone"),
		StartsAt:      argString(inv.Args, "startsAt"),
		Notes:         argString(inv.Args, "notes"),
		Actor:         inv.Actor,
	})
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"booking": jsonMap(b)})
}

func (d *HandlerDeps) handleRescheduleBooking(ctx context.Context, inv *Invocation) *ToolResult {
	b, err := d.Reservations.Reschedule(ctx, inv.Business, booking.RescheduleRequest{
		BookingID: argString(inv.Args, "bookingId"),
		StartsAt:  argString(inv.Args, "startsAt"),
		StaffID:   argString(inv.Args, "staffId"),
		Actor:     inv.Actor,
	})
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"booking": jsonMap(b)})
}

func (d *HandlerDeps) handleCancelBooking(ctx context.Context, inv *Invocation) *ToolResult {
	b, err := d.Reservations.Cancel(ctx, inv.Business.ID,
		argString(inv.Args, "bookingId"),
		argString(inv.Args, "reason"),
		inv.Actor)
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"booking": jsonMap(b)})
}

func (d *HandlerDeps) handleUpdateBookingStatus(ctx context.Context, inv *Invocation) *ToolResult {
	b, err := d.Reservations.UpdateStatus(ctx, inv.Business.ID,
		argString(inv.Args, "bookingId"),
		models.BookingStatus(argString(inv.Args, "status")),
		inv.Actor)
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"booking": jsonMap(b)})
}

func (d *HandlerDeps) handleAddBookingNote(ctx context.Context, inv *Invocation) *ToolResult {
	b, err := d.Reservations.AddNote(ctx, inv.Business.ID,
		argString(inv.Args, "bookingId"),
		argString(inv.Args, "note"),
		argBool(inv.Args, "internal"),
		inv.Actor)
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"booking": jsonMap(b)})
}

func (d *HandlerDeps) handleGetDailySummary(ctx context.Context, inv *Invocation) *ToolResult {
	date := argString(inv.Args, "date")
	rows, err := d.Reservations.DaySummary(ctx, inv.Business, date)
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{
		"date":     date,
		"bookings": jsonList(rows),
		"count":    len(rows),
	})
}

func (d *HandlerDeps) handleGetStaffSchedule(ctx context.Context, inv *Invocation) *ToolResult {
	list, err := d.Reservations.StaffSchedule(ctx, inv.Business,
		argString(inv.Args, "staffId"),
		argString(inv.Args, "date"))
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"bookings": jsonList(list)})
}

func (d *HandlerDeps) handleBlockTimeSlot(ctx context.Context, inv *Invocation) *ToolResult {
	b, err := d.Reservations.BlockSlot(ctx, inv.Business, booking.BlockRequest{
		StaffID:  argString(inv.Args, "staffId"),
		StartsAt: argString(inv.Args, "startsAt"),
		EndsAt:   argString(inv.Args, "endsAt"),
		Reason:   argString(inv.Args, "reason"),
		Actor:    inv.Actor,
	})
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{
		"blockId":  b.ID,
		"staffId":  b.StaffID,
		"startsAt": b.StartsAt.Format(time.RFC3339),
		"endsAt":   b.EndsAt.Format(time.RFC3339),
		"reason":   strings.TrimSpace(b.InternalNotes),
	})
}

func (d *HandlerDeps) handleUnblockTimeSlot(ctx context.Context, inv *Invocation) *ToolResult {
	_, err := d.Reservations.UnblockSlot(ctx, inv.Business.ID,
		argString(inv.Args, "blockId"),
		inv.Actor)
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"released": true})
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "hebelki/database/repository/booking"
	"hebelki/models"
	"hebelki/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// resolveCustomer loads the customer by id, or by email with create-on-miss.
func (s *DefaultReservationService) resolveCustomer(ctx context.Context, biz *models.Business, req DirectRequest) (*models.Customer, error) {
	if req.CustomerID != "" {
		cust, err := s.CustomerRepo.GetByID(ctx, biz.ID, req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("load customer: %w", err)
		}
		if cust == nil {
			return nil, NewNotFoundError("customer not found")
		}
		return cust, nil
	}
	email := strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	if email == "" {
		return nil, NewValidationError("customerId or customerEmail is required")
	}
	cust, err := s.CustomerRepo.GetByEmail(ctx, biz.ID, email)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}
	if cust != nil {
		return cust, nil
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, NewValidationError("customerName is required for a new customer")
	}
	cust = &models.Customer{
		BusinessID: biz.ID,
		Name:       strings.TrimSpace(req.CustomerName),
		Email:      email,
		Phone:      strings.TrimSpace(req.CustomerPhone),
	}
	if err := s.CustomerRepo.Create(ctx, cust); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return cust, nil
}

// CreateDirect books without a hold. Conflict rules are the same as the hold
// path; working-hours limits are not enforced here, staff may deliberately
// book outside them.
func (s *DefaultReservationService) CreateDirect(ctx context.Context, biz *models.Business, req DirectRequest) (*models.Booking, error) {
	svc, err := s.ServiceRepo.GetByID(ctx, biz.ID, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("load service: %w", err)
	}
	if svc == nil || !svc.Active {
		return nil, NewNotFoundError("service not found")
	}
	startsAt, err := parseBusinessTime(biz, req.StartsAt)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	endsAt := startsAt.Add(svc.SlotLength())
	now := time.Now()
	loc := biz.Location()

	candidates, autoAssign, err := s.resolveCandidates(ctx, biz, svc, req.StaffID)
	if err != nil {
		return nil, err
	}
	cust, err := s.resolveCustomer(ctx, biz, req)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		cand := &candidates[i]
		booking := &models.Booking{
			ID:                uuid.New().String(),
			BusinessID:        biz.ID,
			ServiceID:         svc.ID,
			StaffID:           cand.ID,
			CustomerID:        cust.ID,
			ServiceName:       svc.Name,
			CustomerName:      cust.Name,
			StartsAt:          startsAt,
			EndsAt:            endsAt,
			Status:            models.BookingConfirmed,
			ConfirmationToken: newConfirmationToken(),
			Price:             svc.Price,
			Notes:             req.Notes,
			Source:            models.SourceAdmin,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		action := &models.BookingAction{
			ID:         uuid.New().String(),
			BusinessID: biz.ID,
			BookingID:  booking.ID,
			Action:     models.ActionCreated,
			ActorType:  req.Actor.Type,
			ActorID:    req.Actor.ActorID,
			At:         now,
		}
		err := s.BookingRepo.CreateBookingTransactionally(ctx, booking, action, now)
		if err == nil {
			utils.GetLogger().Info("booking created",
				zap.String("businessId", biz.ID),
				zap.String("bookingId", booking.ID),
				zap.String("staffId", cand.ID))
			s.afterBooking(ctx, biz, booking, cust.Email)
			return localized(booking, loc), nil
		}
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			if autoAssign {
				continue
			}
			return nil, NewSlotUnavailableError("that time is not available")
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return nil, NewSlotUnavailableError("no one is free at that time")
}

// Reschedule moves a booking, keeping its original length. The target
// interval must be free; the booking's own current slot does not count
// against it.
func (s *DefaultReservationService) Reschedule(ctx context.Context, biz *models.Business, req RescheduleRequest) (*models.Booking, error) {
	b, err := s.BookingRepo.GetByID(ctx, biz.ID, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if b == nil {
		return nil, NewNotFoundError("booking not found")
	}
	switch b.Status {
	case models.BookingPending, models.BookingConfirmed:
	default:
		return nil, NewValidationError("only pending or confirmed bookings can be rescheduled")
	}

	startsAt, err := parseBusinessTime(biz, req.StartsAt)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	endsAt := startsAt.Add(b.EndsAt.Sub(b.StartsAt))
	now := time.Now()
	loc := biz.Location()

	staffID := req.StaffID
	if staffID == "" {
		staffID = b.StaffID
	} else if staffID != b.StaffID {
		member, err := s.StaffRepo.GetByID(ctx, biz.ID, staffID)
		if err != nil {
			return nil, fmt.Errorf("load staff member: %w", err)
		}
		if member == nil || !member.Active {
			return nil, NewNotFoundError("staff member not found")
		}
		if b.ServiceID != "" && !member.QualifiedFor(b.ServiceID) {
			return nil, NewValidationError(member.Name + " does not offer this service")
		}
	}

	action := &models.BookingAction{
		ID:         uuid.New().String(),
		BusinessID: biz.ID,
		BookingID:  b.ID,
		Action:     models.ActionRescheduled,
		ActorType:  req.Actor.Type,
		ActorID:    req.Actor.ActorID,
		Metadata: map[string]string{
			"from": b.StartsAt.In(loc).Format(time.RFC3339),
			"to":   startsAt.In(loc).Format(time.RFC3339),
		},
		At: now,
	}
	updated, err := s.BookingRepo.RescheduleTransactionally(ctx, biz.ID, b.ID, staffID, startsAt, endsAt, now, action)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			return nil, NewSlotUnavailableError("that time is not available")
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, NewNotFoundError("booking not found")
		}
		return nil, fmt.Errorf("reschedule booking: %w", err)
	}
	utils.GetLogger().Info("booking rescheduled",
		zap.String("businessId", biz.ID),
		zap.String("bookingId", b.ID),
		zap.Time("startsAt", startsAt))
	return localized(updated, loc), nil
}

// Cancel releases the booking's slot. Cancelling an already-cancelled
// booking is a no-op.
func (s *DefaultReservationService) Cancel(ctx context.Context, businessID, bookingID, reason string, actor models.ActorContext) (*models.Booking, error) {
	b, err := s.BookingRepo.GetByID(ctx, businessID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if b == nil {
		return nil, NewNotFoundError("booking not found")
	}
	if b.Status == models.BookingCancelled {
		return b, nil
	}
	if b.Status == models.BookingCompleted {
		return nil, NewValidationError("cannot cancel a completed booking")
	}

	updated, err := s.BookingRepo.UpdateFields(ctx, businessID, bookingID, map[string]interface{}{
		"status": models.BookingCancelled,
	})
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if updated == nil {
		return nil, NewNotFoundError("booking not found")
	}

	meta := map[string]string{}
	if reason != "" {
		meta["reason"] = reason
	}
	action := &models.BookingAction{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		BookingID:  bookingID,
		Action:     models.ActionCancelled,
		ActorType:  actor.Type,
		ActorID:    actor.ActorID,
		Metadata:   meta,
		At:         time.Now(),
	}
	if err := s.BookingRepo.AppendAction(ctx, action); err != nil {
		utils.GetLogger().Warn("failed to record cancel action",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
	return updated, nil
}

// statusTransitions lists the legal moves. Completed and no-show may be
// corrected into each other; cancelled is terminal.
var statusTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingNoShow, models.BookingCancelled},
	models.BookingCompleted: {models.BookingNoShow},
	models.BookingNoShow:    {models.BookingCompleted},
}

func transitionAllowed(from, to models.BookingStatus) bool {
	for _, t := range statusTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func (s *DefaultReservationService) UpdateStatus(ctx context.Context, businessID, bookingID string, status models.BookingStatus, actor models.ActorContext) (*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, NewValidationError(fmt.Sprintf("unknown booking status %q", status))
	}
	b, err := s.BookingRepo.GetByID(ctx, businessID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if b == nil {
		return nil, NewNotFoundError("booking not found")
	}
	if b.Status == status {
		return b, nil
	}
	if status == models.BookingCancelled {
		return s.Cancel(ctx, businessID, bookingID, "", actor)
	}
	if !transitionAllowed(b.Status, status) {
		return nil, NewValidationError(fmt.Sprintf("cannot move a %s booking to %s", b.Status, status))
	}

	updated, err := s.BookingRepo.UpdateFields(ctx, businessID, bookingID, map[string]interface{}{
		"status": status,
	})
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if updated == nil {
		return nil, NewNotFoundError("booking not found")
	}
	action := &models.BookingAction{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		BookingID:  bookingID,
		Action:     models.ActionStatusChanged,
		ActorType:  actor.Type,
		ActorID:    actor.ActorID,
		Metadata:   map[string]string{"from": string(b.Status), "to": string(status)},
		At:         time.Now(),
	}
	if err := s.BookingRepo.AppendAction(ctx, action); err != nil {
		utils.GetLogger().Warn("failed to record status action",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
	return updated, nil
}

// AddNote appends to the customer-visible or internal note field and records
// the audit row.
func (s *DefaultReservationService) AddNote(ctx context.Context, businessID, bookingID, note string, internal bool, actor models.ActorContext) (*models.Booking, error) {
	if strings.TrimSpace(note) == "" {
		return nil, NewValidationError("note must not be empty")
	}
	updated, err := s.BookingRepo.PushNote(ctx, businessID, bookingID, note, internal)
	if err != nil {
		return nil, fmt.Errorf("append note: %w", err)
	}
	if updated == nil {
		return nil, NewNotFoundError("booking not found")
	}
	action := &models.BookingAction{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		BookingID:  bookingID,
		Action:     models.ActionNoted,
		ActorType:  actor.Type,
		ActorID:    actor.ActorID,
		Metadata:   map[string]string{"internal": fmt.Sprintf("%t", internal)},
		At:         time.Now(),
	}
	if err := s.BookingRepo.AppendAction(ctx, action); err != nil {
		utils.GetLogger().Warn("failed to record note action",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
	return updated, nil
}

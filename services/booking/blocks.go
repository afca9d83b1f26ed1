package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "hebelki/database/repository/booking"
	"hebelki/models"
	"hebelki/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BlockSlot reserves an interval with a synthetic admin booking so lunch
// breaks and time off go through the same conflict machinery as real
// bookings. Existing bookings in the interval must be moved first.
func (s *DefaultReservationService) BlockSlot(ctx context.Context, biz *models.Business, req BlockRequest) (*models.Booking, error) {
	startsAt, err := parseBusinessTime(biz, req.StartsAt)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	endsAt, err := parseBusinessTime(biz, req.EndsAt)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	if !endsAt.After(startsAt) {
		return nil, NewValidationError("endsAt must be after startsAt")
	}
	if req.StaffID != "" {
		member, err := s.StaffRepo.GetByID(ctx, biz.ID, req.StaffID)
		if err != nil {
			return nil, fmt.Errorf("load staff member: %w", err)
		}
		if member == nil || !member.Active {
			return nil, NewNotFoundError("staff member not found")
		}
	}

	now := time.Now()
	block := &models.Booking{
		ID:            uuid.New().String(),
		BusinessID:    biz.ID,
		StaffID:       req.StaffID,
		ServiceName:   "Blocked time",
		StartsAt:      startsAt,
		EndsAt:        endsAt,
		Status:        models.BookingConfirmed,
		InternalNotes: req.Reason,
		Source:        models.SourceAdmin,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	meta := map[string]string{"block": "true"}
	if req.Reason != "" {
		meta["reason"] = req.Reason
	}
	action := &models.BookingAction{
		ID:         uuid.New().String(),
		BusinessID: biz.ID,
		BookingID:  block.ID,
		Action:     models.ActionCreated,
		ActorType:  req.Actor.Type,
		ActorID:    req.Actor.ActorID,
		Metadata:   meta,
		At:         now,
	}
	if err := s.BookingRepo.CreateBookingTransactionally(ctx, block, action, now); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, NewSlotUnavailableError("the interval already has bookings; move or cancel them first")
		}
		return nil, fmt.Errorf("block slot: %w", err)
	}
	utils.GetLogger().Info("slot blocked",
		zap.String("businessId", biz.ID),
		zap.String("bookingId", block.ID),
		zap.String("staffId", req.StaffID),
		zap.Time("startsAt", startsAt),
		zap.Time("endsAt", endsAt))
	return localized(block, biz.Location()), nil
}

// UnblockSlot releases a blocked interval. Only synthetic blocks qualify;
// real bookings go through Cancel.
func (s *DefaultReservationService) UnblockSlot(ctx context.Context, businessID, bookingID string, actor models.ActorContext) (*models.Booking, error) {
	b, err := s.BookingRepo.GetByID(ctx, businessID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if b == nil {
		return nil, NewNotFoundError("blocked slot not found")
	}
	if b.ServiceID != "" {
		return nil, NewValidationError("that booking is not a blocked slot")
	}
	if b.Status == models.BookingCancelled {
		return b, nil
	}

	updated, err := s.BookingRepo.UpdateFields(ctx, businessID, bookingID, map[string]interface{}{
		"status": models.BookingCancelled,
	})
	if err != nil {
		return nil, fmt.Errorf("unblock slot: %w", err)
	}
	if updated == nil {
		return nil, NewNotFoundError("blocked slot not found")
	}
	action := &models.BookingAction{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		BookingID:  bookingID,
		Action:     models.ActionCancelled,
		ActorType:  actor.Type,
		ActorID:    actor.ActorID,
		Metadata:   map[string]string{"unblock": "true"},
		At:         time.Now(),
	}
	if err := s.BookingRepo.AppendAction(ctx, action); err != nil {
		utils.GetLogger().Warn("failed to record unblock action",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
	return updated, nil
}

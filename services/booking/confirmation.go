package booking

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
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

// deriveIdempotencyKey fixes the retry identity of a confirm to its hold and
// customer, so a client that never saw the first response can safely send the
// same request again.
func deriveIdempotencyKey(holdID, email string) string {
	sum := sha256.Sum256([]byte(holdID + ":" + email))
	return hex.EncodeToString(sum[:])
}

// newConfirmationToken returns a short code customers can read back over the
// phone, e.g. "9F3A21BC".
func newConfirmationToken() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}

// ConfirmHold turns a live hold into a confirmed booking. Retries with the
// same idempotency key (explicit or derived) get the original booking back,
// even after the hold itself is gone.
func (s *DefaultReservationService) ConfirmHold(ctx context.Context, biz *models.Business, req ConfirmRequest) (*models.Booking, error) {
	if req.HoldID == "" {
		return nil, NewValidationError("holdId is required")
	}
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerEmail) == "" {
		return nil, NewValidationError("customer name and email are required")
	}
	email := strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	if !strings.Contains(email, "@") {
		return nil, NewValidationError("customer email looks invalid")
	}
	key := req.IdempotencyKey
	if key == "" {
		key = deriveIdempotencyKey(req.HoldID, email)
	}
	now := time.Now()
	loc := biz.Location()

	hold, err := s.BookingRepo.GetHold(ctx, biz.ID, req.HoldID)
	if err != nil {
		return nil, fmt.Errorf("load hold: %w", err)
	}
	if hold == nil {
		// Consumed by an earlier confirm, or swept. A retry is answered with
		// the booking that confirm created.
		existing, ferr := s.BookingRepo.GetByIdempotencyKey(ctx, biz.ID, key)
		if ferr != nil {
			return nil, fmt.Errorf("idempotency lookup: %w", ferr)
		}
		if existing != nil {
			return localized(existing, loc), nil
		}
		return nil, NewHoldExpiredError("this hold has expired, please pick a time again")
	}
	if hold.Expired(now) {
		return nil, NewHoldExpiredError("this hold has expired, please pick a time again")
	}

	svc, err := s.ServiceRepo.GetByID(ctx, biz.ID, hold.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("load service: %w", err)
	}
	var price float64
	var serviceName string
	if svc != nil {
		price = svc.Price
		serviceName = svc.Name
	}

	source := req.Source
	if source == "" {
		source = models.SourceAgent
	}
	actorType := req.Actor.Type
	if actorType == "" {
		actorType = models.ActorCustomer
	}

	booking := &models.Booking{
		ID:                uuid.New().String(),
		BusinessID:        biz.ID,
		ServiceID:         hold.ServiceID,
		StaffID:           hold.StaffID,
		ServiceName:       serviceName,
		CustomerName:      req.CustomerName,
		StartsAt:          hold.StartsAt,
		EndsAt:            hold.EndsAt,
		Status:            models.BookingConfirmed,
		ConfirmationToken: newConfirmationToken(),
		Price:             price,
		Notes:             req.Notes,
		Source:            source,
		IdempotencyKey:    key,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	cust := &models.Customer{
		ID:         uuid.New().String(),
		BusinessID: biz.ID,
		Name:       strings.TrimSpace(req.CustomerName),
		Email:      email,
		Phone:      strings.TrimSpace(req.CustomerPhone),
	}
	action := &models.BookingAction{
		ID:         uuid.New().String(),
		BusinessID: biz.ID,
		BookingID:  booking.ID,
		Action:     models.ActionConfirmed,
		ActorType:  actorType,
		ActorID:    req.Actor.ActorID,
		Metadata:   map[string]string{"holdId": hold.ID},
		At:         now,
	}

	result, err := s.BookingRepo.ConfirmHoldTransactionally(ctx, bookingRepo.ConfirmParams{
		BusinessID: biz.ID,
		HoldID:     hold.ID,
		Booking:    booking,
		Customer:   cust,
		Action:     action,
		Now:        now,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrHoldNotFound):
			existing, ferr := s.BookingRepo.GetByIdempotencyKey(ctx, biz.ID, key)
			if ferr == nil && existing != nil {
				return localized(existing, loc), nil
			}
			return nil, NewHoldExpiredError("this hold has expired, please pick a time again")
		case errors.Is(err, bookingRepo.ErrHoldExpired):
			return nil, NewHoldExpiredError("this hold has expired, please pick a time again")
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			return nil, NewSlotUnavailableError("that time was taken while the hold was pending")
		}
		return nil, fmt.Errorf("confirm hold: %w", err)
	}

	utils.GetLogger().Info("booking confirmed",
		zap.String("businessId", biz.ID),
		zap.String("bookingId", result.ID),
		zap.String("holdId", hold.ID),
		zap.Time("startsAt", result.StartsAt))

	s.afterBooking(ctx, biz, result, email)
	return localized(result, loc), nil
}

// afterBooking fires the non-fatal post-commit side effects: confirmation
// message and scheduled reminder.
func (s *DefaultReservationService) afterBooking(ctx context.Context, biz *models.Business, b *models.Booking, email string) {
	logger := utils.GetLogger()
	if s.Notifier != nil && biz.Notifications.SendConfirmations && email != "" {
		s.Notifier.SendBookingConfirmation(ctx, biz, b, email)
	}
	if s.Reminders != nil && biz.Notifications.SendReminders {
		if err := s.Reminders.ScheduleReminder(biz, b); err != nil {
			logger.Warn("failed to schedule reminder",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
}

// localized shifts a booking's interval into the business timezone for
// presentation. The stored document is unaffected.
func localized(b *models.Booking, loc *time.Location) *models.Booking {
	b.StartsAt = b.StartsAt.In(loc)
	b.EndsAt = b.EndsAt.In(loc)
	return b
}

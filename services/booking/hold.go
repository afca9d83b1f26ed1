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

const (
	minHoldTTL     = time.Minute
	maxHoldTTL     = 30 * time.Minute
	defaultHoldTTL = 5 * time.Minute
)

func (s *DefaultReservationService) holdTTL(requestedMinutes int) time.Duration {
	ttl := s.HoldTTL
	if requestedMinutes > 0 {
		ttl = time.Duration(requestedMinutes) * time.Minute
	}
	if ttl <= 0 {
		ttl = defaultHoldTTL
	}
	if ttl < minHoldTTL {
		ttl = minHoldTTL
	}
	if ttl > maxHoldTTL {
		ttl = maxHoldTTL
	}
	return ttl
}

// resolveCandidates turns an optional staff id into the ordered list of
// buckets a reservation may land in. An explicit id yields exactly that
// member; empty yields every qualified member (auto-assign walks them in
// list order), or the business-level bucket when nobody is assigned to the
// service.
func (s *DefaultReservationService) resolveCandidates(ctx context.Context, biz *models.Business, svc *models.Service, staffID string) ([]models.Staff, bool, error) {
	if staffID != "" {
		member, err := s.StaffRepo.GetByID(ctx, biz.ID, staffID)
		if err != nil {
			return nil, false, fmt.Errorf("load staff member: %w", err)
		}
		if member == nil || !member.Active {
			return nil, false, NewNotFoundError("staff member not found")
		}
		if !member.QualifiedFor(svc.ID) {
			return nil, false, NewValidationError(member.Name + " does not offer this service")
		}
		return []models.Staff{*member}, false, nil
	}

	qualified, err := s.StaffRepo.ListQualified(ctx, biz.ID, svc.ID)
	if err != nil {
		return nil, false, fmt.Errorf("list qualified staff: %w", err)
	}
	if len(qualified) == 0 {
		// Nobody is assigned to this service: the business itself is the
		// bookable resource.
		return []models.Staff{{}}, false, nil
	}
	return qualified, true, nil
}

// CreateHold reserves [startsAt, startsAt+duration+buffer) for the hold's
// lifetime. The conflict check and the insert commit atomically, so two
// customers cannot hold the same interval.
func (s *DefaultReservationService) CreateHold(ctx context.Context, biz *models.Business, req HoldRequest) (*HoldResult, error) {
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
	now := time.Now()
	if startsAt.Before(now) {
		return nil, NewValidationError("cannot reserve a time in the past")
	}
	endsAt := startsAt.Add(svc.SlotLength())
	loc := biz.Location()

	candidates, autoAssign, err := s.resolveCandidates(ctx, biz, svc, req.StaffID)
	if err != nil {
		return nil, err
	}

	ttl := s.holdTTL(req.TTLMinutes)
	for i := range candidates {
		cand := &candidates[i]
		hours := biz.Hours
		if cand.ID != "" {
			hours = effectiveHours(biz, cand)
		}
		if !hoursAllow(hours, loc, startsAt, endsAt) {
			if autoAssign {
				continue
			}
			return nil, NewValidationError("that time is outside working hours")
		}

		hold := &models.Hold{
			ID:         uuid.New().String(),
			BusinessID: biz.ID,
			ServiceID:  svc.ID,
			StaffID:    cand.ID,
			StartsAt:   startsAt,
			EndsAt:     endsAt,
			CreatedAt:  now,
			ExpiresAt:  now.Add(ttl),
		}
		err := s.BookingRepo.CreateHoldTransactionally(ctx, hold, now)
		if err == nil {
			utils.GetLogger().Info("hold placed",
				zap.String("businessId", biz.ID),
				zap.String("holdId", hold.ID),
				zap.String("staffId", cand.ID),
				zap.Time("startsAt", startsAt),
				zap.Time("expiresAt", hold.ExpiresAt))
			hold.StartsAt = hold.StartsAt.In(loc)
			hold.EndsAt = hold.EndsAt.In(loc)
			hold.ExpiresAt = hold.ExpiresAt.In(loc)
			return &HoldResult{Hold: hold, StaffName: cand.Name}, nil
		}
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			if autoAssign {
				continue
			}
			return nil, NewSlotUnavailableError("that time is no longer available")
		}
		return nil, fmt.Errorf("place hold: %w", err)
	}
	return nil, NewSlotUnavailableError("no one is free at that time")
}

package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hebelki/models"
)

// intervalBlocked checks a candidate slot against the day's occupancy, read
// once up front. Only the matching staff bucket counts.
func intervalBlocked(staffID string, startsAt, endsAt time.Time, bookings []models.Booking, holds []models.Hold) bool {
	for i := range bookings {
		b := &bookings[i]
		if b.StaffID != staffID || b.Status == models.BookingCancelled {
			continue
		}
		if Overlaps(startsAt, endsAt, b.StartsAt, b.EndsAt) {
			return true
		}
	}
	for i := range holds {
		h := &holds[i]
		if h.StaffID != staffID {
			continue
		}
		if Overlaps(startsAt, endsAt, h.StartsAt, h.EndsAt) {
			return true
		}
	}
	return false
}

// CheckAvailability builds the open-slot grid for one service and day. The
// grid steps by the service's slot length from opening time. It is advisory:
// a listed slot is only secured by placing a hold on it.
func (s *DefaultReservationService) CheckAvailability(ctx context.Context, biz *models.Business, req AvailabilityRequest) (*AvailabilityResponse, error) {
	svc, err := s.ServiceRepo.GetByID(ctx, biz.ID, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("load service: %w", err)
	}
	if svc == nil || !svc.Active {
		return nil, NewNotFoundError("service not found")
	}
	day, err := parseBusinessDate(biz, req.Date)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	candidates, _, err := s.resolveCandidates(ctx, biz, svc, req.StaffID)
	if err != nil {
		return nil, err
	}

	loc := biz.Location()
	now := time.Now()
	dayEnd := day.AddDate(0, 0, 1)

	// One read pair covers every bucket.
	bookings, err := s.BookingRepo.ListBetween(ctx, biz.ID, "", day, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	holds, err := s.BookingRepo.ListLiveHolds(ctx, biz.ID, "", day, dayEnd, now)
	if err != nil {
		return nil, fmt.Errorf("list holds: %w", err)
	}

	length := svc.SlotLength()
	var slots []AvailableSlot
	for i := range candidates {
		cand := &candidates[i]
		hours := biz.Hours
		if cand.ID != "" {
			hours = effectiveHours(biz, cand)
		}
		openAt, closeAt, open := dayWindow(hours, loc, day)
		if !open {
			continue
		}
		for t := openAt; !t.Add(length).After(closeAt); t = t.Add(length) {
			if t.Before(now) {
				continue
			}
			if intervalBlocked(cand.ID, t, t.Add(length), bookings, holds) {
				continue
			}
			slots = append(slots, AvailableSlot{
				StaffID:  cand.ID,
				StartsAt: t.In(loc),
				EndsAt:   t.Add(length).In(loc),
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].StartsAt.Equal(slots[j].StartsAt) {
			return slots[i].StartsAt.Before(slots[j].StartsAt)
		}
		return slots[i].StaffID < slots[j].StaffID
	})
	return &AvailabilityResponse{Date: req.Date, ServiceID: svc.ID, Slots: slots}, nil
}

// StaffSchedule lists one member's non-cancelled bookings for a day.
func (s *DefaultReservationService) StaffSchedule(ctx context.Context, biz *models.Business, staffID, date string) ([]models.Booking, error) {
	member, err := s.StaffRepo.GetByID(ctx, biz.ID, staffID)
	if err != nil {
		return nil, fmt.Errorf("load staff member: %w", err)
	}
	if member == nil {
		return nil, NewNotFoundError("staff member not found")
	}
	day, err := parseBusinessDate(biz, date)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	bookings, err := s.BookingRepo.ListBetween(ctx, biz.ID, staffID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	loc := biz.Location()
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == models.BookingCancelled {
			continue
		}
		localized(&b, loc)
		out = append(out, b)
	}
	return out, nil
}

// DaySummary renders the whole business's day, all statuses included.
func (s *DefaultReservationService) DaySummary(ctx context.Context, biz *models.Business, date string) ([]models.DailySummaryRow, error) {
	day, err := parseBusinessDate(biz, date)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	bookings, err := s.BookingRepo.ListBetween(ctx, biz.ID, "", day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	loc := biz.Location()
	rows := make([]models.DailySummaryRow, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, models.DailySummaryRow{
			BookingID:    b.ID,
			StartsAt:     b.StartsAt.In(loc).Format("15:04"),
			EndsAt:       b.EndsAt.In(loc).Format("15:04"),
			ServiceName:  b.ServiceName,
			CustomerName: b.CustomerName,
			StaffID:      b.StaffID,
			Status:       string(b.Status),
		})
	}
	return rows, nil
}

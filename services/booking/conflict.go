package booking

import (
	"context"
	"time"

	bookingRepo "hebelki/database/repository/booking"
)

// Overlaps reports whether two half-open intervals [start1, end1) and
// [start2, end2) intersect. Touching endpoints do not overlap, so a booking
// ending at 10:00 never conflicts with one starting at 10:00.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

// ConflictChecker answers whether an interval is free for a staff bucket.
// Active bookings and live holds both occupy their interval; cancelled
// bookings and expired holds do not.
type ConflictChecker interface {
	SlotFree(ctx context.Context, businessID, staffID string, startsAt, endsAt, now time.Time, excludeBookingID string) (bool, error)
}

// DefaultConflictChecker reads through the booking repository. The
// transactional write paths repeat these checks inside their transaction;
// this checker serves the advisory reads (availability grids, auto-assign
// candidate filtering).
type DefaultConflictChecker struct {
	Repo bookingRepo.BookingRepository
}

func (c *DefaultConflictChecker) SlotFree(ctx context.Context, businessID, staffID string, startsAt, endsAt, now time.Time, excludeBookingID string) (bool, error) {
	n, err := c.Repo.CountOverlappingBookings(ctx, businessID, staffID, startsAt, endsAt, excludeBookingID)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	n, err = c.Repo.CountOverlappingHolds(ctx, businessID, staffID, startsAt, endsAt, now, "")
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

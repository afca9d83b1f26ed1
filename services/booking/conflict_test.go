package booking

import (
	"context"
	"testing"
	"time"

	"hebelki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2030, 3, 14, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"partial overlap", at(9, 30), at(10, 30), at(10, 0), at(11, 0), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"contained", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"back to back", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"back to back reversed", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"disjoint", at(9, 0), at(10, 0), at(14, 0), at(15, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
			assert.Equal(t, tc.want, Overlaps(tc.s2, tc.e2, tc.s1, tc.e1), "overlap must be symmetric")
		})
	}
}

func TestSlotFree(t *testing.T) {
	repo := &fakeBookingRepo{
		bookings: []models.Booking{
			{ID: "b1", BusinessID: "biz", StaffID: "maria", Status: models.BookingConfirmed, StartsAt: at(9, 30), EndsAt: at(10, 30)},
			{ID: "b2", BusinessID: "biz", StaffID: "maria", Status: models.BookingCancelled, StartsAt: at(13, 0), EndsAt: at(14, 0)},
		},
		holds: []models.Hold{
			{ID: "h1", BusinessID: "biz", StaffID: "maria", StartsAt: at(15, 0), EndsAt: at(16, 0), ExpiresAt: at(12, 0)},
			{ID: "h2", BusinessID: "biz", StaffID: "maria", StartsAt: at(16, 0), EndsAt: at(17, 0), ExpiresAt: at(23, 0)},
		},
	}
	checker := &DefaultConflictChecker{Repo: repo}
	now := at(11, 0)

	t.Run("booked interval is taken", func(t *testing.T) {
		free, err := checker.SlotFree(context.Background(), "biz", "maria", at(10, 0), at(11, 0), now, "")
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("back to back with booking is free", func(t *testing.T) {
		free, err := checker.SlotFree(context.Background(), "biz", "maria", at(10, 30), at(11, 30), now, "")
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("cancelled booking does not count", func(t *testing.T) {
		free, err := checker.SlotFree(context.Background(), "biz", "maria", at(13, 0), at(14, 0), now, "")
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("expired hold does not count", func(t *testing.T) {
		free, err := checker.SlotFree(context.Background(), "biz", "maria", at(15, 0), at(16, 0), now, "")
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("live hold counts", func(t *testing.T) {
		free, err := checker.SlotFree(context.Background(), "biz", "maria", at(16, 30), at(17, 30), now, "")
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("other staff member is unaffected", func(t *testing.T) {
		free, err := checker.SlotFree(context.Background(), "biz", "jonas", at(10, 0), at(11, 0), now, "")
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("own booking excluded for reschedule", func(t *testing.T) {
		free, err := checker.SlotFree(context.Background(), "biz", "maria", at(9, 30), at(10, 30), now, "b1")
		require.NoError(t, err)
		assert.True(t, free)
	})
}

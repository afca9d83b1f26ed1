package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"hebelki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyNotifier struct {
	emails []string
}

func (s *spyNotifier) SendBookingConfirmation(_ context.Context, _ *models.Business, _ *models.Booking, email string) {
	s.emails = append(s.emails, email)
}

type spyReminders struct {
	bookingIDs []string
	err        error
}

func (s *spyReminders) ScheduleReminder(_ *models.Business, b *models.Booking) error {
	if s.err != nil {
		return s.err
	}
	s.bookingIDs = append(s.bookingIDs, b.ID)
	return nil
}

func placeHold(t *testing.T, svc *DefaultReservationService, biz *models.Business, staffID string) *models.Hold {
	t.Helper()
	res, err := svc.CreateHold(context.Background(), biz, HoldRequest{
		ServiceID: "cut",
		StaffID:   staffID,
		StartsAt:  "2030-03-14T10:00",
	})
	require.NoError(t, err)
	return res.Hold
}

func TestConfirmHold(t *testing.T) {
	ctx := context.Background()
	biz := testBusiness()

	t.Run("confirms a live hold", func(t *testing.T) {
		svc, repo := newTestReservation()
		hold := placeHold(t, svc, biz, "jonas")

		b, err := svc.ConfirmHold(ctx, biz, ConfirmRequest{
			HoldID:        hold.ID,
			CustomerName:  "Anna Kowalska",
			CustomerEmail: "Anna@Example.com",
			CustomerPhone: "+48 600 100 200",
		})
		require.NoError(t, err)
		assert.Equal(t, models.BookingConfirmed, b.Status)
		assert.Equal(t, "jonas", b.StaffID)
		assert.Equal(t, "Haircut", b.ServiceName)
		assert.Equal(t, 40.0, b.Price)
		assert.Len(t, b.ConfirmationToken, 8)
		assert.True(t, b.StartsAt.Equal(at(10, 0)))
		assert.True(t, b.EndsAt.Equal(at(11, 0)))

		assert.Empty(t, repo.holds, "confirm consumes the hold")
		require.Len(t, repo.custs, 1)
		assert.Equal(t, "anna@example.com", repo.custs[0].Email)
		assert.Equal(t, repo.custs[0].ID, b.CustomerID)
		require.Len(t, repo.actions, 1)
		assert.Equal(t, models.ActionConfirmed, repo.actions[0].Action)
		assert.Equal(t, hold.ID, repo.actions[0].Metadata["holdId"])
	})

	t.Run("fires confirmation and reminder", func(t *testing.T) {
		svc, _ := newTestReservation()
		notifier := &spyNotifier{}
		reminders := &spyReminders{}
		svc.Notifier = notifier
		svc.Reminders = reminders
		hold := placeHold(t, svc, biz, "jonas")

		b, err := svc.ConfirmHold(ctx, biz, ConfirmRequest{
			HoldID:        hold.ID,
			CustomerName:  "Anna",
			CustomerEmail: "anna@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"anna@example.com"}, notifier.emails)
		assert.Equal(t, []string{b.ID}, reminders.bookingIDs)
	})

	t.Run("reminder failure does not fail the confirm", func(t *testing.T) {
		svc, _ := newTestReservation()
		svc.Reminders = &spyReminders{err: errors.New("queue down")}
		hold := placeHold(t, svc, biz, "jonas")

		b, err := svc.ConfirmHold(ctx, biz, ConfirmRequest{
			HoldID:        hold.ID,
			CustomerName:  "Anna",
			CustomerEmail: "anna@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, models.BookingConfirmed, b.Status)
	})

	t.Run("confirm inside the hold window succeeds", func(t *testing.T) {
		svc, repo := newTestReservation()
		hold := placeHold(t, svc, biz, "jonas")
		repo.holds[0].ExpiresAt = time.Now().Add(2 * time.Minute)

		_, err := svc.ConfirmHold(ctx, biz, ConfirmRequest{
			HoldID:        hold.ID,
			CustomerName:  "Anna",
			CustomerEmail: "anna@example.com",
		})
		assert.NoError(t, err)
	})

	t.Run("confirm after expiry is rejected", func(t *testing.T) {
		svc, repo := newTestReservation()
		hold := placeHold(t, svc, biz, "jonas")
		repo.holds[0].ExpiresAt = time.Now().Add(-time.Minute)

		_, err := svc.ConfirmHold(ctx, biz, ConfirmRequest{
			HoldID:        hold.ID,
			CustomerName:  "Anna",
			CustomerEmail: "anna@example.com",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeHoldExpired, re.Code)
		assert.Len(t, repo.holds, 1, "an expired hold is left for the sweeper")
	})

	t.Run("double confirm returns the same booking", func(t *testing.T) {
		svc, repo := newTestReservation()
		hold := placeHold(t, svc, biz, "jonas")
		req := ConfirmRequest{
			HoldID:        hold.ID,
			CustomerName:  "Anna",
			CustomerEmail: "anna@example.com",
		}

		first, err := svc.ConfirmHold(ctx, biz, req)
		require.NoError(t, err)
		second, err := svc.ConfirmHold(ctx, biz, req)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, repo.bookings, 1)
	})

	t.Run("retry with explicit idempotency key after hold is gone", func(t *testing.T) {
		svc, repo := newTestReservation()
		hold := placeHold(t, svc, biz, "jonas")
		req := ConfirmRequest{
			HoldID:         hold.ID,
			CustomerName:   "Anna",
			CustomerEmail:  "anna@example.com",
			IdempotencyKey: "req-7712",
		}

		first, err := svc.ConfirmHold(ctx, biz, req)
		require.NoError(t, err)
		require.Empty(t, repo.holds)

		second, err := svc.ConfirmHold(ctx, biz, req)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("unknown hold with no earlier booking reads as expired", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.ConfirmHold(ctx, biz, ConfirmRequest{
			HoldID:        "ghost",
			CustomerName:  "Anna",
			CustomerEmail: "anna@example.com",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeHoldExpired, re.Code)
	})

	t.Run("slot taken while hold was pending", func(t *testing.T) {
		svc, repo := newTestReservation()
		hold := placeHold(t, svc, biz, "jonas")
		// A walk-in was written straight into the book while the hold sat
		// unconfirmed.
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "walkin", BusinessID: "biz", StaffID: "jonas",
			Status:   models.BookingConfirmed,
			StartsAt: at(10, 30), EndsAt: at(11, 30),
		})

		_, err := svc.ConfirmHold(ctx, biz, ConfirmRequest{
			HoldID:        hold.ID,
			CustomerName:  "Anna",
			CustomerEmail: "anna@example.com",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeSlotUnavailable, re.Code)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		svc, _ := newTestReservation()
		hold := placeHold(t, svc, biz, "jonas")

		cases := []struct {
			name string
			req  ConfirmRequest
		}{
			{"no hold id", ConfirmRequest{CustomerName: "Anna", CustomerEmail: "anna@example.com"}},
			{"no name", ConfirmRequest{HoldID: hold.ID, CustomerEmail: "anna@example.com"}},
			{"no email", ConfirmRequest{HoldID: hold.ID, CustomerName: "Anna"}},
			{"bad email", ConfirmRequest{HoldID: hold.ID, CustomerName: "Anna", CustomerEmail: "not-an-email"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.ConfirmHold(ctx, biz, tc.req)
				re := AsReservationError(err)
				require.NotNil(t, re)
				assert.Equal(t, CodeValidation, re.Code)
			})
		}
	})
}

func TestDeriveIdempotencyKey(t *testing.T) {
	a := deriveIdempotencyKey("hold-1", "anna@example.com")
	b := deriveIdempotencyKey("hold-1", "anna@example.com")
	c := deriveIdempotencyKey("hold-2", "anna@example.com")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

package booking

import (
	"context"
	"testing"
	"time"

	"hebelki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHold(t *testing.T) {
	ctx := context.Background()
	biz := testBusiness()

	t.Run("places hold for explicit member", func(t *testing.T) {
		svc, repo := newTestReservation()
		before := time.Now()
		res, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut",
			StaffID:   "maria",
			StartsAt:  "2030-03-14T10:00",
		})
		require.NoError(t, err)
		require.NotNil(t, res.Hold)
		assert.Equal(t, "maria", res.Hold.StaffID)
		assert.Equal(t, "Maria", res.StaffName)
		assert.True(t, res.Hold.StartsAt.Equal(at(10, 0)))
		assert.True(t, res.Hold.EndsAt.Equal(at(11, 0)), "slot length is duration plus buffer")
		assert.WithinDuration(t, before.Add(5*time.Minute), res.Hold.ExpiresAt, 2*time.Second)
		assert.Len(t, repo.holds, 1)
	})

	t.Run("auto assigns first free member", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "busy", BusinessID: "biz", StaffID: "jonas",
			Status:   models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		res, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut",
			StartsAt:  "2030-03-14T10:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "maria", res.Hold.StaffID, "Jonas is busy, Maria is next in order")
		assert.Equal(t, "Maria", res.StaffName)
	})

	t.Run("taken slot is rejected for explicit member", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "busy", BusinessID: "biz", StaffID: "maria",
			Status:   models.BookingConfirmed,
			StartsAt: at(9, 30), EndsAt: at(10, 30),
		})
		_, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut",
			StaffID:   "maria",
			StartsAt:  "2030-03-14T10:00",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeSlotUnavailable, re.Code)
	})

	t.Run("all members busy", func(t *testing.T) {
		svc, repo := newTestReservation()
		for _, id := range []string{"jonas", "maria"} {
			repo.bookings = append(repo.bookings, models.Booking{
				ID: "busy-" + id, BusinessID: "biz", StaffID: id,
				Status:   models.BookingConfirmed,
				StartsAt: at(10, 0), EndsAt: at(11, 0),
			})
		}
		_, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut",
			StartsAt:  "2030-03-14T10:00",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeSlotUnavailable, re.Code)
	})

	t.Run("live hold blocks a second hold", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut", StaffID: "maria", StartsAt: "2030-03-14T10:00",
		})
		require.NoError(t, err)
		_, err = svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut", StaffID: "maria", StartsAt: "2030-03-14T10:30",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeSlotUnavailable, re.Code)
	})

	t.Run("back to back hold is fine", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut", StaffID: "maria", StartsAt: "2030-03-14T10:00",
		})
		require.NoError(t, err)
		_, err = svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut", StaffID: "maria", StartsAt: "2030-03-14T11:00",
		})
		require.NoError(t, err)
	})

	t.Run("unknown service", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "nope", StartsAt: "2030-03-14T10:00",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeNotFound, re.Code)
	})

	t.Run("archived service", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "massage", StartsAt: "2030-03-14T10:00",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeNotFound, re.Code)
	})

	t.Run("past time rejected", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut", StaffID: "maria", StartsAt: "2020-01-06T10:00",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeValidation, re.Code)
	})

	t.Run("outside working hours", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut", StaffID: "maria", StartsAt: "2030-03-14T16:30",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeValidation, re.Code, "slot would end past closing")
	})

	t.Run("closed day", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut", StaffID: "maria", StartsAt: "2030-03-17T10:00",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeValidation, re.Code, "sunday is not configured")
	})

	t.Run("inactive member", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut", StaffID: "paula", StartsAt: "2030-03-14T10:00",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeNotFound, re.Code)
	})

	t.Run("unqualified member", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "sauna", StaffID: "maria", StartsAt: "2030-03-14T10:00",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeValidation, re.Code)
	})

	t.Run("business bucket when nobody is assigned", func(t *testing.T) {
		svc, repo := newTestReservation()
		res, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "sauna", StartsAt: "2030-03-14T10:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "", res.Hold.StaffID)
		assert.Equal(t, "", res.StaffName)

		// The bucket holds one reservation at a time.
		_, err = svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "sauna", StartsAt: "2030-03-14T10:30",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeSlotUnavailable, re.Code)
		assert.Len(t, repo.holds, 1)
	})

	t.Run("requested ttl is clamped", func(t *testing.T) {
		svc, _ := newTestReservation()
		before := time.Now()
		res, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut", StaffID: "maria", StartsAt: "2030-03-14T10:00",
			TTLMinutes: 240,
		})
		require.NoError(t, err)
		assert.WithinDuration(t, before.Add(30*time.Minute), res.Hold.ExpiresAt, 2*time.Second)
	})
}

func TestHoldTTLClamp(t *testing.T) {
	svc := &DefaultReservationService{HoldTTL: 5 * time.Minute}
	assert.Equal(t, 5*time.Minute, svc.holdTTL(0))
	assert.Equal(t, 10*time.Minute, svc.holdTTL(10))
	assert.Equal(t, 30*time.Minute, svc.holdTTL(45))

	misconfigured := &DefaultReservationService{HoldTTL: 2 * time.Hour}
	assert.Equal(t, 30*time.Minute, misconfigured.holdTTL(0))

	unset := &DefaultReservationService{}
	assert.Equal(t, 5*time.Minute, unset.holdTTL(0))
}

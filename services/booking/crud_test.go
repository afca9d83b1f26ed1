package booking

import (
	"context"
	"testing"

	"hebelki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDirect(t *testing.T) {
	ctx := context.Background()
	biz := testBusiness()
	actor := models.ActorContext{Type: models.ActorStaff, ActorID: "jonas"}

	t.Run("books for an existing customer", func(t *testing.T) {
		svc, repo := newTestReservation()
		custs := svc.CustomerRepo.(*fakeCustomerRepo)
		custs.custs = append(custs.custs, models.Customer{
			ID: "cust-1", BusinessID: "biz", Name: "Anna", Email: "anna@example.com",
		})

		b, err := svc.CreateDirect(ctx, biz, DirectRequest{
			ServiceID:  "cut",
			StaffID:    "jonas",
			CustomerID: "cust-1",
			StartsAt:   "2030-03-14T10:00",
			Actor:      actor,
		})
		require.NoError(t, err)
		assert.Equal(t, "cust-1", b.CustomerID)
		assert.Equal(t, "Anna", b.CustomerName)
		assert.Equal(t, models.SourceAdmin, b.Source)
		assert.Equal(t, models.BookingConfirmed, b.Status)
		require.Len(t, repo.actions, 1)
		assert.Equal(t, models.ActionCreated, repo.actions[0].Action)
		assert.Equal(t, models.ActorStaff, repo.actions[0].ActorType)
	})

	t.Run("creates the customer when the email is new", func(t *testing.T) {
		svc, _ := newTestReservation()
		b, err := svc.CreateDirect(ctx, biz, DirectRequest{
			ServiceID:     "cut",
			StaffID:       "jonas",
			CustomerName:  "Piotr Nowak",
			CustomerEmail: "Piotr@Example.com",
			StartsAt:      "2030-03-14T10:00",
			Actor:         actor,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, b.CustomerID)

		custs := svc.CustomerRepo.(*fakeCustomerRepo)
		require.Len(t, custs.custs, 1)
		assert.Equal(t, "piotr@example.com", custs.custs[0].Email)
	})

	t.Run("new email without a name is rejected", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.CreateDirect(ctx, biz, DirectRequest{
			ServiceID:     "cut",
			StaffID:       "jonas",
			CustomerEmail: "piotr@example.com",
			StartsAt:      "2030-03-14T10:00",
			Actor:         actor,
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeValidation, re.Code)
	})

	t.Run("unknown customer id", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.CreateDirect(ctx, biz, DirectRequest{
			ServiceID:  "cut",
			StaffID:    "jonas",
			CustomerID: "nobody",
			StartsAt:   "2030-03-14T10:00",
			Actor:      actor,
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeNotFound, re.Code)
	})

	t.Run("may book outside working hours", func(t *testing.T) {
		svc, _ := newTestReservation()
		b, err := svc.CreateDirect(ctx, biz, DirectRequest{
			ServiceID:     "cut",
			StaffID:       "jonas",
			CustomerName:  "Anna",
			CustomerEmail: "anna@example.com",
			StartsAt:      "2030-03-14T19:00",
			Actor:         actor,
		})
		require.NoError(t, err, "staff can deliberately book after close")
		assert.True(t, b.StartsAt.Equal(at(19, 0)))
	})

	t.Run("conflicting slot is rejected", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "busy", BusinessID: "biz", StaffID: "jonas",
			Status:   models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		_, err := svc.CreateDirect(ctx, biz, DirectRequest{
			ServiceID:     "cut",
			StaffID:       "jonas",
			CustomerName:  "Anna",
			CustomerEmail: "anna@example.com",
			StartsAt:      "2030-03-14T10:30",
			Actor:         actor,
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeSlotUnavailable, re.Code)
	})

	t.Run("a live hold blocks a direct booking", func(t *testing.T) {
		svc, _ := newTestReservation()
		placeHold(t, svc, biz, "jonas")
		_, err := svc.CreateDirect(ctx, biz, DirectRequest{
			ServiceID:     "cut",
			StaffID:       "jonas",
			CustomerName:  "Anna",
			CustomerEmail: "anna@example.com",
			StartsAt:      "2030-03-14T10:00",
			Actor:         actor,
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeSlotUnavailable, re.Code, "someone mid-checkout keeps their slot")
	})

	t.Run("auto assigns around a busy member", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "busy", BusinessID: "biz", StaffID: "jonas",
			Status:   models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		b, err := svc.CreateDirect(ctx, biz, DirectRequest{
			ServiceID:     "cut",
			CustomerName:  "Anna",
			CustomerEmail: "anna@example.com",
			StartsAt:      "2030-03-14T10:00",
			Actor:         actor,
		})
		require.NoError(t, err)
		assert.Equal(t, "maria", b.StaffID)
	})
}

func TestReschedule(t *testing.T) {
	ctx := context.Background()
	biz := testBusiness()
	actor := models.ActorContext{Type: models.ActorStaff, ActorID: "jonas"}

	t.Run("moves a booking and keeps its length", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
			Status:   models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 30),
		})
		b, err := svc.Reschedule(ctx, biz, RescheduleRequest{
			BookingID: "b1",
			StartsAt:  "2030-03-14T13:00",
			Actor:     actor,
		})
		require.NoError(t, err)
		assert.True(t, b.StartsAt.Equal(at(13, 0)))
		assert.True(t, b.EndsAt.Equal(at(14, 30)), "the 90 minute length travels with the booking")
		assert.Equal(t, "jonas", b.StaffID)

		require.Len(t, repo.actions, 1)
		assert.Equal(t, models.ActionRescheduled, repo.actions[0].Action)
		assert.Contains(t, repo.actions[0].Metadata["from"], "10:00")
		assert.Contains(t, repo.actions[0].Metadata["to"], "13:00")
	})

	t.Run("own slot does not count as a conflict", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
			Status:   models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		b, err := svc.Reschedule(ctx, biz, RescheduleRequest{
			BookingID: "b1",
			StartsAt:  "2030-03-14T10:30",
			Actor:     actor,
		})
		require.NoError(t, err)
		assert.True(t, b.StartsAt.Equal(at(10, 30)))
	})

	t.Run("occupied target window fails", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings,
			models.Booking{
				ID: "b1", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
				Status:   models.BookingConfirmed,
				StartsAt: at(10, 0), EndsAt: at(11, 0),
			},
			models.Booking{
				ID: "b2", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
				Status:   models.BookingConfirmed,
				StartsAt: at(13, 0), EndsAt: at(14, 0),
			})
		_, err := svc.Reschedule(ctx, biz, RescheduleRequest{
			BookingID: "b2",
			StartsAt:  "2030-03-14T10:30",
			Actor:     actor,
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeSlotUnavailable, re.Code)
	})

	t.Run("back to back with the neighbour is fine", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings,
			models.Booking{
				ID: "b1", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
				Status:   models.BookingConfirmed,
				StartsAt: at(10, 0), EndsAt: at(11, 0),
			},
			models.Booking{
				ID: "b2", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
				Status:   models.BookingConfirmed,
				StartsAt: at(13, 0), EndsAt: at(14, 0),
			})
		b, err := svc.Reschedule(ctx, biz, RescheduleRequest{
			BookingID: "b2",
			StartsAt:  "2030-03-14T11:00",
			Actor:     actor,
		})
		require.NoError(t, err)
		assert.True(t, b.StartsAt.Equal(at(11, 0)))
	})

	t.Run("hands over to a qualified member", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
			Status:   models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		b, err := svc.Reschedule(ctx, biz, RescheduleRequest{
			BookingID: "b1",
			StartsAt:  "2030-03-14T10:00",
			StaffID:   "maria",
			Actor:     actor,
		})
		require.NoError(t, err)
		assert.Equal(t, "maria", b.StaffID)
	})

	t.Run("rejects an unqualified member", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", ServiceID: "sauna", StaffID: "",
			Status:   models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		_, err := svc.Reschedule(ctx, biz, RescheduleRequest{
			BookingID: "b1",
			StartsAt:  "2030-03-14T10:00",
			StaffID:   "maria",
			Actor:     actor,
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeValidation, re.Code)
	})

	t.Run("rejects an inactive member", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
			Status:   models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		_, err := svc.Reschedule(ctx, biz, RescheduleRequest{
			BookingID: "b1",
			StartsAt:  "2030-03-14T10:00",
			StaffID:   "paula",
			Actor:     actor,
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeNotFound, re.Code)
	})

	t.Run("cancelled bookings stay where they are", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
			Status:   models.BookingCancelled,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		_, err := svc.Reschedule(ctx, biz, RescheduleRequest{
			BookingID: "b1",
			StartsAt:  "2030-03-14T13:00",
			Actor:     actor,
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeValidation, re.Code)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.Reschedule(ctx, biz, RescheduleRequest{
			BookingID: "nope",
			StartsAt:  "2030-03-14T13:00",
			Actor:     actor,
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeNotFound, re.Code)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	actor := models.ActorContext{Type: models.ActorOwner}

	t.Run("cancels and records the reason", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
			Status:   models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		b, err := svc.Cancel(ctx, "biz", "b1", "customer called in sick", actor)
		require.NoError(t, err)
		assert.Equal(t, models.BookingCancelled, b.Status)
		require.Len(t, repo.actions, 1)
		assert.Equal(t, models.ActionCancelled, repo.actions[0].Action)
		assert.Equal(t, "customer called in sick", repo.actions[0].Metadata["reason"])
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
			Status:   models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		_, err := svc.Cancel(ctx, "biz", "b1", "", actor)
		require.NoError(t, err)
		b, err := svc.Cancel(ctx, "biz", "b1", "", actor)
		require.NoError(t, err)
		assert.Equal(t, models.BookingCancelled, b.Status)
		assert.Len(t, repo.actions, 1, "the second cancel records nothing")
	})

	t.Run("frees the slot for new holds", func(t *testing.T) {
		svc, repo := newTestReservation()
		biz := testBusiness()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
			Status:   models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		_, err := svc.Cancel(ctx, "biz", "b1", "", actor)
		require.NoError(t, err)

		res, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut",
			StaffID:   "jonas",
			StartsAt:  "2030-03-14T10:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "jonas", res.Hold.StaffID)
	})

	t.Run("completed bookings cannot be cancelled", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
			Status:   models.BookingCompleted,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		_, err := svc.Cancel(ctx, "biz", "b1", "", actor)
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeValidation, re.Code)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.Cancel(ctx, "biz", "nope", "", actor)
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeNotFound, re.Code)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	actor := models.ActorContext{Type: models.ActorStaff, ActorID: "jonas"}

	run := func(t *testing.T, from, to models.BookingStatus) error {
		t.Helper()
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
			Status:   from,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		_, err := svc.UpdateStatus(ctx, "biz", "b1", to, actor)
		return err
	}

	t.Run("legal transitions", func(t *testing.T) {
		cases := []struct{ from, to models.BookingStatus }{
			{models.BookingPending, models.BookingConfirmed},
			{models.BookingPending, models.BookingCancelled},
			{models.BookingConfirmed, models.BookingCompleted},
			{models.BookingConfirmed, models.BookingNoShow},
			{models.BookingConfirmed, models.BookingCancelled},
			{models.BookingCompleted, models.BookingNoShow},
			{models.BookingNoShow, models.BookingCompleted},
		}
		for _, tc := range cases {
			assert.NoError(t, run(t, tc.from, tc.to), "%s -> %s", tc.from, tc.to)
		}
	})

	t.Run("illegal transitions", func(t *testing.T) {
		cases := []struct{ from, to models.BookingStatus }{
			{models.BookingPending, models.BookingCompleted},
			{models.BookingPending, models.BookingNoShow},
			{models.BookingCompleted, models.BookingConfirmed},
			{models.BookingCancelled, models.BookingConfirmed},
			{models.BookingNoShow, models.BookingPending},
		}
		for _, tc := range cases {
			err := run(t, tc.from, tc.to)
			re := AsReservationError(err)
			require.NotNil(t, re, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, CodeValidation, re.Code)
		}
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", Status: models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		b, err := svc.UpdateStatus(ctx, "biz", "b1", models.BookingConfirmed, actor)
		require.NoError(t, err)
		assert.Equal(t, models.BookingConfirmed, b.Status)
		assert.Empty(t, repo.actions)
	})

	t.Run("cancel goes through the cancel path", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", Status: models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		b, err := svc.UpdateStatus(ctx, "biz", "b1", models.BookingCancelled, actor)
		require.NoError(t, err)
		assert.Equal(t, models.BookingCancelled, b.Status)
		require.Len(t, repo.actions, 1)
		assert.Equal(t, models.ActionCancelled, repo.actions[0].Action)
	})

	t.Run("records the transition", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", Status: models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		_, err := svc.UpdateStatus(ctx, "biz", "b1", models.BookingNoShow, actor)
		require.NoError(t, err)
		require.Len(t, repo.actions, 1)
		assert.Equal(t, models.ActionStatusChanged, repo.actions[0].Action)
		assert.Equal(t, "confirmed", repo.actions[0].Metadata["from"])
		assert.Equal(t, "no_show", repo.actions[0].Metadata["to"])
	})

	t.Run("unknown status string", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.UpdateStatus(ctx, "biz", "b1", models.BookingStatus("archived"), actor)
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeValidation, re.Code)
	})
}

func TestAddNote(t *testing.T) {
	ctx := context.Background()
	actor := models.ActorContext{Type: models.ActorStaff, ActorID: "jonas"}

	t.Run("appends visible and internal notes", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", Status: models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		b, err := svc.AddNote(ctx, "biz", "b1", "bring the colour samples", false, actor)
		require.NoError(t, err)
		assert.Equal(t, "bring the colour samples", b.Notes)

		b, err = svc.AddNote(ctx, "biz", "b1", "regular, prefers quiet", true, actor)
		require.NoError(t, err)
		assert.Equal(t, "regular, prefers quiet", b.InternalNotes)
		assert.Equal(t, "bring the colour samples", b.Notes)

		require.Len(t, repo.actions, 2)
		assert.Equal(t, models.ActionNoted, repo.actions[0].Action)
		assert.Equal(t, "true", repo.actions[1].Metadata["internal"])
	})

	t.Run("empty note is rejected", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.AddNote(ctx, "biz", "b1", "   ", false, actor)
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeValidation, re.Code)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.AddNote(ctx, "biz", "nope", "hello", false, actor)
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeNotFound, re.Code)
	})
}

func TestBlockSlot(t *testing.T) {
	ctx := context.Background()
	biz := testBusiness()
	actor := models.ActorContext{Type: models.ActorOwner}

	t.Run("blocked interval refuses holds", func(t *testing.T) {
		svc, _ := newTestReservation()
		block, err := svc.BlockSlot(ctx, biz, BlockRequest{
			StaffID:  "jonas",
			StartsAt: "2030-03-14T12:00",
			EndsAt:   "2030-03-14T13:00",
			Reason:   "lunch",
			Actor:    actor,
		})
		require.NoError(t, err)
		assert.Equal(t, "Blocked time", block.ServiceName)
		assert.Equal(t, "", block.ServiceID)
		assert.Equal(t, "lunch", block.InternalNotes)

		_, err = svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut",
			StaffID:   "jonas",
			StartsAt:  "2030-03-14T12:30",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeSlotUnavailable, re.Code)
	})

	t.Run("business level block only covers the shared bucket", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.BlockSlot(ctx, biz, BlockRequest{
			StartsAt: "2030-03-14T12:00",
			EndsAt:   "2030-03-14T13:00",
			Actor:    actor,
		})
		require.NoError(t, err)

		_, err = svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "sauna",
			StartsAt:  "2030-03-14T12:00",
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeSlotUnavailable, re.Code, "the sauna lives in the shared bucket")

		res, err := svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut",
			StaffID:   "jonas",
			StartsAt:  "2030-03-14T12:00",
		})
		require.NoError(t, err, "per-member calendars are not affected")
		assert.Equal(t, "jonas", res.Hold.StaffID)
	})

	t.Run("interval with bookings cannot be blocked", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
			Status:   models.BookingConfirmed,
			StartsAt: at(12, 0), EndsAt: at(13, 0),
		})
		_, err := svc.BlockSlot(ctx, biz, BlockRequest{
			StaffID:  "jonas",
			StartsAt: "2030-03-14T12:30",
			EndsAt:   "2030-03-14T13:30",
			Actor:    actor,
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeSlotUnavailable, re.Code)
	})

	t.Run("reversed interval is rejected", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.BlockSlot(ctx, biz, BlockRequest{
			StaffID:  "jonas",
			StartsAt: "2030-03-14T13:00",
			EndsAt:   "2030-03-14T12:00",
			Actor:    actor,
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeValidation, re.Code)
	})

	t.Run("unknown member", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.BlockSlot(ctx, biz, BlockRequest{
			StaffID:  "ghost",
			StartsAt: "2030-03-14T12:00",
			EndsAt:   "2030-03-14T13:00",
			Actor:    actor,
		})
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeNotFound, re.Code)
	})
}

func TestUnblockSlot(t *testing.T) {
	ctx := context.Background()
	biz := testBusiness()
	actor := models.ActorContext{Type: models.ActorOwner}

	t.Run("releases the interval", func(t *testing.T) {
		svc, _ := newTestReservation()
		block, err := svc.BlockSlot(ctx, biz, BlockRequest{
			StaffID:  "jonas",
			StartsAt: "2030-03-14T12:00",
			EndsAt:   "2030-03-14T13:00",
			Actor:    actor,
		})
		require.NoError(t, err)

		unblocked, err := svc.UnblockSlot(ctx, "biz", block.ID, actor)
		require.NoError(t, err)
		assert.Equal(t, models.BookingCancelled, unblocked.Status)

		_, err = svc.CreateHold(ctx, biz, HoldRequest{
			ServiceID: "cut",
			StaffID:   "jonas",
			StartsAt:  "2030-03-14T12:00",
		})
		assert.NoError(t, err, "the slot is bookable again")
	})

	t.Run("refuses real bookings", func(t *testing.T) {
		svc, repo := newTestReservation()
		repo.bookings = append(repo.bookings, models.Booking{
			ID: "b1", BusinessID: "biz", ServiceID: "cut", StaffID: "jonas",
			Status:   models.BookingConfirmed,
			StartsAt: at(10, 0), EndsAt: at(11, 0),
		})
		_, err := svc.UnblockSlot(ctx, "biz", "b1", actor)
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeValidation, re.Code)
	})

	t.Run("unblocking twice is a no-op", func(t *testing.T) {
		svc, repo := newTestReservation()
		block, err := svc.BlockSlot(ctx, biz, BlockRequest{
			StaffID:  "jonas",
			StartsAt: "2030-03-14T12:00",
			EndsAt:   "2030-03-14T13:00",
			Actor:    actor,
		})
		require.NoError(t, err)

		_, err = svc.UnblockSlot(ctx, "biz", block.ID, actor)
		require.NoError(t, err)
		actionsAfterFirst := len(repo.actions)
		b, err := svc.UnblockSlot(ctx, "biz", block.ID, actor)
		require.NoError(t, err)
		assert.Equal(t, models.BookingCancelled, b.Status)
		assert.Len(t, repo.actions, actionsAfterFirst)
	})

	t.Run("unknown slot", func(t *testing.T) {
		svc, _ := newTestReservation()
		_, err := svc.UnblockSlot(ctx, "biz", "nope", actor)
		re := AsReservationError(err)
		require.NotNil(t, re)
		assert.Equal(t, CodeNotFound, re.Code)
	})
}

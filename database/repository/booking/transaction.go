// File: database/repository/booking/transaction.go
package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hebelki/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sentinel errors surfaced by the transactional write paths. Callers map them
// to their own failure codes with errors.Is.
var (
	ErrSlotTaken       = errors.New("slot already taken")
	ErrHoldNotFound    = errors.New("hold not found")
	ErrHoldExpired     = errors.New("hold has expired")
	ErrBookingNotFound = errors.New("booking not found")
)

// errDuplicateConfirm marks an idempotency-key collision inside the confirm
// transaction; the retried request is answered with the existing booking.
var errDuplicateConfirm = errors.New("duplicate confirm")

// guardDays lists the UTC days an interval touches, one guard document each.
func guardDays(startsAt, endsAt time.Time) []string {
	var days []string
	day := startsAt.UTC().Truncate(24 * time.Hour)
	for day.Before(endsAt.UTC()) {
		days = append(days, day.Format("2006-01-02"))
		day = day.Add(24 * time.Hour)
	}
	if len(days) == 0 {
		days = append(days, startsAt.UTC().Format("2006-01-02"))
	}
	return days
}

// touchSlotGuards bumps one guard document per (staff, day) the interval
// touches. Two transactions racing for the same staff member's day then write
// the same document, so Mongo aborts one with a transient write conflict and
// the retry re-runs its overlap check against the winner's committed state.
// This is what serializes the check-then-insert sequence.
func (r *mongoBookingRepo) touchSlotGuards(sc mongo.SessionContext, businessID, staffID string, startsAt, endsAt time.Time) error {
	opts := options.Update().SetUpsert(true)
	for _, day := range guardDays(startsAt, endsAt) {
		filter := bson.M{"businessId": businessID, "staffId": staffID, "day": day}
		if _, err := r.guardColl.UpdateOne(sc, filter, bson.M{"$inc": bson.M{"seq": 1}}, opts); err != nil {
			return fmt.Errorf("failed to touch slot guard: %w", err)
		}
	}
	return nil
}

func isTransientTxnError(err error) bool {
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorLabel("TransientTransactionError")
	}
	return false
}

// runTxn executes fn inside a multi-document transaction, retrying up to
// three times on transient write conflicts (the expected outcome when two
// writers touch the same slot guard).
func (r *mongoBookingRepo) runTxn(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	for attempt := 1; ; attempt++ {
		err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			if err := sc.StartTransaction(); err != nil {
				return err
			}
			if err := fn(sc); err != nil {
				_ = sc.AbortTransaction(sc)
				return err
			}
			return sc.CommitTransaction(sc)
		})
		if err == nil || attempt >= 3 || !isTransientTxnError(err) {
			return err
		}
	}
}

// CreateHoldTransactionally places a hold iff its interval is free of active
// bookings and live holds at commit time.
func (r *mongoBookingRepo) CreateHoldTransactionally(ctx context.Context, hold *models.Hold, now time.Time) error {
	err := r.runTxn(ctx, func(sc mongo.SessionContext) error {
		if err := r.touchSlotGuards(sc, hold.BusinessID, hold.StaffID, hold.StartsAt, hold.EndsAt); err != nil {
			return err
		}
		n, err := r.countOverlappingBookings(sc, hold.BusinessID, hold.StaffID, hold.StartsAt, hold.EndsAt, "")
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrSlotTaken
		}
		n, err = r.countOverlappingHolds(sc, hold.BusinessID, hold.StaffID, hold.StartsAt, hold.EndsAt, now, "")
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrSlotTaken
		}
		if _, err := r.holdColl.InsertOne(sc, hold); err != nil {
			return fmt.Errorf("insert hold failed: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return ErrSlotTaken
		}
		return fmt.Errorf("hold transaction failed: %w", err)
	}
	return nil
}

// ConfirmHoldTransactionally converts a hold into a booking: it re-reads the
// hold, re-verifies no booking slipped into the interval, upserts the customer
// by email, inserts the booking, consumes the hold and appends the audit row,
// all in one transaction. A retried confirm that trips the idempotency index
// gets the already-created booking back instead of an error.
func (r *mongoBookingRepo) ConfirmHoldTransactionally(ctx context.Context, p ConfirmParams) (*models.Booking, error) {
	booking := p.Booking
	err := r.runTxn(ctx, func(sc mongo.SessionContext) error {
		var hold models.Hold
		if err := r.holdColl.FindOne(sc, bson.M{"businessId": p.BusinessID, "id": p.HoldID}).Decode(&hold); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrHoldNotFound
			}
			return fmt.Errorf("fetch hold failed: %w", err)
		}
		if hold.Expired(p.Now) {
			return ErrHoldExpired
		}

		if err := r.touchSlotGuards(sc, p.BusinessID, hold.StaffID, hold.StartsAt, hold.EndsAt); err != nil {
			return err
		}

		// The hold shields its interval from other holds; only a booking that
		// arrived through the direct staff path can still collide.
		n, err := r.countOverlappingBookings(sc, p.BusinessID, hold.StaffID, hold.StartsAt, hold.EndsAt, "")
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrSlotTaken
		}

		set := bson.M{"name": p.Customer.Name, "updatedAt": p.Now}
		if p.Customer.Phone != "" {
			set["phone"] = p.Customer.Phone
		}
		upsert := bson.M{
			"$set": set,
			"$setOnInsert": bson.M{
				"id":         p.Customer.ID,
				"businessId": p.BusinessID,
				"email":      p.Customer.Email,
				"createdAt":  p.Now,
			},
		}
		opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
		var stored models.Customer
		if err := r.customerColl.FindOneAndUpdate(sc,
			bson.M{"businessId": p.BusinessID, "email": p.Customer.Email},
			upsert, opts).Decode(&stored); err != nil {
			return fmt.Errorf("customer upsert failed: %w", err)
		}
		booking.CustomerID = stored.ID
		booking.CustomerName = stored.Name

		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return errDuplicateConfirm
			}
			return fmt.Errorf("insert booking failed: %w", err)
		}
		if _, err := r.holdColl.DeleteOne(sc, bson.M{"businessId": p.BusinessID, "id": p.HoldID}); err != nil {
			return fmt.Errorf("consume hold failed: %w", err)
		}
		if _, err := r.actionColl.InsertOne(sc, p.Action); err != nil {
			return fmt.Errorf("insert booking action failed: %w", err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errDuplicateConfirm):
			existing, ferr := r.GetByIdempotencyKey(ctx, p.BusinessID, booking.IdempotencyKey)
			if ferr != nil {
				return nil, ferr
			}
			if existing != nil {
				return existing, nil
			}
			return nil, fmt.Errorf("confirm transaction failed: %w", err)
		case errors.Is(err, ErrHoldNotFound), errors.Is(err, ErrHoldExpired), errors.Is(err, ErrSlotTaken):
			return nil, err
		}
		return nil, fmt.Errorf("confirm transaction failed: %w", err)
	}
	return booking, nil
}

// CreateBookingTransactionally inserts a booking directly (staff/admin path),
// guarded by the same overlap checks the hold path uses. Live holds block it:
// a customer mid-checkout keeps their slot.
func (r *mongoBookingRepo) CreateBookingTransactionally(ctx context.Context, booking *models.Booking, action *models.BookingAction, now time.Time) error {
	err := r.runTxn(ctx, func(sc mongo.SessionContext) error {
		if err := r.touchSlotGuards(sc, booking.BusinessID, booking.StaffID, booking.StartsAt, booking.EndsAt); err != nil {
			return err
		}
		n, err := r.countOverlappingBookings(sc, booking.BusinessID, booking.StaffID, booking.StartsAt, booking.EndsAt, "")
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrSlotTaken
		}
		n, err = r.countOverlappingHolds(sc, booking.BusinessID, booking.StaffID, booking.StartsAt, booking.EndsAt, now, "")
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrSlotTaken
		}
		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		if _, err := r.actionColl.InsertOne(sc, action); err != nil {
			return fmt.Errorf("insert booking action failed: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// RescheduleTransactionally moves a booking to a new interval (and possibly a
// new staff member) iff the target interval is free, ignoring the booking's
// own current slot.
func (r *mongoBookingRepo) RescheduleTransactionally(ctx context.Context, businessID, bookingID, staffID string, startsAt, endsAt, now time.Time, action *models.BookingAction) (*models.Booking, error) {
	var updated models.Booking
	err := r.runTxn(ctx, func(sc mongo.SessionContext) error {
		if err := r.touchSlotGuards(sc, businessID, staffID, startsAt, endsAt); err != nil {
			return err
		}
		n, err := r.countOverlappingBookings(sc, businessID, staffID, startsAt, endsAt, bookingID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrSlotTaken
		}
		n, err = r.countOverlappingHolds(sc, businessID, staffID, startsAt, endsAt, now, "")
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrSlotTaken
		}

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = r.bookingColl.FindOneAndUpdate(sc,
			bson.M{"businessId": businessID, "id": bookingID},
			bson.M{"$set": bson.M{
				"staffId":   staffID,
				"startsAt":  startsAt,
				"endsAt":    endsAt,
				"updatedAt": now,
			}}, opts).Decode(&updated)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrBookingNotFound
			}
			return fmt.Errorf("reschedule update failed: %w", err)
		}
		if _, err := r.actionColl.InsertOne(sc, action); err != nil {
			return fmt.Errorf("insert booking action failed: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrBookingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("reschedule transaction failed: %w", err)
	}
	return &updated, nil
}

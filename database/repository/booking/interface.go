// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"hebelki/database"
	"hebelki/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingQuery narrows a booking search. Zero-valued fields are ignored.
type BookingQuery struct {
	BusinessID string
	CustomerID string
	StaffID    string
	ServiceID  string
	Status     models.BookingStatus
	From       time.Time
	To         time.Time
	Limit      int64
}

// ConfirmParams carries everything the confirm transaction needs. Booking must
// be fully built by the caller except for CustomerID/CustomerName, which are
// filled from the customer upsert inside the transaction.
type ConfirmParams struct {
	BusinessID string
	HoldID     string
	Booking    *models.Booking
	Customer   *models.Customer
	Action     *models.BookingAction
	Now        time.Time
}

// BookingRepository owns the bookings, holds and booking_actions collections.
// The write paths that must not double-book run as multi-document transactions
// so a conflict check and the insert it guards commit atomically.
type BookingRepository interface {
	GetByID(ctx context.Context, businessID, id string) (*models.Booking, error)
	GetByIdempotencyKey(ctx context.Context, businessID, key string) (*models.Booking, error)
	UpdateFields(ctx context.Context, businessID, id string, fields map[string]interface{}) (*models.Booking, error)
	PushNote(ctx context.Context, businessID, id, note string, internal bool) (*models.Booking, error)

	Search(ctx context.Context, q BookingQuery) ([]models.Booking, error)
	ListBetween(ctx context.Context, businessID, staffID string, from, to time.Time) ([]models.Booking, error)
	ListByCustomer(ctx context.Context, businessID, customerID string, limit int64) ([]models.Booking, error)

	CountOverlappingBookings(ctx context.Context, businessID, staffID string, startsAt, endsAt time.Time, excludeID string) (int64, error)
	CountOverlappingHolds(ctx context.Context, businessID, staffID string, startsAt, endsAt, now time.Time, excludeHoldID string) (int64, error)

	GetHold(ctx context.Context, businessID, holdID string) (*models.Hold, error)
	ListLiveHolds(ctx context.Context, businessID, staffID string, from, to, now time.Time) ([]models.Hold, error)
	DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error)

	CreateHoldTransactionally(ctx context.Context, hold *models.Hold, now time.Time) error
	ConfirmHoldTransactionally(ctx context.Context, p ConfirmParams) (*models.Booking, error)
	CreateBookingTransactionally(ctx context.Context, booking *models.Booking, action *models.BookingAction, now time.Time) error
	RescheduleTransactionally(ctx context.Context, businessID, bookingID, staffID string, startsAt, endsAt, now time.Time, action *models.BookingAction) (*models.Booking, error)

	AppendAction(ctx context.Context, a *models.BookingAction) error
	ListActions(ctx context.Context, businessID, bookingID string) ([]models.BookingAction, error)

	SumRevenue(ctx context.Context, businessID string, from, to time.Time) (float64, error)
	CountByStatus(ctx context.Context, businessID string, from, to time.Time) (map[string]int, error)
	CountPerDay(ctx context.Context, businessID string, from, to time.Time, tz string) (map[string]int, error)
	NoShowRows(ctx context.Context, businessID string, from, to time.Time) (int, []models.NoShowRepeatRow, error)

	EnsureIndexes() error
}

type mongoBookingRepo struct {
	bookingColl  *mongo.Collection
	holdColl     *mongo.Collection
	actionColl   *mongo.Collection
	customerColl *mongo.Collection
	guardColl    *mongo.Collection
}

// NewMongoBookingRepo constructs a Mongo-backed BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoBookingRepo{
		bookingColl:  db.Collection("bookings"),
		holdColl:     db.Collection("holds"),
		actionColl:   db.Collection("booking_actions"),
		customerColl: db.Collection("customers"),
		guardColl:    db.Collection("slot_guards"),
	}
}

package booking

import (
	"context"
	"time"

	bookingRepo "hebelki/database/repository/booking"
	businessRepo "hebelki/database/repository/business"
	customerRepo "hebelki/database/repository/customer"
	serviceRepo "hebelki/database/repository/service"
	staffRepo "hebelki/database/repository/staff"
	"hebelki/models"
)

// AvailabilityRequest asks for the open slots of one service on one day.
// Date is "YYYY-MM-DD" in the business timezone; StaffID narrows to one
// member, empty means all qualified members (or the business-level bucket).
type AvailabilityRequest struct {
	ServiceID string
	StaffID   string
	Date      string
}

// AvailableSlot is one bookable interval. Times carry the business timezone
// offset so they render naturally in conversation.
type AvailableSlot struct {
	StaffID  string    `json:"staffId,omitempty"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

// AvailabilityResponse is the advisory slot grid for one day. Slots can be
// stale the moment they are returned; only a hold reserves anything.
type AvailabilityResponse struct {
	Date      string          `json:"date"`
	ServiceID string          `json:"serviceId"`
	Slots     []AvailableSlot `json:"slots"`
}

// HoldRequest places a provisional reservation. StartsAt accepts RFC3339 or
// "YYYY-MM-DDTHH:MM" in the business timezone. An empty StaffID auto-assigns
// the first free qualified member, or the business-level bucket when the
// business has no per-member assignment for the service. TTLMinutes zero
// means the configured default.
type HoldRequest struct {
	ServiceID  string
	StaffID    string
	StartsAt   string
	TTLMinutes int
}

// HoldResult is a placed hold plus the resolved member's display name.
type HoldResult struct {
	Hold      *models.Hold `json:"hold"`
	StaffName string       `json:"staffName,omitempty"`
}

// ConfirmRequest converts a hold into a booking. IdempotencyKey is optional;
// when empty one is derived from the hold and customer email so a retried
// confirm returns the same booking.
type ConfirmRequest struct {
	HoldID         string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	Notes          string
	IdempotencyKey string
	Source         models.BookingSource
	Actor          models.ActorContext
}

// DirectRequest creates a booking without a hold (staff dashboard path).
// Either CustomerID or CustomerEmail+CustomerName identifies the customer;
// an unknown email creates the record.
type DirectRequest struct {
	ServiceID     string
	StaffID       string
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	StartsAt      string
	Notes         string
	Actor         models.ActorContext
}

// RescheduleRequest moves a booking. An empty StaffID keeps the current
// member.
type RescheduleRequest struct {
	BookingID string
	StartsAt  string
	StaffID   string
	Actor     models.ActorContext
}

// BlockRequest reserves an interval against bookings (lunch, maintenance,
// time off). An empty StaffID blocks the business-level bucket.
type BlockRequest struct {
	StaffID  string
	StartsAt string
	EndsAt   string
	Reason   string
	Actor    models.ActorContext
}

// ConfirmationNotifier delivers the post-booking confirmation message.
// Failures are logged, never surfaced: the booking already exists.
type ConfirmationNotifier interface {
	SendBookingConfirmation(ctx context.Context, biz *models.Business, b *models.Booking, email string)
}

// ReminderScheduler queues the pre-appointment reminder for a confirmed
// booking.
type ReminderScheduler interface {
	ScheduleReminder(biz *models.Business, b *models.Booking) error
}

// ReservationService is the write path for everything that occupies time:
// holds, bookings, blocks. All conflict decisions funnel through here.
type ReservationService interface {
	CheckAvailability(ctx context.Context, biz *models.Business, req AvailabilityRequest) (*AvailabilityResponse, error)
	CreateHold(ctx context.Context, biz *models.Business, req HoldRequest) (*HoldResult, error)
	ConfirmHold(ctx context.Context, biz *models.Business, req ConfirmRequest) (*models.Booking, error)
	CreateDirect(ctx context.Context, biz *models.Business, req DirectRequest) (*models.Booking, error)
	Reschedule(ctx context.Context, biz *models.Business, req RescheduleRequest) (*models.Booking, error)
	Cancel(ctx context.Context, businessID, bookingID, reason string, actor models.ActorContext) (*models.Booking, error)
	UpdateStatus(ctx context.Context, businessID, bookingID string, status models.BookingStatus, actor models.ActorContext) (*models.Booking, error)
	AddNote(ctx context.Context, businessID, bookingID, note string, internal bool, actor models.ActorContext) (*models.Booking, error)
	BlockSlot(ctx context.Context, biz *models.Business, req BlockRequest) (*models.Booking, error)
	UnblockSlot(ctx context.Context, businessID, bookingID string, actor models.ActorContext) (*models.Booking, error)
	StaffSchedule(ctx context.Context, biz *models.Business, staffID, date string) ([]models.Booking, error)
	DaySummary(ctx context.Context, biz *models.Business, date string) ([]models.DailySummaryRow, error)
}

// DefaultReservationService implements ReservationService on the Mongo
// repositories.
type DefaultReservationService struct {
	BusinessRepo businessRepo.BusinessRepository
	ServiceRepo  serviceRepo.ServiceRepository
	StaffRepo    staffRepo.StaffRepository
	BookingRepo  bookingRepo.BookingRepository
	CustomerRepo customerRepo.CustomerRepository

	Notifier  ConfirmationNotifier
	Reminders ReminderScheduler

	// HoldTTL is the default hold lifetime; per-request values are clamped to
	// [1m, 30m].
	HoldTTL time.Duration
}

package booking

import (
	"context"
	"sort"
	"strings"
	"time"

	bookingRepo "hebelki/database/repository/booking"
	"hebelki/models"

	"github.com/google/uuid"
)

// In-memory repository fakes. They reproduce the conflict and idempotency
// semantics of the Mongo implementations closely enough for the service
// layer to be exercised without a database.

type fakeBookingRepo struct {
	bookings []models.Booking
	holds    []models.Hold
	actions  []models.BookingAction
	custs    []models.Customer
}

func (f *fakeBookingRepo) GetByID(_ context.Context, businessID, id string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].BusinessID == businessID && f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) GetByIdempotencyKey(_ context.Context, businessID, key string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].BusinessID == businessID && f.bookings[i].IdempotencyKey == key {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) UpdateFields(_ context.Context, businessID, id string, fields map[string]interface{}) (*models.Booking, error) {
	for i := range f.bookings {
		b := &f.bookings[i]
		if b.BusinessID != businessID || b.ID != id {
			continue
		}
		if v, ok := fields["status"]; ok {
			b.Status = v.(models.BookingStatus)
		}
		b.UpdatedAt = time.Now()
		out := *b
		return &out, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) PushNote(_ context.Context, businessID, id, note string, internal bool) (*models.Booking, error) {
	for i := range f.bookings {
		b := &f.bookings[i]
		if b.BusinessID != businessID || b.ID != id {
			continue
		}
		if internal {
			if b.InternalNotes != "" {
				note = b.InternalNotes + "\n" + note
			}
			b.InternalNotes = note
		} else {
			if b.Notes != "" {
				note = b.Notes + "\n" + note
			}
			b.Notes = note
		}
		out := *b
		return &out, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) Search(_ context.Context, q bookingRepo.BookingQuery) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.BusinessID != q.BusinessID {
			continue
		}
		if q.CustomerID != "" && b.CustomerID != q.CustomerID {
			continue
		}
		if q.StaffID != "" && b.StaffID != q.StaffID {
			continue
		}
		if q.ServiceID != "" && b.ServiceID != q.ServiceID {
			continue
		}
		if q.Status != "" && b.Status != q.Status {
			continue
		}
		if !q.From.IsZero() && b.StartsAt.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && !b.StartsAt.Before(q.To) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (f *fakeBookingRepo) ListBetween(_ context.Context, businessID, staffID string, from, to time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.BusinessID != businessID {
			continue
		}
		if staffID != "" && b.StaffID != staffID {
			continue
		}
		if b.StartsAt.Before(to) && b.EndsAt.After(from) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (f *fakeBookingRepo) ListByCustomer(_ context.Context, businessID, customerID string, _ int64) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.BusinessID == businessID && b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountOverlappingBookings(_ context.Context, businessID, staffID string, startsAt, endsAt time.Time, excludeID string) (int64, error) {
	return f.countBookings(businessID, staffID, startsAt, endsAt, excludeID), nil
}

func (f *fakeBookingRepo) countBookings(businessID, staffID string, startsAt, endsAt time.Time, excludeID string) int64 {
	var n int64
	for _, b := range f.bookings {
		if b.BusinessID != businessID || b.StaffID != staffID || b.ID == excludeID {
			continue
		}
		if b.Status == models.BookingCancelled {
			continue
		}
		if Overlaps(startsAt, endsAt, b.StartsAt, b.EndsAt) {
			n++
		}
	}
	return n
}

func (f *fakeBookingRepo) CountOverlappingHolds(_ context.Context, businessID, staffID string, startsAt, endsAt, now time.Time, excludeHoldID string) (int64, error) {
	return f.countHolds(businessID, staffID, startsAt, endsAt, now, excludeHoldID), nil
}

func (f *fakeBookingRepo) countHolds(businessID, staffID string, startsAt, endsAt, now time.Time, excludeHoldID string) int64 {
	var n int64
	for _, h := range f.holds {
		if h.BusinessID != businessID || h.StaffID != staffID || h.ID == excludeHoldID {
			continue
		}
		if !h.ExpiresAt.After(now) {
			continue
		}
		if Overlaps(startsAt, endsAt, h.StartsAt, h.EndsAt) {
			n++
		}
	}
	return n
}

func (f *fakeBookingRepo) GetHold(_ context.Context, businessID, holdID string) (*models.Hold, error) {
	for i := range f.holds {
		if f.holds[i].BusinessID == businessID && f.holds[i].ID == holdID {
			h := f.holds[i]
			return &h, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) ListLiveHolds(_ context.Context, businessID, staffID string, from, to, now time.Time) ([]models.Hold, error) {
	var out []models.Hold
	for _, h := range f.holds {
		if h.BusinessID != businessID {
			continue
		}
		if staffID != "" && h.StaffID != staffID {
			continue
		}
		if !h.ExpiresAt.After(now) {
			continue
		}
		if h.StartsAt.Before(to) && h.EndsAt.After(from) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) DeleteExpiredHolds(_ context.Context, now time.Time) (int64, error) {
	var kept []models.Hold
	var removed int64
	for _, h := range f.holds {
		if h.ExpiresAt.After(now) {
			kept = append(kept, h)
		} else {
			removed++
		}
	}
	f.holds = kept
	return removed, nil
}

func (f *fakeBookingRepo) CreateHoldTransactionally(_ context.Context, hold *models.Hold, now time.Time) error {
	if f.countBookings(hold.BusinessID, hold.StaffID, hold.StartsAt, hold.EndsAt, "") > 0 {
		return bookingRepo.ErrSlotTaken
	}
	if f.countHolds(hold.BusinessID, hold.StaffID, hold.StartsAt, hold.EndsAt, now, "") > 0 {
		return bookingRepo.ErrSlotTaken
	}
	f.holds = append(f.holds, *hold)
	return nil
}

func (f *fakeBookingRepo) ConfirmHoldTransactionally(_ context.Context, p bookingRepo.ConfirmParams) (*models.Booking, error) {
	var hold *models.Hold
	for i := range f.holds {
		if f.holds[i].BusinessID == p.BusinessID && f.holds[i].ID == p.HoldID {
			hold = &f.holds[i]
			break
		}
	}
	if hold == nil {
		return nil, bookingRepo.ErrHoldNotFound
	}
	if hold.Expired(p.Now) {
		return nil, bookingRepo.ErrHoldExpired
	}
	if f.countBookings(p.BusinessID, hold.StaffID, hold.StartsAt, hold.EndsAt, "") > 0 {
		return nil, bookingRepo.ErrSlotTaken
	}
	for i := range f.bookings {
		if f.bookings[i].BusinessID == p.BusinessID && f.bookings[i].IdempotencyKey == p.Booking.IdempotencyKey {
			b := f.bookings[i]
			return &b, nil
		}
	}

	var cust *models.Customer
	for i := range f.custs {
		if f.custs[i].BusinessID == p.BusinessID && f.custs[i].Email == p.Customer.Email {
			cust = &f.custs[i]
			break
		}
	}
	if cust == nil {
		c := *p.Customer
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		f.custs = append(f.custs, c)
		cust = &f.custs[len(f.custs)-1]
	} else {
		cust.Name = p.Customer.Name
	}
	p.Booking.CustomerID = cust.ID
	p.Booking.CustomerName = cust.Name

	f.bookings = append(f.bookings, *p.Booking)
	var kept []models.Hold
	for _, h := range f.holds {
		if h.ID != p.HoldID {
			kept = append(kept, h)
		}
	}
	f.holds = kept
	f.actions = append(f.actions, *p.Action)
	return p.Booking, nil
}

func (f *fakeBookingRepo) CreateBookingTransactionally(_ context.Context, booking *models.Booking, action *models.BookingAction, now time.Time) error {
	if f.countBookings(booking.BusinessID, booking.StaffID, booking.StartsAt, booking.EndsAt, "") > 0 {
		return bookingRepo.ErrSlotTaken
	}
	if f.countHolds(booking.BusinessID, booking.StaffID, booking.StartsAt, booking.EndsAt, now, "") > 0 {
		return bookingRepo.ErrSlotTaken
	}
	f.bookings = append(f.bookings, *booking)
	f.actions = append(f.actions, *action)
	return nil
}

func (f *fakeBookingRepo) RescheduleTransactionally(_ context.Context, businessID, bookingID, staffID string, startsAt, endsAt, now time.Time, action *models.BookingAction) (*models.Booking, error) {
	if f.countBookings(businessID, staffID, startsAt, endsAt, bookingID) > 0 {
		return nil, bookingRepo.ErrSlotTaken
	}
	if f.countHolds(businessID, staffID, startsAt, endsAt, now, "") > 0 {
		return nil, bookingRepo.ErrSlotTaken
	}
	for i := range f.bookings {
		b := &f.bookings[i]
		if b.BusinessID != businessID || b.ID != bookingID {
			continue
		}
		b.StaffID = staffID
		b.StartsAt = startsAt
		b.EndsAt = endsAt
		b.UpdatedAt = now
		f.actions = append(f.actions, *action)
		out := *b
		return &out, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) AppendAction(_ context.Context, a *models.BookingAction) error {
	f.actions = append(f.actions, *a)
	return nil
}

func (f *fakeBookingRepo) ListActions(_ context.Context, businessID, bookingID string) ([]models.BookingAction, error) {
	var out []models.BookingAction
	for _, a := range f.actions {
		if a.BusinessID == businessID && a.BookingID == bookingID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) SumRevenue(_ context.Context, businessID string, from, to time.Time) (float64, error) {
	var total float64
	for _, b := range f.bookings {
		if b.BusinessID != businessID {
			continue
		}
		if b.Status != models.BookingConfirmed && b.Status != models.BookingCompleted {
			continue
		}
		if !b.StartsAt.Before(from) && b.StartsAt.Before(to) {
			total += b.Price
		}
	}
	return total, nil
}

func (f *fakeBookingRepo) CountByStatus(_ context.Context, businessID string, from, to time.Time) (map[string]int, error) {
	counts := map[string]int{}
	for _, b := range f.bookings {
		if b.BusinessID != businessID {
			continue
		}
		if !b.StartsAt.Before(from) && b.StartsAt.Before(to) {
			counts[string(b.Status)]++
		}
	}
	return counts, nil
}

func (f *fakeBookingRepo) CountPerDay(_ context.Context, businessID string, from, to time.Time, tz string) (map[string]int, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	counts := map[string]int{}
	for _, b := range f.bookings {
		if b.BusinessID != businessID || b.Status == models.BookingCancelled {
			continue
		}
		if !b.StartsAt.Before(from) && b.StartsAt.Before(to) {
			counts[b.StartsAt.In(loc).Format("2006-01-02")]++
		}
	}
	return counts, nil
}

func (f *fakeBookingRepo) NoShowRows(_ context.Context, businessID string, from, to time.Time) (int, []models.NoShowRepeatRow, error) {
	perCustomer := map[string]*models.NoShowRepeatRow{}
	total := 0
	for _, b := range f.bookings {
		if b.BusinessID != businessID || b.Status != models.BookingNoShow {
			continue
		}
		if b.StartsAt.Before(from) || !b.StartsAt.Before(to) {
			continue
		}
		total++
		row, ok := perCustomer[b.CustomerID]
		if !ok {
			row = &models.NoShowRepeatRow{CustomerID: b.CustomerID, CustomerName: b.CustomerName}
			perCustomer[b.CustomerID] = row
		}
		row.Count++
	}
	var repeats []models.NoShowRepeatRow
	for _, row := range perCustomer {
		if row.Count > 1 {
			repeats = append(repeats, *row)
		}
	}
	return total, repeats, nil
}

func (f *fakeBookingRepo) EnsureIndexes() error { return nil }

type fakeServiceRepo struct {
	services []models.Service
}

func (f *fakeServiceRepo) Create(_ context.Context, s *models.Service) error {
	f.services = append(f.services, *s)
	return nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, businessID, id string) (*models.Service, error) {
	for i := range f.services {
		if f.services[i].BusinessID == businessID && f.services[i].ID == id {
			s := f.services[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeServiceRepo) List(_ context.Context, businessID string, activeOnly bool) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.BusinessID != businessID {
			continue
		}
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeServiceRepo) UpdateFields(_ context.Context, businessID, id string, fields map[string]interface{}) (*models.Service, error) {
	return f.GetByID(context.Background(), businessID, id)
}

func (f *fakeServiceRepo) Archive(_ context.Context, businessID, id string) error {
	for i := range f.services {
		if f.services[i].BusinessID == businessID && f.services[i].ID == id {
			f.services[i].Active = false
		}
	}
	return nil
}

func (f *fakeServiceRepo) EnsureIndexes() error { return nil }

type fakeStaffRepo struct {
	members []models.Staff
}

func (f *fakeStaffRepo) Create(_ context.Context, s *models.Staff) error {
	f.members = append(f.members, *s)
	return nil
}

func (f *fakeStaffRepo) GetByID(_ context.Context, businessID, id string) (*models.Staff, error) {
	for i := range f.members {
		if f.members[i].BusinessID == businessID && f.members[i].ID == id {
			m := f.members[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeStaffRepo) GetByEmail(_ context.Context, businessID, email string) (*models.Staff, error) {
	for i := range f.members {
		if f.members[i].BusinessID == businessID && strings.EqualFold(f.members[i].Email, email) {
			m := f.members[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeStaffRepo) List(_ context.Context, businessID string, activeOnly bool) ([]models.Staff, error) {
	var out []models.Staff
	for _, m := range f.members {
		if m.BusinessID != businessID {
			continue
		}
		if activeOnly && !m.Active {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeStaffRepo) ListQualified(_ context.Context, businessID, serviceID string) ([]models.Staff, error) {
	var out []models.Staff
	for _, m := range f.members {
		if m.BusinessID != businessID || !m.Active {
			continue
		}
		if m.QualifiedFor(serviceID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeStaffRepo) UpdateFields(_ context.Context, businessID, id string, fields map[string]interface{}) (*models.Staff, error) {
	return f.GetByID(context.Background(), businessID, id)
}

func (f *fakeStaffRepo) SetAllowedTools(_ context.Context, businessID, id string, tools []string) error {
	for i := range f.members {
		if f.members[i].BusinessID == businessID && f.members[i].ID == id {
			f.members[i].AllowedTools = tools
		}
	}
	return nil
}

func (f *fakeStaffRepo) SetTokenHash(_ context.Context, businessID, id, tokenHash string) error {
	return nil
}

func (f *fakeStaffRepo) EnsureIndexes() error { return nil }

type fakeCustomerRepo struct {
	custs []models.Customer
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *models.Customer) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	f.custs = append(f.custs, *c)
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, businessID, id string) (*models.Customer, error) {
	for i := range f.custs {
		if f.custs[i].BusinessID == businessID && f.custs[i].ID == id {
			c := f.custs[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) GetByEmail(_ context.Context, businessID, email string) (*models.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for i := range f.custs {
		if f.custs[i].BusinessID == businessID && f.custs[i].Email == email {
			c := f.custs[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) List(_ context.Context, businessID string, _ int64) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range f.custs {
		if c.BusinessID == businessID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) Search(_ context.Context, businessID, query string, _ int64) ([]models.Customer, error) {
	query = strings.ToLower(query)
	var out []models.Customer
	for _, c := range f.custs {
		if c.BusinessID != businessID {
			continue
		}
		if strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(c.Email, query) ||
			strings.Contains(c.Phone, query) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) UpdateFields(_ context.Context, businessID, id string, fields map[string]interface{}) (*models.Customer, error) {
	return f.GetByID(context.Background(), businessID, id)
}

func (f *fakeCustomerRepo) AddNote(_ context.Context, businessID, id string, note models.CustomerNote) error {
	for i := range f.custs {
		if f.custs[i].BusinessID == businessID && f.custs[i].ID == id {
			f.custs[i].Notes = append(f.custs[i].Notes, note)
		}
	}
	return nil
}

func (f *fakeCustomerRepo) MarkDeletionRequested(_ context.Context, businessID, email string) (*models.Customer, error) {
	return f.GetByEmail(context.Background(), businessID, email)
}

func (f *fakeCustomerRepo) Anonymize(_ context.Context, businessID, id string) (*models.Customer, error) {
	return f.GetByID(context.Background(), businessID, id)
}

func (f *fakeCustomerRepo) EnsureIndexes() error { return nil }

func testBusiness() *models.Business {
	hours := map[string]models.DayHours{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		hours[day] = models.DayHours{Open: "09:00", Close: "17:00"}
	}
	return &models.Business{
		ID:       "biz",
		Slug:     "glow-studio",
		Name:     "Glow Studio",
		Timezone: "UTC",
		Currency: "EUR",
		Hours:    hours,
		Notifications: models.NotificationSettings{
			SendConfirmations: true,
			SendReminders:     true,
			ReminderLeadHours: 24,
		},
	}
}

// newTestReservation wires a reservation service over fresh fakes. The
// catalog has a 60-minute haircut handled by Jonas and Maria (auto-assign
// walks them in that order), an archived massage, and a sauna nobody is
// assigned to.
func newTestReservation() (*DefaultReservationService, *fakeBookingRepo) {
	repo := &fakeBookingRepo{}
	svc := &DefaultReservationService{
		ServiceRepo: &fakeServiceRepo{services: []models.Service{
			{ID: "cut", BusinessID: "biz", Name: "Haircut", DurationMinutes: 50, BufferMinutes: 10, Price: 40, Active: true},
			{ID: "massage", BusinessID: "biz", Name: "Massage", DurationMinutes: 60, Price: 60, Active: false},
			{ID: "sauna", BusinessID: "biz", Name: "Sauna", DurationMinutes: 60, Price: 25, Active: true},
		}},
		StaffRepo: &fakeStaffRepo{members: []models.Staff{
			{ID: "jonas", BusinessID: "biz", Name: "Jonas", ServiceIDs: []string{"cut"}, Active: true},
			{ID: "maria", BusinessID: "biz", Name: "Maria", ServiceIDs: []string{"cut"}, Active: true},
			{ID: "paula", BusinessID: "biz", Name: "Paula", ServiceIDs: []string{"cut"}, Active: false},
		}},
		BookingRepo:  repo,
		CustomerRepo: &fakeCustomerRepo{},
		HoldTTL:      5 * time.Minute,
	}
	return svc, repo
}

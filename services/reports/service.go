// File: services/reports/service.go
package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hebelki/models"
)

// period resolves an inclusive "YYYY-MM-DD" date pair into the half-open
// instant range [from 00:00, to+1d 00:00) in the business timezone.
func period(biz *models.Business, from, to string) (time.Time, time.Time, error) {
	loc := biz.Location()
	start, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(from), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("unrecognized date %q, want YYYY-MM-DD", from)
	}
	end, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(to), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("unrecognized date %q, want YYYY-MM-DD", to)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("period end %s lies before start %s", to, from)
	}
	return start, end.AddDate(0, 0, 1), nil
}

// WeekOverview counts bookings per day for the seven days starting at
// weekStart.
func (s *DefaultReportService) WeekOverview(ctx context.Context, biz *models.Business, weekStart string) (*models.WeekOverview, error) {
	loc := biz.Location()
	start, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(weekStart), loc)
	if err != nil {
		return nil, fmt.Errorf("unrecognized date %q, want YYYY-MM-DD", weekStart)
	}
	end := start.AddDate(0, 0, 7)

	counts, err := s.Bookings.CountPerDay(ctx, biz.ID, start, end, biz.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings per day: %w", err)
	}

	// Every day of the week appears, booked or not.
	days := make(map[string]int, 7)
	total := 0
	for d := 0; d < 7; d++ {
		key := start.AddDate(0, 0, d).Format("2006-01-02")
		days[key] = counts[key]
		total += counts[key]
	}
	return &models.WeekOverview{
		From:  start.Format("2006-01-02"),
		To:    start.AddDate(0, 0, 6).Format("2006-01-02"),
		Days:  days,
		Total: total,
	}, nil
}

// Revenue combines booking revenue with invoice totals for the period.
func (s *DefaultReportService) Revenue(ctx context.Context, biz *models.Business, from, to string) (*models.RevenueReport, error) {
	start, end, err := period(biz, from, to)
	if err != nil {
		return nil, err
	}
	bookingRevenue, err := s.Bookings.SumRevenue(ctx, biz.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum booking revenue: %w", err)
	}
	totals, err := s.Invoices.Totals(ctx, biz.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to total invoices: %w", err)
	}
	return &models.RevenueReport{
		From:            from,
		To:              to,
		BookingRevenue:  bookingRevenue,
		InvoicedTotal:   totals.Invoiced,
		PaidTotal:       totals.Paid,
		OutstandingOpen: totals.Outstanding,
		Currency:        biz.Currency,
	}, nil
}

// BookingStats breaks the period's bookings down by lifecycle status.
func (s *DefaultReportService) BookingStats(ctx context.Context, biz *models.Business, from, to string) (*models.BookingStats, error) {
	start, end, err := period(biz, from, to)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.Bookings.CountByStatus(ctx, biz.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}
	total := 0
	for _, n := range byStatus {
		total += n
	}
	return &models.BookingStats{
		From:     from,
		To:       to,
		ByStatus: byStatus,
		Total:    total,
	}, nil
}

// NoShows lists the period's missed appointments and the customers who
// repeat.
func (s *DefaultReportService) NoShows(ctx context.Context, biz *models.Business, from, to string) (*models.NoShowReport, error) {
	start, end, err := period(biz, from, to)
	if err != nil {
		return nil, err
	}
	total, repeats, err := s.Bookings.NoShowRows(ctx, biz.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate no-shows: %w", err)
	}
	return &models.NoShowReport{
		From:    from,
		To:      to,
		Total:   total,
		Repeats: repeats,
	}, nil
}

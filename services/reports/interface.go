// File: services/reports/interface.go
package reports

import (
	"context"

	bookingRepo "hebelki/database/repository/booking"
	invoiceRepo "hebelki/database/repository/invoice"
	"hebelki/models"
)

// ReportService answers the owner's aggregate questions. Everything is
// read-only; the heavy lifting happens in Mongo aggregation pipelines.
type ReportService interface {
	WeekOverview(ctx context.Context, biz *models.Business, weekStart string) (*models.WeekOverview, error)
	Revenue(ctx context.Context, biz *models.Business, from, to string) (*models.RevenueReport, error)
	BookingStats(ctx context.Context, biz *models.Business, from, to string) (*models.BookingStats, error)
	NoShows(ctx context.Context, biz *models.Business, from, to string) (*models.NoShowReport, error)
}

// DefaultReportService is the production implementation.
type DefaultReportService struct {
	Bookings bookingRepo.BookingRepository
	Invoices invoiceRepo.InvoiceRepository
}

// File: database/repository/invoice/interface.go
package invoiceRepo

import (
	"context"
	"time"

	"hebelki/database"
	"hebelki/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// InvoiceTotals aggregates invoice amounts for a reporting period.
type InvoiceTotals struct {
	Invoiced    float64
	Paid        float64
	Outstanding float64
}

// InvoiceRepository manages invoices. Numbers are sequential per business,
// allocated from a counter document so concurrent creates never collide.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *models.Invoice) error
	GetByID(ctx context.Context, businessID, id string) (*models.Invoice, error)
	List(ctx context.Context, businessID string, status models.InvoiceStatus, customerID string, limit int64) ([]models.Invoice, error)
	UpdateFields(ctx context.Context, businessID, id string, fields map[string]interface{}) (*models.Invoice, error)
	NextNumber(ctx context.Context, businessID string) (string, error)
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	Totals(ctx context.Context, businessID string, from, to time.Time) (*InvoiceTotals, error)
	EnsureIndexes() error
}

type mongoInvoiceRepo struct {
	coll        *mongo.Collection
	counterColl *mongo.Collection
}

// NewMongoInvoiceRepo constructs a Mongo-backed InvoiceRepository.
func NewMongoInvoiceRepo() InvoiceRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoInvoiceRepo{
		coll:        db.Collection("invoices"),
		counterColl: db.Collection("invoice_counters"),
	}
}

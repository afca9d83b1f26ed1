// File: services/invoicing/interface.go
package invoicing

import (
	"context"

	customerRepo "hebelki/database/repository/customer"
	invoiceRepo "hebelki/database/repository/invoice"
	"hebelki/models"
)

// LineItemInput is one billed position on a new invoice.
type LineItemInput struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// CreateInvoiceInput describes a new invoice. Totals and the sequential
// number are computed server-side; DueInDays defaults to 14.
type CreateInvoiceInput struct {
	CustomerID string
	BookingID  string
	LineItems  []LineItemInput
	DueInDays  int
}

// ListInvoicesFilter narrows an invoice listing. Zero values mean "any".
type ListInvoicesFilter struct {
	Status     models.InvoiceStatus
	CustomerID string
	Limit      int64
}

// Renderer produces the invoice document stored alongside the record.
type Renderer interface {
	Render(biz *models.Business, inv *models.Invoice, cust *models.Customer) (data []byte, filename string, err error)
}

// ArtifactStore persists rendered invoice documents and returns a durable
// URL.
type ArtifactStore interface {
	UploadInvoice(ctx context.Context, businessID, filename string, data []byte) (string, error)
}

// PaymentLinkProvider creates a hosted payment page for an invoice.
type PaymentLinkProvider interface {
	CreatePaymentLink(ctx context.Context, biz *models.Business, inv *models.Invoice) (string, error)
}

// InvoiceMailer emails the invoice to the customer. Satisfied by the
// messaging service.
type InvoiceMailer interface {
	SendInvoice(ctx context.Context, biz *models.Business, inv *models.Invoice, cust *models.Customer) error
}

// InvoiceService owns the invoice lifecycle: draft, sent, paid or void, with
// overdue flagged by the background sweeper.
type InvoiceService interface {
	Create(ctx context.Context, biz *models.Business, in CreateInvoiceInput) (*models.Invoice, error)
	Get(ctx context.Context, businessID, id string) (*models.Invoice, error)
	List(ctx context.Context, businessID string, f ListInvoicesFilter) ([]models.Invoice, error)
	Send(ctx context.Context, biz *models.Business, id string) (*models.Invoice, error)
	RecordPayment(ctx context.Context, biz *models.Business, id, method string) (*models.Invoice, error)
	Void(ctx context.Context, biz *models.Business, id string) (*models.Invoice, error)
	CreatePaymentLink(ctx context.Context, biz *models.Business, id string) (*models.Invoice, error)
}

// DefaultInvoiceService is the production implementation.
type DefaultInvoiceService struct {
	Invoices  invoiceRepo.InvoiceRepository
	Customers customerRepo.CustomerRepository
	Messages  InvoiceMailer
	Renderer  Renderer
	Artifacts ArtifactStore
	Payments  PaymentLinkProvider
}

// File: services/invoicing/service.go
package invoicing

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"hebelki/models"
	"hebelki/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultDueInDays = 14

// Create drafts a new invoice. The number is allocated from the per-business
// counter, totals are derived from the line items and the tenant's tax rate.
func (s *DefaultInvoiceService) Create(ctx context.Context, biz *models.Business, in CreateInvoiceInput) (*models.Invoice, error) {
	if in.CustomerID == "" {
		return nil, NewValidationError("customerId is required")
	}
	if len(in.LineItems) == 0 {
		return nil, NewValidationError("an invoice needs at least one line item")
	}
	for _, li := range in.LineItems {
		if strings.TrimSpace(li.Description) == "" {
			return nil, NewValidationError("every line item needs a description")
		}
		if li.Quantity <= 0 {
			return nil, NewValidationError("line item quantities must be positive")
		}
		if li.UnitPrice < 0 {
			return nil, NewValidationError("line item prices cannot be negative")
		}
	}

	cust, err := s.Customers.GetByID(ctx, biz.ID, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}
	if cust == nil {
		return nil, NewNotFoundError("customer not found")
	}

	number, err := s.Invoices.NextNumber(ctx, biz.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	items := make([]models.InvoiceLineItem, 0, len(in.LineItems))
	subtotal := 0.0
	for _, li := range in.LineItems {
		item := models.InvoiceLineItem{
			Description: strings.TrimSpace(li.Description),
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		}
		items = append(items, item)
		subtotal += item.Total()
	}
	taxAmount := roundCents(subtotal * biz.TaxRate)
	subtotal = roundCents(subtotal)

	dueInDays := in.DueInDays
	if dueInDays <= 0 {
		dueInDays = defaultDueInDays
	}

	now := time.Now().UTC()
	inv := &models.Invoice{
		ID:         uuid.New().String(),
		BusinessID: biz.ID,
		CustomerID: cust.ID,
		BookingID:  in.BookingID,
		Number:     number,
		LineItems:  items,
		Subtotal:   subtotal,
		TaxRate:    biz.TaxRate,
		TaxAmount:  taxAmount,
		Total:      roundCents(subtotal + taxAmount),
		Currency:   biz.Currency,
		Status:     models.InvoiceDraft,
		IssuedAt:   now,
		DueAt:      now.AddDate(0, 0, dueInDays),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Invoices.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return inv, nil
}

func (s *DefaultInvoiceService) Get(ctx context.Context, businessID, id string) (*models.Invoice, error) {
	inv, err := s.Invoices.GetByID(ctx, businessID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoice: %w", err)
	}
	if inv == nil {
		return nil, NewNotFoundError("invoice not found")
	}
	return inv, nil
}

func (s *DefaultInvoiceService) List(ctx context.Context, businessID string, f ListInvoicesFilter) ([]models.Invoice, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	return s.Invoices.List(ctx, businessID, f.Status, f.CustomerID, limit)
}

// Send renders the invoice, stores the document and emails it. Sending a
// draft moves it to sent; an already sent or overdue invoice may be re-sent.
func (s *DefaultInvoiceService) Send(ctx context.Context, biz *models.Business, id string) (*models.Invoice, error) {
	inv, err := s.Get(ctx, biz.ID, id)
	if err != nil {
		return nil, err
	}
	switch inv.Status {
	case models.InvoiceVoid:
		return nil, NewValidationError("a void invoice cannot be sent")
	case models.InvoicePaid:
		return nil, NewValidationError("this invoice is already paid")
	}

	cust, err := s.Customers.GetByID(ctx, biz.ID, inv.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}
	if cust == nil {
		return nil, NewNotFoundError("customer not found")
	}

	// The rendered document is a courtesy artifact; a storage hiccup should
	// not block the email.
	if s.Renderer != nil && s.Artifacts != nil && inv.PDFURL == "" {
		data, filename, rerr := s.Renderer.Render(biz, inv, cust)
		if rerr == nil {
			if url, uerr := s.Artifacts.UploadInvoice(ctx, biz.ID, filename, data); uerr == nil {
				inv.PDFURL = url
			} else {
				utils.GetLogger().Warn("Invoice document upload failed",
					zap.String("invoiceId", inv.ID),
					zap.Error(uerr))
			}
		} else {
			utils.GetLogger().Warn("Invoice rendering failed",
				zap.String("invoiceId", inv.ID),
				zap.Error(rerr))
		}
	}

	if err := s.Messages.SendInvoice(ctx, biz, inv, cust); err != nil {
		return nil, fmt.Errorf("failed to email invoice: %w", err)
	}

	fields := map[string]interface{}{"pdfUrl": inv.PDFURL}
	if inv.Status == models.InvoiceDraft {
		fields["status"] = models.InvoiceSent
	}
	updated, err := s.Invoices.UpdateFields(ctx, biz.ID, inv.ID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return updated, nil
}

// RecordPayment marks the invoice paid. Any non-void, non-paid invoice can
// take a payment, including a draft settled in person.
func (s *DefaultInvoiceService) RecordPayment(ctx context.Context, biz *models.Business, id, method string) (*models.Invoice, error) {
	inv, err := s.Get(ctx, biz.ID, id)
	if err != nil {
		return nil, err
	}
	switch inv.Status {
	case models.InvoiceVoid:
		return nil, NewValidationError("a void invoice cannot take a payment")
	case models.InvoicePaid:
		return nil, NewValidationError("this invoice is already paid")
	}
	method = strings.TrimSpace(method)
	if method == "" {
		method = "cash"
	}

	now := time.Now().UTC()
	updated, err := s.Invoices.UpdateFields(ctx, biz.ID, inv.ID, map[string]interface{}{
		"status":        models.InvoicePaid,
		"paidAt":        now,
		"paymentMethod": method,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return updated, nil
}

// Void cancels an unpaid invoice. Paid invoices are immutable history.
func (s *DefaultInvoiceService) Void(ctx context.Context, biz *models.Business, id string) (*models.Invoice, error) {
	inv, err := s.Get(ctx, biz.ID, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == models.InvoicePaid {
		return nil, NewValidationError("a paid invoice cannot be voided")
	}
	if inv.Status == models.InvoiceVoid {
		return inv, nil
	}
	updated, err := s.Invoices.UpdateFields(ctx, biz.ID, inv.ID, map[string]interface{}{
		"status": models.InvoiceVoid,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to void invoice: %w", err)
	}
	return updated, nil
}

// CreatePaymentLink attaches a hosted checkout URL to the invoice.
func (s *DefaultInvoiceService) CreatePaymentLink(ctx context.Context, biz *models.Business, id string) (*models.Invoice, error) {
	if s.Payments == nil {
		return nil, NewValidationError("online payments are not configured for this business")
	}
	inv, err := s.Get(ctx, biz.ID, id)
	if err != nil {
		return nil, err
	}
	switch inv.Status {
	case models.InvoiceVoid:
		return nil, NewValidationError("a void invoice cannot be paid")
	case models.InvoicePaid:
		return nil, NewValidationError("this invoice is already paid")
	}
	if inv.PaymentLinkURL != "" {
		return inv, nil
	}

	url, err := s.Payments.CreatePaymentLink(ctx, biz, inv)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}
	updated, err := s.Invoices.UpdateFields(ctx, biz.ID, inv.ID, map[string]interface{}{
		"paymentLinkUrl": url,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store payment link: %w", err)
	}
	return updated, nil
}

// roundCents keeps money math on two decimals.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

package models

import "time"

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
	InvoiceVoid    InvoiceStatus = "void"
)

// InvoiceLineItem is one billed position.
type InvoiceLineItem struct {
	Description string  `bson:"description" json:"description"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	UnitPrice   float64 `bson:"unitPrice" json:"unitPrice"`
}

// Total is quantity times unit price.
func (li InvoiceLineItem) Total() float64 {
	return float64(li.Quantity) * li.UnitPrice
}

// Invoice is a bill issued by a business to a customer, optionally tied to a
// booking.
type Invoice struct {
	ID         string `bson:"id" json:"id"`
	BusinessID string `bson:"businessId" json:"businessId"`
	CustomerID string `bson:"customerId" json:"customerId"`
	BookingID  string `bson:"bookingId,omitempty" json:"bookingId,omitempty"`

	// Number is sequential per business ("INV-000042").
	Number string `bson:"number" json:"number"`

	LineItems []InvoiceLineItem `bson:"lineItems" json:"lineItems"`
	Subtotal  float64           `bson:"subtotal" json:"subtotal"`
	TaxRate   float64           `bson:"taxRate" json:"taxRate"`
	TaxAmount float64           `bson:"taxAmount" json:"taxAmount"`
	Total     float64           `bson:"total" json:"total"`
	Currency  string            `bson:"currency" json:"currency"`

	Status   InvoiceStatus `bson:"status" json:"status"`
	IssuedAt time.Time     `bson:"issuedAt" json:"issuedAt"`
	DueAt    time.Time     `bson:"dueAt" json:"dueAt"`
	PaidAt   *time.Time    `bson:"paidAt,omitempty" json:"paidAt,omitempty"`

	// PaymentLinkURL is a Stripe Checkout link; PDFURL points at the
	// rendered document in artifact storage.
	PaymentLinkURL string `bson:"paymentLinkUrl,omitempty" json:"paymentLinkUrl,omitempty"`
	PDFURL         string `bson:"pdfUrl,omitempty" json:"pdfUrl,omitempty"`

	PaymentMethod string    `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"` // e.g. "cash", "card", "stripe"
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

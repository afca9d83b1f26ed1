// File: services/invoicing/service_test.go
package invoicing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	invoiceRepo "hebelki/database/repository/invoice"
	"hebelki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceRepo struct {
	invoices []models.Invoice
	counter  int
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	r.invoices = append(r.invoices, *inv)
	return nil
}

// A miss is (nil, nil), matching the Mongo repository.
func (r *fakeInvoiceRepo) GetByID(ctx context.Context, businessID, id string) (*models.Invoice, error) {
	for i := range r.invoices {
		if r.invoices[i].BusinessID == businessID && r.invoices[i].ID == id {
			inv := r.invoices[i]
			return &inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) List(ctx context.Context, businessID string, status models.InvoiceStatus, customerID string, limit int64) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range r.invoices {
		if inv.BusinessID != businessID {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		if customerID != "" && inv.CustomerID != customerID {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) UpdateFields(ctx context.Context, businessID, id string, fields map[string]interface{}) (*models.Invoice, error) {
	for i := range r.invoices {
		if r.invoices[i].BusinessID != businessID || r.invoices[i].ID != id {
			continue
		}
		inv := &r.invoices[i]
		for k, v := range fields {
			switch k {
			case "status":
				inv.Status = v.(models.InvoiceStatus)
			case "paidAt":
				t := v.(time.Time)
				inv.PaidAt = &t
			case "paymentMethod":
				inv.PaymentMethod = v.(string)
			case "paymentLinkUrl":
				inv.PaymentLinkURL = v.(string)
			case "pdfUrl":
				inv.PDFURL = v.(string)
			}
		}
		out := *inv
		return &out, nil
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) NextNumber(ctx context.Context, businessID string) (string, error) {
	r.counter++
	return fmt.Sprintf("INV-%06d", r.counter), nil
}

func (r *fakeInvoiceRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for i := range r.invoices {
		if r.invoices[i].Status == models.InvoiceSent && r.invoices[i].DueAt.Before(now) {
			r.invoices[i].Status = models.InvoiceOverdue
			n++
		}
	}
	return n, nil
}

func (r *fakeInvoiceRepo) Totals(ctx context.Context, businessID string, from, to time.Time) (*invoiceRepo.InvoiceTotals, error) {
	return nil, errors.New("not used in tests")
}

func (r *fakeInvoiceRepo) EnsureIndexes() error { return nil }

type fakeCustomerRepo struct {
	customers []models.Customer
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *models.Customer) error {
	r.customers = append(r.customers, *c)
	return nil
}

// A miss is (nil, nil), matching the Mongo repository.
func (r *fakeCustomerRepo) GetByID(ctx context.Context, businessID, id string) (*models.Customer, error) {
	for i := range r.customers {
		if r.customers[i].BusinessID == businessID && r.customers[i].ID == id {
			c := r.customers[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByEmail(ctx context.Context, businessID, email string) (*models.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, businessID string, limit int64) ([]models.Customer, error) {
	return r.customers, nil
}

func (r *fakeCustomerRepo) Search(ctx context.Context, businessID, query string, limit int64) ([]models.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) UpdateFields(ctx context.Context, businessID, id string, fields map[string]interface{}) (*models.Customer, error) {
	return nil, errors.New("not used in tests")
}

func (r *fakeCustomerRepo) AddNote(ctx context.Context, businessID, id string, note models.CustomerNote) error {
	return nil
}

func (r *fakeCustomerRepo) MarkDeletionRequested(ctx context.Context, businessID, email string) (*models.Customer, error) {
	return nil, errors.New("not used in tests")
}

func (r *fakeCustomerRepo) Anonymize(ctx context.Context, businessID, id string) (*models.Customer, error) {
	return nil, errors.New("not used in tests")
}

func (r *fakeCustomerRepo) EnsureIndexes() error { return nil }

type fakeInvoiceMailer struct {
	sent []string
	err  error
}

func (m *fakeInvoiceMailer) SendInvoice(ctx context.Context, biz *models.Business, inv *models.Invoice, cust *models.Customer) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, inv.ID)
	return nil
}

type fakeArtifacts struct {
	uploads map[string][]byte
	err     error
}

func (a *fakeArtifacts) UploadInvoice(ctx context.Context, businessID, filename string, data []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	if a.uploads == nil {
		a.uploads = map[string][]byte{}
	}
	a.uploads[filename] = data
	return "https://cdn.example.com/" + businessID + "/" + filename, nil
}

type fakePayments struct {
	err error
}

func (p *fakePayments) CreatePaymentLink(ctx context.Context, biz *models.Business, inv *models.Invoice) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return "https://checkout.example.com/" + inv.Number, nil
}

func testBusiness() *models.Business {
	return &models.Business{
		ID:       "biz",
		Name:     "Schnittwerk",
		Timezone: "UTC",
		Currency: "EUR",
		TaxRate:  0.19,
	}
}

func newTestService() (*DefaultInvoiceService, *fakeInvoiceRepo, *fakeInvoiceMailer, *fakeArtifacts) {
	repo := &fakeInvoiceRepo{}
	custs := &fakeCustomerRepo{customers: []models.Customer{
		{ID: "cust-1", BusinessID: "biz", Name: "Anna Schmidt", Email: "anna@example.com"},
	}}
	mailer := &fakeInvoiceMailer{}
	artifacts := &fakeArtifacts{}
	svc := &DefaultInvoiceService{
		Invoices:  repo,
		Customers: custs,
		Messages:  mailer,
		Renderer:  TextRenderer{},
		Artifacts: artifacts,
		Payments:  &fakePayments{},
	}
	return svc, repo, mailer, artifacts
}

func seedInvoice(svc *DefaultInvoiceService, t *testing.T) *models.Invoice {
	t.Helper()
	inv, err := svc.Create(context.Background(), testBusiness(), CreateInvoiceInput{
		CustomerID: "cust-1",
		LineItems: []LineItemInput{
			{Description: "Haircut", Quantity: 1, UnitPrice: 40},
			{Description: "Styling product", Quantity: 2, UnitPrice: 12.5},
		},
	})
	require.NoError(t, err)
	return inv
}

func TestCreateInvoice(t *testing.T) {
	ctx := context.Background()
	biz := testBusiness()

	t.Run("computes totals with tax", func(t *testing.T) {
		svc, repo, _, _ := newTestService()

		inv, err := svc.Create(ctx, biz, CreateInvoiceInput{
			CustomerID: "cust-1",
			BookingID:  "bkg-1",
			LineItems: []LineItemInput{
				{Description: "Haircut", Quantity: 1, UnitPrice: 40},
				{Description: "Styling product", Quantity: 2, UnitPrice: 12.5},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "INV-000001", inv.Number)
		assert.Equal(t, 65.0, inv.Subtotal)
		assert.InDelta(t, 12.35, inv.TaxAmount, 0.0001)
		assert.InDelta(t, 77.35, inv.Total, 0.0001)
		assert.Equal(t, "EUR", inv.Currency)
		assert.Equal(t, models.InvoiceDraft, inv.Status)
		assert.Equal(t, "bkg-1", inv.BookingID)
		// Default terms are two weeks.
		assert.Equal(t, 14.0, inv.DueAt.Sub(inv.IssuedAt).Hours()/24)
		require.Len(t, repo.invoices, 1)
	})

	t.Run("numbers invoices sequentially", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		first := seedInvoice(svc, t)
		second := seedInvoice(svc, t)
		assert.Equal(t, "INV-000001", first.Number)
		assert.Equal(t, "INV-000002", second.Number)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		cases := []struct {
			name string
			in   CreateInvoiceInput
		}{
			{"no customer", CreateInvoiceInput{LineItems: []LineItemInput{{Description: "x", Quantity: 1, UnitPrice: 1}}}},
			{"no line items", CreateInvoiceInput{CustomerID: "cust-1"}},
			{"blank description", CreateInvoiceInput{CustomerID: "cust-1", LineItems: []LineItemInput{{Description: "  ", Quantity: 1, UnitPrice: 1}}}},
			{"zero quantity", CreateInvoiceInput{CustomerID: "cust-1", LineItems: []LineItemInput{{Description: "x", Quantity: 0, UnitPrice: 1}}}},
			{"negative price", CreateInvoiceInput{CustomerID: "cust-1", LineItems: []LineItemInput{{Description: "x", Quantity: 1, UnitPrice: -1}}}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Create(ctx, biz, tc.in)
				ie := AsInvoiceError(err)
				require.NotNil(t, ie)
				assert.Equal(t, CodeValidation, ie.Code)
			})
		}
	})

	t.Run("unknown customer", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		_, err := svc.Create(ctx, biz, CreateInvoiceInput{
			CustomerID: "ghost",
			LineItems:  []LineItemInput{{Description: "x", Quantity: 1, UnitPrice: 1}},
		})
		ie := AsInvoiceError(err)
		require.NotNil(t, ie)
		assert.Equal(t, CodeNotFound, ie.Code)
	})
}

func TestSendInvoice(t *testing.T) {
	ctx := context.Background()
	biz := testBusiness()

	t.Run("renders, stores and emails", func(t *testing.T) {
		svc, _, mailer, artifacts := newTestService()
		inv := seedInvoice(svc, t)

		sent, err := svc.Send(ctx, biz, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, models.InvoiceSent, sent.Status)
		assert.Contains(t, sent.PDFURL, "inv-000001.txt")
		require.Len(t, mailer.sent, 1)
		require.Len(t, artifacts.uploads, 1)
		assert.Contains(t, string(artifacts.uploads["inv-000001.txt"]), "Haircut")
	})

	t.Run("a storage failure does not block the email", func(t *testing.T) {
		svc, _, mailer, artifacts := newTestService()
		artifacts.err = errors.New("cdn down")
		inv := seedInvoice(svc, t)

		sent, err := svc.Send(ctx, biz, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, models.InvoiceSent, sent.Status)
		assert.Empty(t, sent.PDFURL)
		require.Len(t, mailer.sent, 1)
	})

	t.Run("a mail failure keeps the draft", func(t *testing.T) {
		svc, repo, mailer, _ := newTestService()
		mailer.err = errors.New("gateway down")
		inv := seedInvoice(svc, t)

		_, err := svc.Send(ctx, biz, inv.ID)
		require.Error(t, err)
		stored, gerr := repo.GetByID(ctx, "biz", inv.ID)
		require.NoError(t, gerr)
		assert.Equal(t, models.InvoiceDraft, stored.Status)
	})

	t.Run("cannot send a void invoice", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		inv := seedInvoice(svc, t)
		_, err := svc.Void(ctx, biz, inv.ID)
		require.NoError(t, err)

		_, err = svc.Send(ctx, biz, inv.ID)
		ie := AsInvoiceError(err)
		require.NotNil(t, ie)
		assert.Equal(t, CodeValidation, ie.Code)
	})
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()
	biz := testBusiness()

	t.Run("marks the invoice paid", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		inv := seedInvoice(svc, t)

		paid, err := svc.RecordPayment(ctx, biz, inv.ID, "card")
		require.NoError(t, err)
		assert.Equal(t, models.InvoicePaid, paid.Status)
		assert.Equal(t, "card", paid.PaymentMethod)
		require.NotNil(t, paid.PaidAt)
	})

	t.Run("defaults the method to cash", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		inv := seedInvoice(svc, t)

		paid, err := svc.RecordPayment(ctx, biz, inv.ID, "")
		require.NoError(t, err)
		assert.Equal(t, "cash", paid.PaymentMethod)
	})

	t.Run("double payment is rejected", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		inv := seedInvoice(svc, t)
		_, err := svc.RecordPayment(ctx, biz, inv.ID, "cash")
		require.NoError(t, err)

		_, err = svc.RecordPayment(ctx, biz, inv.ID, "cash")
		ie := AsInvoiceError(err)
		require.NotNil(t, ie)
		assert.Equal(t, CodeValidation, ie.Code)
		assert.Contains(t, ie.Message, "already paid")
	})
}

func TestVoidInvoice(t *testing.T) {
	ctx := context.Background()
	biz := testBusiness()

	t.Run("voids an unpaid invoice", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		inv := seedInvoice(svc, t)

		voided, err := svc.Void(ctx, biz, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, models.InvoiceVoid, voided.Status)
	})

	t.Run("voiding twice is a no-op", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		inv := seedInvoice(svc, t)
		_, err := svc.Void(ctx, biz, inv.ID)
		require.NoError(t, err)

		again, err := svc.Void(ctx, biz, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, models.InvoiceVoid, again.Status)
	})

	t.Run("a paid invoice cannot be voided", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		inv := seedInvoice(svc, t)
		_, err := svc.RecordPayment(ctx, biz, inv.ID, "cash")
		require.NoError(t, err)

		_, err = svc.Void(ctx, biz, inv.ID)
		ie := AsInvoiceError(err)
		require.NotNil(t, ie)
		assert.Equal(t, CodeValidation, ie.Code)
	})
}

func TestCreatePaymentLink(t *testing.T) {
	ctx := context.Background()
	biz := testBusiness()

	t.Run("attaches a checkout URL", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		inv := seedInvoice(svc, t)

		linked, err := svc.CreatePaymentLink(ctx, biz, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://checkout.example.com/INV-000001", linked.PaymentLinkURL)
	})

	t.Run("reuses an existing link", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		inv := seedInvoice(svc, t)
		first, err := svc.CreatePaymentLink(ctx, biz, inv.ID)
		require.NoError(t, err)

		svc.Payments = &fakePayments{err: errors.New("should not be called")}
		second, err := svc.CreatePaymentLink(ctx, biz, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, first.PaymentLinkURL, second.PaymentLinkURL)
	})

	t.Run("unconfigured payments are a clear failure", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		svc.Payments = nil
		inv := seedInvoice(svc, t)

		_, err := svc.CreatePaymentLink(ctx, biz, inv.ID)
		ie := AsInvoiceError(err)
		require.NotNil(t, ie)
		assert.Equal(t, CodeValidation, ie.Code)
	})
}

// The repositories report a missing document as (nil, nil); every lifecycle
// method must turn that into a not-found failure rather than dereference it.
func TestUnknownInvoiceID(t *testing.T) {
	ctx := context.Background()
	biz := testBusiness()
	svc, _, mailer, _ := newTestService()
	seedInvoice(svc, t)

	calls := []struct {
		name string
		call func() error
	}{
		{"get", func() error { _, err := svc.Get(ctx, biz.ID, "ghost"); return err }},
		{"send", func() error { _, err := svc.Send(ctx, biz, "ghost"); return err }},
		{"record payment", func() error { _, err := svc.RecordPayment(ctx, biz, "ghost", "cash"); return err }},
		{"void", func() error { _, err := svc.Void(ctx, biz, "ghost"); return err }},
		{"payment link", func() error { _, err := svc.CreatePaymentLink(ctx, biz, "ghost"); return err }},
	}
	for _, tc := range calls {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			ie := AsInvoiceError(err)
			require.NotNil(t, ie)
			assert.Equal(t, CodeNotFound, ie.Code)
		})
	}
	assert.Empty(t, mailer.sent, "nothing was emailed for the unknown id")
}

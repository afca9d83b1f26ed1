// File: services/invoicing/payments.go
package invoicing

import (
	"context"
	"fmt"
	"math"
	"strings"

	"hebelki/config"
	"hebelki/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeCheckout creates hosted Stripe Checkout sessions for invoices. The
// global stripe.Key is set once at startup.
type StripeCheckout struct{}

// NewStripeCheckout returns the provider, or nil when no Stripe key is
// configured so callers can degrade gracefully.
func NewStripeCheckout() *StripeCheckout {
	if config.AppConfig.StripeKey == "" {
		return nil
	}
	return &StripeCheckout{}
}

func (StripeCheckout) CreatePaymentLink(ctx context.Context, biz *models.Business, inv *models.Invoice) (string, error) {
	successURL := config.AppConfig.StripeSuccessURL
	if successURL == "" {
		successURL = "https://hebelki.app/pay/success"
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(inv.Currency)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Invoice %s from %s", inv.Number, biz.Name)),
					},
					UnitAmount: stripe.Int64(int64(math.Round(inv.Total * 100))),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(successURL),
	}
	params.Context = ctx
	params.AddMetadata("businessId", biz.ID)
	params.AddMetadata("invoiceId", inv.ID)
	params.AddMetadata("invoiceNumber", inv.Number)

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session failed: %w", err)
	}
	if sess.URL == "" {
		return "", fmt.Errorf("stripe returned no checkout URL")
	}
	return sess.URL, nil
}

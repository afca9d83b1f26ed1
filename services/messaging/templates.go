// File: services/messaging/templates.go
package messaging

import (
	"fmt"
	"strings"

	"hebelki/models"
)

// Message bodies are deliberately plain text. Formatting for a specific
// channel (HTML mail, WhatsApp markdown) is the gateway's job.

func confirmationMessage(biz *models.Business, b *models.Booking) (string, string) {
	loc := biz.Location()
	subject := fmt.Sprintf("Booking confirmed at %s", biz.Name)
	body := fmt.Sprintf(
		"Hi %s,\n\nyour %s on %s at %s is confirmed.\nConfirmation code: %s\n\nSee you soon,\n%s",
		firstName(b.CustomerName),
		b.ServiceName,
		b.StartsAt.In(loc).Format("Monday, 2 January 2006"),
		b.StartsAt.In(loc).Format("15:04"),
		b.ConfirmationToken,
		biz.Name,
	)
	return subject, body
}

func reminderMessage(biz *models.Business, b *models.Booking) (string, string) {
	loc := biz.Location()
	subject := fmt.Sprintf("Reminder: %s at %s", b.ServiceName, biz.Name)
	body := fmt.Sprintf(
		"Hi %s,\n\nthis is a reminder of your %s on %s at %s.\nIf you cannot make it, please let us know.\n\n%s",
		firstName(b.CustomerName),
		b.ServiceName,
		b.StartsAt.In(loc).Format("Monday, 2 January 2006"),
		b.StartsAt.In(loc).Format("15:04"),
		biz.Name,
	)
	return subject, body
}

func invoiceMessage(biz *models.Business, inv *models.Invoice, cust *models.Customer) (string, string) {
	subject := fmt.Sprintf("Invoice %s from %s", inv.Number, biz.Name)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\nplease find your invoice %s below.\n\n", firstName(cust.Name), inv.Number)
	for _, li := range inv.LineItems {
		fmt.Fprintf(&sb, "  %-30s %2d x %8.2f %s\n", li.Description, li.Quantity, li.UnitPrice, inv.Currency)
	}
	fmt.Fprintf(&sb, "\nTotal due: %.2f %s by %s.\n", inv.Total, inv.Currency, inv.DueAt.Format("2 January 2006"))
	if inv.PaymentLinkURL != "" {
		fmt.Fprintf(&sb, "Pay online: %s\n", inv.PaymentLinkURL)
	}
	if inv.PDFURL != "" {
		fmt.Fprintf(&sb, "PDF: %s\n", inv.PDFURL)
	}
	fmt.Fprintf(&sb, "\nThank you,\n%s", biz.Name)
	return subject, sb.String()
}

func firstName(full string) string {
	full = strings.TrimSpace(full)
	if full == "" {
		return "there"
	}
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}

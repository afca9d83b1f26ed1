// File: services/invoicing/renderer.go
package invoicing

import (
	"fmt"
	"strings"

	"hebelki/models"
)

// TextRenderer produces a plain-text invoice document. Businesses that need
// branded PDFs swap in their own Renderer; the record and URL handling stay
// the same.
type TextRenderer struct{}

func (TextRenderer) Render(biz *models.Business, inv *models.Invoice, cust *models.Customer) ([]byte, string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", biz.Name)
	if biz.Address != "" {
		fmt.Fprintf(&sb, "%s\n", biz.Address)
	}
	fmt.Fprintf(&sb, "\nInvoice %s\n", inv.Number)
	fmt.Fprintf(&sb, "Issued: %s\n", inv.IssuedAt.Format("2 January 2006"))
	fmt.Fprintf(&sb, "Due:    %s\n\n", inv.DueAt.Format("2 January 2006"))
	fmt.Fprintf(&sb, "Billed to: %s", cust.Name)
	if cust.Email != "" {
		fmt.Fprintf(&sb, " <%s>", cust.Email)
	}
	sb.WriteString("\n\n")

	for _, li := range inv.LineItems {
		fmt.Fprintf(&sb, "%-36s %3d x %10.2f = %10.2f\n", li.Description, li.Quantity, li.UnitPrice, li.Total())
	}
	sb.WriteString(strings.Repeat("-", 68) + "\n")
	fmt.Fprintf(&sb, "%54s %10.2f\n", "Subtotal", inv.Subtotal)
	fmt.Fprintf(&sb, "%54s %10.2f\n", fmt.Sprintf("Tax (%.1f%%)", inv.TaxRate*100), inv.TaxAmount)
	fmt.Fprintf(&sb, "%54s %10.2f %s\n", "Total", inv.Total, inv.Currency)

	filename := fmt.Sprintf("%s.txt", strings.ToLower(inv.Number))
	return []byte(sb.String()), filename, nil
}

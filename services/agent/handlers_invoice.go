// File: services/agent/handlers_invoice.go
package agent

import (
	"context"

	"hebelki/models"
	"hebelki/services/invoicing"
)

func (d *HandlerDeps) handleCreateInvoice(ctx context.Context, inv *Invocation) *ToolResult {
	raw := argList(inv.Args, "lineItems")
	items := make([]invoicing.LineItemInput, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			return Fail(CodeValidation, "lineItems entries must be objects")
		}
		items = append(items, invoicing.LineItemInput{
			Description: argString(m, "description"),
			Quantity:    argInt(m, "quantity"),
			UnitPrice:   argFloat(m, "unitPrice"),
		})
	}
	created, err := d.Invoicing.Create(ctx, inv.Business, invoicing.CreateInvoiceInput{
		CustomerID: argString(inv.Args, "customerId"),
		BookingID:  argString(inv.Args, "bookingId"),
		LineItems:  items,
		DueInDays:  argInt(inv.Args, "dueInDays"),
	})
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"invoice": jsonMap(created)})
}

func (d *HandlerDeps) handleGetInvoice(ctx context.Context, inv *Invocation) *ToolResult {
	rec, err := d.Invoicing.Get(ctx, inv.Business.ID, argString(inv.Args, "invoiceId"))
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"invoice": jsonMap(rec)})
}

func (d *HandlerDeps) handleListInvoices(ctx context.Context, inv *Invocation) *ToolResult {
	list, err := d.Invoicing.List(ctx, inv.Business.ID, invoicing.ListInvoicesFilter{
		Status:     models.InvoiceStatus(argString(inv.Args, "status")),
		CustomerID: argString(inv.Args, "customerId"),
		Limit:      int64(argInt(inv.Args, "limit")),
	})
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{
		"invoices": jsonList(list),
		"count":    len(list),
	})
}

func (d *HandlerDeps) handleSendInvoice(ctx context.Context, inv *Invocation) *ToolResult {
	rec, err := d.Invoicing.Send(ctx, inv.Business, argString(inv.Args, "invoiceId"))
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"invoice": jsonMap(rec)})
}

func (d *HandlerDeps) handleRecordPayment(ctx context.Context, inv *Invocation) *ToolResult {
	rec, err := d.Invoicing.RecordPayment(ctx, inv.Business,
		argString(inv.Args, "invoiceId"),
		argString(inv.Args, "method"))
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"invoice": jsonMap(rec)})
}

func (d *HandlerDeps) handleCreatePaymentLink(ctx context.Context, inv *Invocation) *ToolResult {
	rec, err := d.Invoicing.CreatePaymentLink(ctx, inv.Business, argString(inv.Args, "invoiceId"))
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{
		"invoiceId":      rec.ID,
		"paymentLinkUrl": rec.PaymentLinkURL,
	})
}

func (d *HandlerDeps) handleVoidInvoice(ctx context.Context, inv *Invocation) *ToolResult {
	rec, err := d.Invoicing.Void(ctx, inv.Business, argString(inv.Args, "invoiceId"))
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"invoice": jsonMap(rec)})
}

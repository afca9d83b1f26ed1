// File: services/agent/handlers_customer.go
package agent

import (
	"context"
	"strings"
	"time"

	bookingRepo "hebelki/database/repository/booking"
	"hebelki/models"
	"hebelki/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (d *HandlerDeps) handleListCustomers(ctx context.Context, inv *Invocation) *ToolResult {
	limit := int64(argInt(inv.Args, "limit"))
	list, err := d.Customers.List(ctx, inv.Business.ID, limit)
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{
		"customers": jsonList(list),
		"count":     len(list),
	})
}

func (d *HandlerDeps) handleSearchCustomers(ctx context.Context, inv *Invocation) *ToolResult {
	query := strings.TrimSpace(argString(inv.Args, "query"))
	if query == "" {
		return Fail(CodeValidation, "query must not be empty")
	}
	list, err := d.Customers.Search(ctx, inv.Business.ID, query, int64(argInt(inv.Args, "limit")))
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{
		"customers": jsonList(list),
		"count":     len(list),
	})
}

func (d *HandlerDeps) handleGetCustomer(ctx context.Context, inv *Invocation) *ToolResult {
	c, err := d.Customers.GetByID(ctx, inv.Business.ID, argString(inv.Args, "customerId"))
	if err != nil || c == nil {
		return Fail(CodeNotFound, "customer not found")
	}
	return OK(map[string]interface{}{"customer": jsonMap(c)})
}

func (d *HandlerDeps) handleCreateCustomer(ctx context.Context, inv *Invocation) *ToolResult {
	email := strings.ToLower(strings.TrimSpace(argString(inv.Args, "email")))
	if !strings.Contains(email, "@") {
		return Fail(CodeValidation, "email must be a valid address")
	}
	if existing, err := d.Customers.GetByEmail(ctx, inv.Business.ID, email); err == nil && existing != nil {
		return Fail(CodeValidation, "a customer with this email already exists")
	}
	now := time.Now().UTC()
	c := &models.Customer{
		ID:         uuid.NewString(),
		BusinessID: inv.Business.ID,
		Name:       strings.TrimSpace(argString(inv.Args, "name")),
		Email:      email,
		Phone:      strings.TrimSpace(argString(inv.Args, "phone")),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if c.Name == "" {
		return Fail(CodeValidation, "name must not be empty")
	}
	if err := d.Customers.Create(ctx, c); err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"customer": jsonMap(c)})
}

func (d *HandlerDeps) handleUpdateCustomer(ctx context.Context, inv *Invocation) *ToolResult {
	fields := map[string]interface{}{}
	if _, ok := inv.Args["name"]; ok {
		name := strings.TrimSpace(argString(inv.Args, "name"))
		if name == "" {
			return Fail(CodeValidation, "name must not be empty")
		}
		fields["name"] = name
	}
	if _, ok := inv.Args["email"]; ok {
		email := strings.ToLower(strings.TrimSpace(argString(inv.Args, "email")))
		if !strings.Contains(email, "@") {
			return Fail(CodeValidation, "email must be a valid address")
		}
		fields["email"] = email
	}
	if _, ok := inv.Args["phone"]; ok {
		fields["phone"] = strings.TrimSpace(argString(inv.Args, "phone"))
	}
	if len(fields) == 0 {
		return Fail(CodeValidation, "nothing to update")
	}
	c, err := d.Customers.UpdateFields(ctx, inv.Business.ID, argString(inv.Args, "customerId"), fields)
	if err != nil || c == nil {
		return Fail(CodeNotFound, "customer not found")
	}
	return OK(map[string]interface{}{"customer": jsonMap(c)})
}

func (d *HandlerDeps) handleAddCustomerNote(ctx context.Context, inv *Invocation) *ToolResult {
	note := strings.TrimSpace(argString(inv.Args, "note"))
	if note == "" {
		return Fail(CodeValidation, "note must not be empty")
	}
	id := argString(inv.Args, "customerId")
	err := d.Customers.AddNote(ctx, inv.Business.ID, id, models.CustomerNote{
		Text:     note,
		AuthorID: inv.Actor.ActorID,
		At:       time.Now().UTC(),
	})
	if err != nil {
		return Fail(CodeNotFound, "customer not found")
	}
	return OK(map[string]interface{}{"customerId": id, "note": note})
}

func (d *HandlerDeps) handleGetCustomerHistory(ctx context.Context, inv *Invocation) *ToolResult {
	id := argString(inv.Args, "customerId")
	if c, err := d.Customers.GetByID(ctx, inv.Business.ID, id); err != nil || c == nil {
		return Fail(CodeNotFound, "customer not found")
	}
	limit := int64(argInt(inv.Args, "limit"))
	if limit <= 0 {
		limit = 20
	}
	bookings, err := d.Bookings.Search(ctx, bookingRepo.BookingQuery{
		BusinessID: inv.Business.ID,
		CustomerID: id,
		Limit:      limit,
	})
	if err != nil {
		return failFrom(err)
	}
	messages, err := d.MessageLog.ListByCustomer(ctx, inv.Business.ID, id, 10)
	if err != nil {
		messages = nil
	}
	return OK(map[string]interface{}{
		"bookings": jsonList(bookings),
		"messages": jsonList(messages),
	})
}

// handleRequestDataDeletion answers identically whether or not the email is
// on file, so the public tool cannot be used to probe which addresses exist.
func (d *HandlerDeps) handleRequestDataDeletion(ctx context.Context, inv *Invocation) *ToolResult {
	email := strings.ToLower(strings.TrimSpace(argString(inv.Args, "email")))
	if !strings.Contains(email, "@") {
		return Fail(CodeValidation, "email must be a valid address")
	}
	if _, err := d.Customers.MarkDeletionRequested(ctx, inv.Business.ID, email); err != nil {
		utils.GetLogger().Info("Deletion requested for unknown email",
			zap.String("businessId", inv.Business.ID))
	}
	return OK(map[string]interface{}{
		"message": "Your deletion request has been recorded. The business will process it shortly.",
	})
}

func (d *HandlerDeps) handleExportCustomerData(ctx context.Context, inv *Invocation) *ToolResult {
	id := argString(inv.Args, "customerId")
	c, err := d.Customers.GetByID(ctx, inv.Business.ID, id)
	if err != nil || c == nil {
		return Fail(CodeNotFound, "customer not found")
	}
	bookings, err := d.Bookings.Search(ctx, bookingRepo.BookingQuery{
		BusinessID: inv.Business.ID,
		CustomerID: id,
	})
	if err != nil {
		return failFrom(err)
	}
	invoices, err := d.Invoices.List(ctx, inv.Business.ID, "", id, 0)
	if err != nil {
		return failFrom(err)
	}
	messages, err := d.MessageLog.ListByCustomer(ctx, inv.Business.ID, id, 0)
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{
		"customer": jsonMap(c),
		"bookings": jsonList(bookings),
		"invoices": jsonList(invoices),
		"messages": jsonList(messages),
	})
}

func (d *HandlerDeps) handleDeleteCustomerData(ctx context.Context, inv *Invocation) *ToolResult {
	c, err := d.Customers.Anonymize(ctx, inv.Business.ID, argString(inv.Args, "customerId"))
	if err != nil || c == nil {
		return Fail(CodeNotFound, "customer not found")
	}
	return OK(map[string]interface{}{
		"customerId": c.ID,
		"message":    "Personal data removed. Booking history is kept in anonymized form.",
	})
}

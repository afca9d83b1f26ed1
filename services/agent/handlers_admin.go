// File: services/agent/handlers_admin.go
package agent

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"hebelki/models"
	"hebelki/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var weekdayKeys = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// parseHoursArg turns the raw hours argument into typed day ranges. The
// schema has already rejected unknown days and missing open/close, so only
// the clock values need checking here. Returns an empty message on success.
func parseHoursArg(raw map[string]interface{}) (map[string]models.DayHours, string) {
	parsed := make(map[string]models.DayHours, len(raw))
	for _, day := range weekdayKeys {
		entry := argObject(raw, day)
		if entry == nil {
			continue
		}
		open := argString(entry, "open")
		closeAt := argString(entry, "close")
		if _, err := time.Parse("15:04", open); err != nil {
			return nil, fmt.Sprintf("%s.open must be HH:MM, got %q", day, open)
		}
		if _, err := time.Parse("15:04", closeAt); err != nil {
			return nil, fmt.Sprintf("%s.close must be HH:MM, got %q", day, closeAt)
		}
		// Fixed-width HH:MM compares correctly as a string.
		if closeAt <= open {
			return nil, fmt.Sprintf("%s.close must be after open", day)
		}
		parsed[day] = models.DayHours{Open: open, Close: closeAt}
	}
	if len(parsed) == 0 {
		return nil, "hours must cover at least one day"
	}
	return parsed, ""
}

func newTempPassword() string {
	b := make([]byte, 9)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (d *HandlerDeps) handleCreateService(ctx context.Context, inv *Invocation) *ToolResult {
	name := strings.TrimSpace(argString(inv.Args, "name"))
	if name == "" {
		return Fail(CodeValidation, "name must not be empty")
	}
	duration := argInt(inv.Args, "durationMinutes")
	if duration <= 0 {
		return Fail(CodeValidation, "durationMinutes must be positive")
	}
	price := argFloat(inv.Args, "price")
	if price < 0 {
		return Fail(CodeValidation, "price must not be negative")
	}
	now := time.Now().UTC()
	svc := &models.Service{
		ID:              uuid.NewString(),
		BusinessID:      inv.Business.ID,
		Name:            name,
		Description:     strings.TrimSpace(argString(inv.Args, "description")),
		DurationMinutes: duration,
		BufferMinutes:   argInt(inv.Args, "bufferMinutes"),
		Price:           price,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := d.Services.Create(ctx, svc); err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"service": jsonMap(svc)})
}

func (d *HandlerDeps) handleUpdateService(ctx context.Context, inv *Invocation) *ToolResult {
	fields := map[string]interface{}{}
	if _, ok := inv.Args["name"]; ok {
		name := strings.TrimSpace(argString(inv.Args, "name"))
		if name == "" {
			return Fail(CodeValidation, "name must not be empty")
		}
		fields["name"] = name
	}
	if _, ok := inv.Args["description"]; ok {
		fields["description"] = strings.TrimSpace(argString(inv.Args, "description"))
	}
	if _, ok := inv.Args["durationMinutes"]; ok {
		duration := argInt(inv.Args, "durationMinutes")
		if duration <= 0 {
			return Fail(CodeValidation, "durationMinutes must be positive")
		}
		fields["durationMinutes"] = duration
	}
	if _, ok := inv.Args["bufferMinutes"]; ok {
		buffer := argInt(inv.Args, "bufferMinutes")
		if buffer < 0 {
			return Fail(CodeValidation, "bufferMinutes must not be negative")
		}
		fields["bufferMinutes"] = buffer
	}
	if _, ok := inv.Args["price"]; ok {
		price := argFloat(inv.Args, "price")
		if price < 0 {
			return Fail(CodeValidation, "price must not be negative")
		}
		fields["price"] = price
	}
	if len(fields) == 0 {
		return Fail(CodeValidation, "nothing to update")
	}
	svc, err := d.Services.UpdateFields(ctx, inv.Business.ID, argString(inv.Args, "serviceId"), fields)
	if err != nil || svc == nil {
		return Fail(CodeNotFound, "service not found")
	}
	return OK(map[string]interface{}{"service": jsonMap(svc)})
}

func (d *HandlerDeps) handleArchiveService(ctx context.Context, inv *Invocation) *ToolResult {
	id := argString(inv.Args, "serviceId")
	if svc, err := d.Services.GetByID(ctx, inv.Business.ID, id); err != nil || svc == nil {
		return Fail(CodeNotFound, "service not found")
	}
	if err := d.Services.Archive(ctx, inv.Business.ID, id); err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"serviceId": id, "active": false})
}

func (d *HandlerDeps) handleAddStaffMember(ctx context.Context, inv *Invocation) *ToolResult {
	name := strings.TrimSpace(argString(inv.Args, "name"))
	if name == "" {
		return Fail(CodeValidation, "name must not be empty")
	}
	email := strings.ToLower(strings.TrimSpace(argString(inv.Args, "email")))
	if !strings.Contains(email, "@") {
		return Fail(CodeValidation, "email must be a valid address")
	}
	if existing, err := d.Staff.GetByEmail(ctx, inv.Business.ID, email); err == nil && existing != nil {
		return Fail(CodeValidation, "a staff member with this email already exists")
	}
	serviceIDs := argStringSlice(inv.Args, "serviceIds")
	for _, sid := range serviceIDs {
		if svc, err := d.Services.GetByID(ctx, inv.Business.ID, sid); err != nil || svc == nil {
			return Fail(CodeValidation, "unknown service: "+sid)
		}
	}
	role := models.StaffRole(argString(inv.Args, "role"))
	if role == "" {
		role = models.RoleStaff
	}

	password := argString(inv.Args, "password")
	generated := false
	if password == "" {
		password = newTempPassword()
		generated = true
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash staff password", zap.Error(err))
		return Fail(CodeInternal, "could not create the staff member, please try again")
	}

	now := time.Now().UTC()
	member := &models.Staff{
		ID:           uuid.NewString(),
		BusinessID:   inv.Business.ID,
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(argString(inv.Args, "phone")),
		Role:         role,
		ServiceIDs:   serviceIDs,
		PasswordHash: string(hashed),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := d.Staff.Create(ctx, member); err != nil {
		return failFrom(err)
	}
	payload := map[string]interface{}{"staff": jsonMap(member)}
	if generated {
		// Returned exactly once; only the hash is stored.
		payload["temporaryPassword"] = password
	}
	return OK(payload)
}

func (d *HandlerDeps) handleUpdateStaffMember(ctx context.Context, inv *Invocation) *ToolResult {
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
	if _, ok := inv.Args["role"]; ok {
		fields["role"] = argString(inv.Args, "role")
	}
	if len(fields) == 0 {
		return Fail(CodeValidation, "nothing to update")
	}
	member, err := d.Staff.UpdateFields(ctx, inv.Business.ID, argString(inv.Args, "staffId"), fields)
	if err != nil || member == nil {
		return Fail(CodeNotFound, "staff member not found")
	}
	return OK(map[string]interface{}{"staff": jsonMap(member)})
}

func (d *HandlerDeps) handleDeactivateStaffMember(ctx context.Context, inv *Invocation) *ToolResult {
	member, err := d.Staff.UpdateFields(ctx, inv.Business.ID, argString(inv.Args, "staffId"),
		map[string]interface{}{"active": false})
	if err != nil || member == nil {
		return Fail(CodeNotFound, "staff member not found")
	}
	return OK(map[string]interface{}{"staffId": member.ID, "active": false})
}

func (d *HandlerDeps) handleSetStaffHours(ctx context.Context, inv *Invocation) *ToolResult {
	hours, msg := parseHoursArg(argObject(inv.Args, "hours"))
	if msg != "" {
		return Fail(CodeValidation, msg)
	}
	member, err := d.Staff.UpdateFields(ctx, inv.Business.ID, argString(inv.Args, "staffId"),
		map[string]interface{}{"hours": hours})
	if err != nil || member == nil {
		return Fail(CodeNotFound, "staff member not found")
	}
	return OK(map[string]interface{}{"staff": jsonMap(member)})
}

func (d *HandlerDeps) handleSetStaffServices(ctx context.Context, inv *Invocation) *ToolResult {
	serviceIDs := argStringSlice(inv.Args, "serviceIds")
	for _, sid := range serviceIDs {
		if svc, err := d.Services.GetByID(ctx, inv.Business.ID, sid); err != nil || svc == nil {
			return Fail(CodeValidation, "unknown service: "+sid)
		}
	}
	member, err := d.Staff.UpdateFields(ctx, inv.Business.ID, argString(inv.Args, "staffId"),
		map[string]interface{}{"serviceIds": serviceIDs})
	if err != nil || member == nil {
		return Fail(CodeNotFound, "staff member not found")
	}
	return OK(map[string]interface{}{"staff": jsonMap(member)})
}

func (d *HandlerDeps) handleSetMemberCapabilities(ctx context.Context, inv *Invocation) *ToolResult {
	staffID := argString(inv.Args, "staffId")
	if member, err := d.Staff.GetByID(ctx, inv.Business.ID, staffID); err != nil || member == nil {
		return Fail(CodeNotFound, "staff member not found")
	}
	tools := argStringSlice(inv.Args, "allowedTools")
	for _, name := range tools {
		def, ok := d.Registry.Lookup(ToolName(name))
		if !ok {
			return Fail(CodeValidation, "unknown tool: "+name)
		}
		if def.Tier == TierOwner {
			return Fail(CodeValidation, name+" is an owner tool and cannot be granted to staff")
		}
	}
	if err := d.Staff.SetAllowedTools(ctx, inv.Business.ID, staffID, tools); err != nil {
		return failFrom(err)
	}
	utils.GetLogger().Info("Member capabilities updated",
		zap.String("businessId", inv.Business.ID),
		zap.String("staffId", staffID),
		zap.Int("tools", len(tools)))
	if len(tools) == 0 {
		return OK(map[string]interface{}{
			"staffId": staffID,
			"message": "Whitelist cleared, the staff-tier default applies.",
		})
	}
	return OK(map[string]interface{}{
		"staffId":      staffID,
		"allowedTools": jsonList(tools),
	})
}

func (d *HandlerDeps) handleUpdateBusinessProfile(ctx context.Context, inv *Invocation) *ToolResult {
	fields := map[string]interface{}{}
	if _, ok := inv.Args["name"]; ok {
		name := strings.TrimSpace(argString(inv.Args, "name"))
		if name == "" {
			return Fail(CodeValidation, "name must not be empty")
		}
		fields["name"] = name
	}
	if _, ok := inv.Args["description"]; ok {
		fields["description"] = strings.TrimSpace(argString(inv.Args, "description"))
	}
	if _, ok := inv.Args["phone"]; ok {
		fields["phone"] = strings.TrimSpace(argString(inv.Args, "phone"))
	}
	if _, ok := inv.Args["address"]; ok {
		fields["address"] = strings.TrimSpace(argString(inv.Args, "address"))
	}
	if len(fields) == 0 {
		return Fail(CodeValidation, "nothing to update")
	}
	biz, err := d.Businesses.UpdateFields(ctx, inv.Business.ID, fields)
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"business": jsonMap(biz)})
}

func (d *HandlerDeps) handleUpdateBusinessHours(ctx context.Context, inv *Invocation) *ToolResult {
	hours, msg := parseHoursArg(argObject(inv.Args, "hours"))
	if msg != "" {
		return Fail(CodeValidation, msg)
	}
	biz, err := d.Businesses.UpdateFields(ctx, inv.Business.ID,
		map[string]interface{}{"hours": hours})
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"business": jsonMap(biz)})
}

func (d *HandlerDeps) handleUpdateNotificationSettings(ctx context.Context, inv *Invocation) *ToolResult {
	fields := map[string]interface{}{}
	if _, ok := inv.Args["sendConfirmations"]; ok {
		fields["notifications.sendConfirmations"] = argBool(inv.Args, "sendConfirmations")
	}
	if _, ok := inv.Args["sendReminders"]; ok {
		fields["notifications.sendReminders"] = argBool(inv.Args, "sendReminders")
	}
	if _, ok := inv.Args["reminderLeadHours"]; ok {
		lead := argInt(inv.Args, "reminderLeadHours")
		if lead <= 0 {
			return Fail(CodeValidation, "reminderLeadHours must be positive")
		}
		fields["notifications.reminderLeadHours"] = lead
	}
	if len(fields) == 0 {
		return Fail(CodeValidation, "nothing to update")
	}
	biz, err := d.Businesses.UpdateFields(ctx, inv.Business.ID, fields)
	if err != nil {
		return failFrom(err)
	}
	return OK(map[string]interface{}{"notifications": jsonMap(biz.Notifications)})
}

// File: services/agent/handlers_catalog.go
package agent

import (
	"context"
	"time"
)

func (d *HandlerDeps) handleGetCurrentDate(ctx context.Context, inv *Invocation) *ToolResult {
	loc := inv.Business.Location()
	now := time.Now().In(loc)
	return OK(map[string]interface{}{
		"date":     now.Format("2006-01-02"),
		"time":     now.Format("15:04"),
		"weekday":  now.Weekday().String(),
		"timezone": loc.String(),
	})
}

func (d *HandlerDeps) handleListServices(ctx context.Context, inv *Invocation) *ToolResult {
	// Customers see the live catalog; staff also see archived entries.
	activeOnly := !inv.Actor.IsStaffTier()
	svcs, err := d.Services.List(ctx, inv.Business.ID, activeOnly)
	if err != nil {
		return failFrom(err)
	}
	out := make([]interface{}, 0, len(svcs))
	for _, s := range svcs {
		out = append(out, map[string]interface{}{
			"id":              s.ID,
			"name":            s.Name,
			"description":     s.Description,
			"durationMinutes": s.DurationMinutes,
			"price":           s.Price,
			"active":          s.Active,
		})
	}
	return OK(map[string]interface{}{"services": out})
}

func (d *HandlerDeps) handleListStaff(ctx context.Context, inv *Invocation) *ToolResult {
	members, err := d.Staff.List(ctx, inv.Business.ID, true)
	if err != nil {
		return failFrom(err)
	}
	// Public payload on purpose: names and qualifications only, no contact
	// details.
	out := make([]interface{}, 0, len(members))
	for _, m := range members {
		out = append(out, map[string]interface{}{
			"id":         m.ID,
			"name":       m.Name,
			"serviceIds": jsonList(m.ServiceIDs),
		})
	}
	return OK(map[string]interface{}{"staff": out})
}

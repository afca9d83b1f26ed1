// File: services/agent/handlers_reports.go
package agent

import (
	"context"
	"time"
)

// checkPeriodArgs validates report period input up front so the report layer
// only ever fails on repository problems.
func checkPeriodArgs(from, to string) string {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return "from must be YYYY-MM-DD"
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return "to must be YYYY-MM-DD"
	}
	if end.Before(start) {
		return "to must not be before from"
	}
	return ""
}

func (d *HandlerDeps) handleGetWeekOverview(ctx context.Context, inv *Invocation) *ToolResult {
	weekStart := argString(inv.Args, "weekStart")
	if _, err := time.Parse("2006-01-02", weekStart); err != nil {
		return Fail(CodeValidation, "weekStart must be YYYY-MM-DD")
	}
	overview, err := d.Reports.WeekOverview(ctx, inv.Business, weekStart)
	if err != nil {
		return failFrom(err)
	}
	return OK(jsonMap(overview))
}

func (d *HandlerDeps) handleGetRevenueReport(ctx context.Context, inv *Invocation) *ToolResult {
	from, to := argString(inv.Args, "from"), argString(inv.Args, "to")
	if msg := checkPeriodArgs(from, to); msg != "" {
		return Fail(CodeValidation, msg)
	}
	report, err := d.Reports.Revenue(ctx, inv.Business, from, to)
	if err != nil {
		return failFrom(err)
	}
	return OK(jsonMap(report))
}

func (d *HandlerDeps) handleGetBookingStats(ctx context.Context, inv *Invocation) *ToolResult {
	from, to := argString(inv.Args, "from"), argString(inv.Args, "to")
	if msg := checkPeriodArgs(from, to); msg != "" {
		return Fail(CodeValidation, msg)
	}
	stats, err := d.Reports.BookingStats(ctx, inv.Business, from, to)
	if err != nil {
		return failFrom(err)
	}
	return OK(jsonMap(stats))
}

func (d *HandlerDeps) handleGetNoShowReport(ctx context.Context, inv *Invocation) *ToolResult {
	from, to := argString(inv.Args, "from"), argString(inv.Args, "to")
	if msg := checkPeriodArgs(from, to); msg != "" {
		return Fail(CodeValidation, msg)
	}
	report, err := d.Reports.NoShows(ctx, inv.Business, from, to)
	if err != nil {
		return failFrom(err)
	}
	return OK(jsonMap(report))
}

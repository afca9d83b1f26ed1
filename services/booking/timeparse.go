package booking

import (
	"fmt"
	"strings"
	"time"

	"hebelki/models"
)

// parseBusinessTime accepts RFC3339 ("2026-03-14T10:00:00+01:00") or a bare
// local form ("2026-03-14T10:00" / "2026-03-14 10:00") interpreted in the
// business timezone.
func parseBusinessTime(biz *models.Business, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	loc := biz.Location()
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// parseBusinessDate returns local midnight for a "YYYY-MM-DD" date.
func parseBusinessDate(biz *models.Business, s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), biz.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// hoursAllow reports whether [startsAt, endsAt) falls inside the given
// weekly hours. An empty hours map means no constraint (the tenant never
// configured any), a missing or blank day means closed.
func hoursAllow(hours map[string]models.DayHours, loc *time.Location, startsAt, endsAt time.Time) bool {
	if len(hours) == 0 {
		return true
	}
	local := startsAt.In(loc)
	dh, ok := hours[strings.ToLower(local.Weekday().String())]
	if !ok || dh.Open == "" || dh.Close == "" {
		return false
	}
	openTod, err := time.Parse("15:04", dh.Open)
	if err != nil {
		return false
	}
	closeTod, err := time.Parse("15:04", dh.Close)
	if err != nil {
		return false
	}
	y, m, d := local.Date()
	openAt := time.Date(y, m, d, openTod.Hour(), openTod.Minute(), 0, 0, loc)
	closeAt := time.Date(y, m, d, closeTod.Hour(), closeTod.Minute(), 0, 0, loc)
	return !startsAt.Before(openAt) && !endsAt.After(closeAt)
}

// effectiveHours picks the member's own hours when set, the business hours
// otherwise.
func effectiveHours(biz *models.Business, member *models.Staff) map[string]models.DayHours {
	if member != nil && len(member.Hours) > 0 {
		return member.Hours
	}
	return biz.Hours
}

// dayWindow resolves the open/close instants for one local day. With no
// configured hours the whole day is open; a missing or blank entry means
// closed.
func dayWindow(hours map[string]models.DayHours, loc *time.Location, day time.Time) (time.Time, time.Time, bool) {
	local := day.In(loc)
	if len(hours) == 0 {
		return local, local.AddDate(0, 0, 1), true
	}
	dh, ok := hours[strings.ToLower(local.Weekday().String())]
	if !ok || dh.Open == "" || dh.Close == "" {
		return time.Time{}, time.Time{}, false
	}
	openTod, err := time.Parse("15:04", dh.Open)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	closeTod, err := time.Parse("15:04", dh.Close)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	y, m, d := local.Date()
	openAt := time.Date(y, m, d, openTod.Hour(), openTod.Minute(), 0, 0, loc)
	closeAt := time.Date(y, m, d, closeTod.Hour(), closeTod.Minute(), 0, 0, loc)
	return openAt, closeAt, true
}

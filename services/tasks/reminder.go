// File: services/tasks/reminder.go
package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names, shared between the enqueueing client and the worker mux.
const (
	TypeSendReminder    = "reminder:send"
	TypeSweepHolds      = "holds:sweep"
	TypeOverdueInvoices = "invoices:overdue"
)

// ReminderPayload identifies the booking a queued reminder belongs to. The
// worker re-reads the booking at fire time so a reschedule or cancellation
// between enqueue and delivery wins.
type ReminderPayload struct {
	BusinessID string `json:"businessId"`
	BookingID  string `json:"bookingId"`
}

func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// NewSweepHoldsTask asks the worker to delete expired reservation holds.
func NewSweepHoldsTask() *asynq.Task {
	return asynq.NewTask(TypeSweepHolds, nil)
}

// NewOverdueInvoicesTask asks the worker to flag sent invoices past their due
// date.
func NewOverdueInvoicesTask() *asynq.Task {
	return asynq.NewTask(TypeOverdueInvoices, nil)
}

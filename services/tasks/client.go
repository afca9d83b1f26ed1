// File: services/tasks/client.go
package tasks

import (
	"fmt"
	"time"

	"hebelki/config"
	"hebelki/models"
	"hebelki/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Client enqueues background work onto the Redis-backed queue. It satisfies
// the reservation engine's ReminderScheduler.
type Client struct {
	inner *asynq.Client
}

func NewClient() *Client {
	return &Client{
		inner: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

func (c *Client) Close() error {
	return c.inner.Close()
}

// ScheduleReminder queues a reminder for b, honoring the tenant's lead time.
// Reminders whose fire time already passed are dropped, not sent late.
func (c *Client) ScheduleReminder(biz *models.Business, b *models.Booking) error {
	if !biz.Notifications.SendReminders {
		return nil
	}
	fireAt := reminderFireAt(biz, b)
	if !fireAt.After(time.Now()) {
		utils.GetLogger().Debug("Reminder window already passed, skipping",
			zap.String("bookingId", b.ID))
		return nil
	}

	task, opts, err := NewReminderTask(ReminderPayload{
		BusinessID: biz.ID,
		BookingID:  b.ID,
	}, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := c.inner.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// reminderFireAt is the instant a reminder for b should be delivered.
func reminderFireAt(biz *models.Business, b *models.Booking) time.Time {
	lead := biz.Notifications.ReminderLeadHours
	if lead <= 0 {
		lead = 24
	}
	return b.StartsAt.Add(-time.Duration(lead) * time.Hour)
}

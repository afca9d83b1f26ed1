package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"hebelki/config"
	bookingRepo "hebelki/database/repository/booking"
	businessRepo "hebelki/database/repository/business"
	customerRepo "hebelki/database/repository/customer"
	invoiceRepo "hebelki/database/repository/invoice"
	"hebelki/models"
	"hebelki/services/messaging"
	"hebelki/services/tasks"

	"github.com/hibiken/asynq"
)

// WorkerDeps is everything the background handlers touch.
type WorkerDeps struct {
	Businesses businessRepo.BusinessRepository
	Bookings   bookingRepo.BookingRepository
	Customers  customerRepo.CustomerRepository
	Invoices   invoiceRepo.InvoiceRepository
	Messages   messaging.MessageService
}

// InitWorker runs the asynq worker and the periodic scheduler in background.
// The worker delivers booking reminders; the scheduler sweeps expired holds
// (storage hygiene only, expiry is enforced at read time) and flags overdue
// invoices.
func InitWorker(deps WorkerDeps) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(deps))
	mux.HandleFunc(tasks.TypeSweepHolds, handleSweepHoldsTask(deps))
	mux.HandleFunc(tasks.TypeOverdueInvoices, handleOverdueInvoicesTask(deps))

	go runWithRetry("worker", func() error { return srv.Run(mux) })
	go runWithRetry("scheduler", func() error { return runScheduler(redisOpts) })
}

// runWithRetry starts a long-running component with exponential backoff so a
// Redis hiccup at boot doesn't take the whole server down.
func runWithRetry(name string, run func() error) {
	const maxAttempts = 5
	log.Printf("[cron] starting %s...", name)
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err := run()
		if err == nil {
			return
		}
		log.Printf("[cron] attempt %d/%d failed to start %s: %v", attempts, maxAttempts, name, err)
		if attempts == maxAttempts {
			log.Fatalf("[cron] max retry attempts reached for %s, exiting", name)
		}
		time.Sleep(time.Duration(attempts*2) * time.Second)
	}
}

func runScheduler(redisOpts asynq.RedisClientOpt) error {
	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("@every 10m", tasks.NewSweepHoldsTask()); err != nil {
		return err
	}
	if _, err := scheduler.Register("@daily", tasks.NewOverdueInvoicesTask()); err != nil {
		return err
	}
	return scheduler.Run()
}

// handleReminderTask delivers one booking reminder. The booking is re-read
// at fire time: a cancellation or reschedule between enqueue and delivery
// wins and the reminder is silently dropped.
func handleReminderTask(deps WorkerDeps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[cron] invalid reminder payload: %v", err)
			return nil
		}

		biz, err := deps.Businesses.GetByID(ctx, p.BusinessID)
		if err != nil {
			return err
		}
		if biz == nil || !biz.Notifications.SendReminders {
			return nil
		}

		b, err := deps.Bookings.GetByID(ctx, p.BusinessID, p.BookingID)
		if err != nil {
			return err
		}
		if b == nil || b.Status != models.BookingConfirmed {
			log.Printf("[cron] skipping reminder for booking %s, no longer confirmed", p.BookingID)
			return nil
		}

		cust, err := deps.Customers.GetByID(ctx, p.BusinessID, b.CustomerID)
		if err != nil {
			return err
		}
		if cust == nil || cust.Email == "" {
			return nil
		}
		return deps.Messages.SendBookingReminder(ctx, biz, b, cust.Email)
	}
}

// handleSweepHoldsTask deletes holds past their expiry. Purely hygiene: a
// hold past ExpiresAt already counts as released everywhere.
func handleSweepHoldsTask(deps WorkerDeps) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		n, err := deps.Bookings.DeleteExpiredHolds(ctx, time.Now())
		if err != nil {
			return err
		}
		if n > 0 {
			log.Printf("[cron] swept %d expired holds", n)
		}
		return nil
	}
}

// handleOverdueInvoicesTask flags sent invoices past their due date.
func handleOverdueInvoicesTask(deps WorkerDeps) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		n, err := deps.Invoices.MarkOverdue(ctx, time.Now())
		if err != nil {
			return err
		}
		if n > 0 {
			log.Printf("[cron] marked %d invoices overdue", n)
		}
		return nil
	}
}

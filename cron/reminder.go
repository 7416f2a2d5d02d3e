package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"salora/config"
	"salora/models"
	"salora/utils"
)

const TypeAppointmentReminder = "appointment:reminder"

// ReminderPayload is the task body for an upcoming-appointment reminder.
type ReminderPayload struct {
	AppointmentID string    `json:"appointmentId"`
	SalonID       string    `json:"salonId"`
	CustomerRef   string    `json:"customerRef,omitempty"`
	StartAt       time.Time `json:"startAt"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// ReminderQueue schedules reminder tasks ahead of each appointment.
type ReminderQueue struct {
	client *asynq.Client
	lead   time.Duration
}

func NewReminderQueue() *ReminderQueue {
	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	return &ReminderQueue{
		client: asynq.NewClient(redisOpts()),
		lead:   lead,
	}
}

// ScheduleReminder enqueues a reminder to fire lead-time before the
// appointment. Appointments starting sooner than that get no reminder.
func (q *ReminderQueue) ScheduleReminder(ctx context.Context, appt *models.Appointment) error {
	fireAt := appt.StartAt.Add(-q.lead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(ReminderPayload{
		AppointmentID: appt.ID,
		SalonID:       appt.SalonID,
		CustomerRef:   appt.CustomerRef,
		StartAt:       appt.StartAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeAppointmentReminder, payload)
	if _, err := q.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker() {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAppointmentReminder, handleReminderTask)

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleReminderTask hands the reminder to the delivery channel. Actual
// customer messaging lives outside this service, so delivery here is a
// structured log the notification relay tails.
func handleReminderTask(ctx context.Context, task *asynq.Task) error {
	var p ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Printf("[ReminderHandler] Invalid payload: %v", err)
		return err
	}

	utils.GetLogger().Info("appointment reminder due",
		zap.String("appointmentID", p.AppointmentID),
		zap.String("salonID", p.SalonID),
		zap.String("customerRef", p.CustomerRef),
		zap.Time("startAt", p.StartAt))
	return nil
}

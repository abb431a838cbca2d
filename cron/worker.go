// File: skybook/cron/worker.go
package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"skybook/config"
	bookingRepo "skybook/database/repository/booking"
	"skybook/services/ticket"
	"skybook/utils"
)

const TypeTicketRender = "ticket:render"

type ticketRenderPayload struct {
	BookingID string `json:"booking_id"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTicketQueueDB,
	}
}

// TicketQueue enqueues ticket-render tasks onto the shared Redis queue.
type TicketQueue struct {
	client *asynq.Client
}

func NewTicketQueue() *TicketQueue {
	return &TicketQueue{client: asynq.NewClient(redisOpts())}
}

func (q *TicketQueue) EnqueueRender(ctx context.Context, bookingID string) error {
	payload, err := json.Marshal(ticketRenderPayload{BookingID: bookingID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeTicketRender, payload)
	if _, err := q.client.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("failed to enqueue ticket render: %w", err)
	}
	return nil
}

// InitTicketWorker runs the background worker that renders tickets after a
// booking is created and records the ticket path on the booking.
func InitTicketWorker(repo bookingRepo.BookingRepository, renderer ticket.Renderer) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 5,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTicketRender, func(ctx context.Context, t *asynq.Task) error {
		logger := utils.GetLogger()

		var payload ticketRenderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid ticket render payload: %w", err)
		}

		booking, err := repo.GetByID(ctx, payload.BookingID)
		if err != nil {
			return fmt.Errorf("failed to load booking %s: %w", payload.BookingID, err)
		}

		path, err := renderer.Render(booking)
		if err != nil {
			return fmt.Errorf("failed to render ticket for %s: %w", payload.BookingID, err)
		}
		if err := repo.SetTicketPath(ctx, payload.BookingID, path); err != nil {
			return fmt.Errorf("failed to record ticket path for %s: %w", payload.BookingID, err)
		}

		logger.Info("ticket rendered",
			zap.String("bookingId", payload.BookingID),
			zap.String("path", path))
		return nil
	})

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatalf("ticket worker failed: %v", err)
		}
	}()
}

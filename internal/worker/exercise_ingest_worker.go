package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"exercise-tracker/internal/app"
	"exercise-tracker/internal/observability"
	"exercise-tracker/internal/platform/rabbitmq"
)

type ExerciseRecorder interface {
	Record(ctx context.Context, input app.RecordInput) (*app.ExerciseResult, bool, error)
}

// IngestMessage is the body accepted on the ingest queue. DurationMinutes may be a
// JSON number or a numeric string.
type IngestMessage struct {
	UserID          string      `json:"userId"`
	Description     string      `json:"description"`
	DurationMinutes json.Number `json:"durationMinutes"`
	Date            string      `json:"date"`
}

// ExerciseIngestWorker records exercises delivered on a queue. Every delivery is
// acked on success and nacked without requeue otherwise.
type ExerciseIngestWorker struct {
	conn      *amqp.Connection
	recorder  ExerciseRecorder
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewExerciseIngestWorker(conn *amqp.Connection, recorder ExerciseRecorder, queueName string) *ExerciseIngestWorker {
	return &ExerciseIngestWorker{
		conn:      conn,
		recorder:  recorder,
		queueName: queueName,
	}
}

func (w *ExerciseIngestWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				w.handle(workerCtx, d)
			}
		}
	}()

	return nil
}

func (w *ExerciseIngestWorker) handle(ctx context.Context, d amqp.Delivery) {
	var msg IngestMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		log.Printf("ingest decode message failed: %v", err)
		observability.IngestMessages.WithLabelValues("malformed").Inc()
		_ = d.Nack(false, false)
		return
	}

	_, _, err := w.recorder.Record(ctx, app.RecordInput{
		UserID:      msg.UserID,
		Description: msg.Description,
		Duration:    msg.DurationMinutes.String(),
		Date:        msg.Date,
	})
	if err != nil {
		outcome := "failed"
		switch {
		case errors.Is(err, app.ErrValidation):
			outcome = "invalid"
		case errors.Is(err, app.ErrUserNotFound):
			outcome = "unknown_user"
		}
		log.Printf("ingest record exercise for user %q failed: %v", msg.UserID, err)
		observability.IngestMessages.WithLabelValues(outcome).Inc()
		_ = d.Nack(false, false)
		return
	}

	observability.IngestMessages.WithLabelValues("recorded").Inc()
	_ = d.Ack(false)
}

func (w *ExerciseIngestWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

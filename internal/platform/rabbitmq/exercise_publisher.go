package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"exercise-tracker/internal/model"
)

// ExercisePublisher sends exercise.recorded events to a durable queue through the default exchange.
type ExercisePublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewExercisePublisher(conn *amqp.Connection, queueName string) *ExercisePublisher {
	return &ExercisePublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *ExercisePublisher) PublishRecorded(ctx context.Context, event model.ExerciseRecorded) error {
	msg, err := recordedPublishing(event)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if err := DeclareQueue(ch, p.queueName); err != nil {
		return err
	}

	if err := ch.PublishWithContext(ctx, "", p.queueName, false, false, msg); err != nil {
		return fmt.Errorf("publish exercise recorded failed: %w", err)
	}
	return nil
}

func recordedPublishing(event model.ExerciseRecorded) (amqp.Publishing, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal exercise recorded payload failed: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         "exercise.recorded",
		MessageId:    event.ExerciseID,
		Timestamp:    event.RecordedAt,
		Body:         payload,
		DeliveryMode: amqp.Persistent,
	}, nil
}

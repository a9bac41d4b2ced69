package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"holoframe-backend/internal/model"
)

const photoUploadedType = "photo.uploaded"

// PhotoEventPublisher announces new photos on a durable queue so the gallery
// warm worker can refresh the owner's cached public gallery.
type PhotoEventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewPhotoEventPublisher(conn *amqp.Connection, queueName string) *PhotoEventPublisher {
	return &PhotoEventPublisher{conn: conn, queueName: queueName}
}

// Publish sends one PhotoUploaded message. The gallery service calls it once
// per upload, after the photo row is stored and the owner's cached gallery
// has been dropped, so a consumer always reads the new photo back.
func (p *PhotoEventPublisher) Publish(ctx context.Context, event model.PhotoUploaded) error {
	msg, err := newPhotoMessage(event)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if _, err := DeclareQueue(ch, p.queueName); err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, "", p.queueName, false, false, msg); err != nil {
		return fmt.Errorf("publish photo %s event failed: %w", event.PhotoID, err)
	}
	return nil
}

// newPhotoMessage builds a persistent JSON message keyed by the photo id.
func newPhotoMessage(event model.PhotoUploaded) (amqp.Publishing, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal photo event failed: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.PhotoID,
		Type:         photoUploadedType,
		Timestamp:    event.Date,
		Body:         payload,
	}, nil
}

// DeclareQueue declares the durable queue shared by publisher and worker.
func DeclareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(name, true, false, false, false, nil)
	if err != nil {
		return q, fmt.Errorf("declare queue %s failed: %w", name, err)
	}
	return q, nil
}

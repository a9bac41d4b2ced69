package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"holoframe-backend/internal/model"
	"holoframe-backend/internal/platform/rabbitmq"
)

// GalleryWarmer rebuilds the cached public gallery of a share link.
type GalleryWarmer interface {
	WarmGallery(ctx context.Context, link string) error
}

// GalleryWarmWorker consumes photo upload events and re-warms the public
// gallery cache of the uploader's link.
type GalleryWarmWorker struct {
	conn      *amqp.Connection
	warmer    GalleryWarmer
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewGalleryWarmWorker(conn *amqp.Connection, warmer GalleryWarmer, queueName string) *GalleryWarmWorker {
	return &GalleryWarmWorker{
		conn:      conn,
		warmer:    warmer,
		queueName: queueName,
	}
}

func (w *GalleryWarmWorker) Start(ctx context.Context) error {
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

	if _, err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
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
				if err := w.handle(workerCtx, d.Body); err != nil {
					log.Printf("gallery warm worker: %v", err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *GalleryWarmWorker) handle(ctx context.Context, body []byte) error {
	var event model.PhotoUploaded
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode photo event failed: %w", err)
	}
	// Private uploads never show up in a public gallery.
	if !event.IsPublic || event.Link == "" {
		return nil
	}
	if err := w.warmer.WarmGallery(ctx, event.Link); err != nil {
		return fmt.Errorf("warm gallery %q failed: %w", event.Link, err)
	}
	return nil
}

func (w *GalleryWarmWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

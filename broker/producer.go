package broker

import (
	"errors"
	"log"

	"github.com/123AnkitSharma/Taskify/config"

	"github.com/nats-io/nats.go"
)

const (
	TaskEventsSubject = "taskify.tasks"
	UserEventsSubject = "taskify.users"
)

var ErrProducerNotInitialized = errors.New("broker producer is not initialized")

var conn *nats.Conn

// InitProducer connects to the NATS server configured in cfg
func InitProducer(cfg config.Config) error {
	var err error
	conn, err = nats.Connect(cfg.NatsURL,
		nats.Name("taskify-api"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return err
	}

	log.Printf("Connected to NATS at %s", cfg.NatsURL)
	return nil
}

// PublishMessage publishes a JSON payload to the given subject
func PublishMessage(subject string, payload []byte) error {
	if conn == nil {
		return ErrProducerNotInitialized
	}

	if err := conn.Publish(subject, payload); err != nil {
		log.Printf("Failed to publish message to subject %s: %v", subject, err)
		return err
	}

	return nil
}

// IsConnected reports whether the producer holds a live NATS connection
func IsConnected() bool {
	return conn != nil && conn.IsConnected()
}

func CloseProducer() {
	if conn != nil {
		if err := conn.Drain(); err != nil {
			log.Printf("Failed to drain NATS connection: %v", err)
		}
		conn = nil
	}
}

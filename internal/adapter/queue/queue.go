package queue

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/free-mobile-netstat/fmns-api/pkg/config"
)

// MessageQueue defines the interface for a message queue adapter
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

// New builds the queue adapter selected by configuration. Returns
// (nil, nil) when no backend is configured: event publishing is
// optional and the ingestion pipeline treats a nil queue as disabled.
func New(cfg config.QueueConfig, log *zap.Logger) (MessageQueue, error) {
	switch cfg.Backend {
	case "":
		return nil, nil
	case "nats":
		return NewNATSQueue(cfg.URL, log)
	case "rabbitmq":
		return NewRabbitMQQueue(cfg.URL, log)
	default:
		return nil, fmt.Errorf("unknown queue backend %q", cfg.Backend)
	}
}

package event

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"darkops-lab/internal/models"

	"github.com/streadway/amqp"
)

type Publisher interface {
	Publish(event *models.LabEvent) error
	Close() error
}

type EventPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	enabled  bool
	mu       sync.Mutex
}

// NewEventPublisher declares a durable topic exchange. An empty URI yields a
// disabled publisher that drops events.
func NewEventPublisher(amqpURL, exchange string) (*EventPublisher, error) {
	if amqpURL == "" {
		log.Println("Warning: RabbitMQ URI is empty, event publishing is disabled")
		return &EventPublisher{exchange: exchange, enabled: false}, nil
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Printf("Event publisher initialized with exchange: %s", exchange)
	return &EventPublisher{conn: conn, channel: ch, exchange: exchange, enabled: true}, nil
}

func (p *EventPublisher) Publish(event *models.LabEvent) error {
	if !p.enabled {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.Publish(
		p.exchange,
		string(event.EventType), // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
			Headers: amqp.Table{
				"event_type": string(event.EventType),
				"session_id": event.SessionID,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	if !p.enabled {
		return nil
	}
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			log.Printf("Error closing RabbitMQ channel: %v", err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("error closing RabbitMQ connection: %w", err)
		}
	}
	return nil
}

type MockPublisher struct {
	mu     sync.Mutex
	Events []models.LabEvent
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Events: make([]models.LabEvent, 0)}
}

func (m *MockPublisher) Publish(event *models.LabEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, *event)
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}

// Types returns the published event types in order.
func (m *MockPublisher) Types() []models.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]models.EventType, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.EventType
	}
	return types
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const sourceService = "foxyweb"

// Envelope wraps an event published to NATS
type Envelope struct {
	EventID       string          `json:"eventId"`
	EventType     EventType       `json:"eventType"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"sourceService"`
	Payload       json.RawMessage `json:"payload"`
}

// subjectPublisher is the part of *nats.Conn the forwarder uses
type subjectPublisher interface {
	Publish(subject string, data []byte) error
}

// NATSForwarder republishes bus events on NATS subjects so the bot process
// can react to dashboard activity
type NATSForwarder struct {
	conn          subjectPublisher
	subjectPrefix string
	close         func()
}

// ConnectNATSForwarder dials the NATS servers (comma-separated)
func ConnectNATSForwarder(servers, subjectPrefix string) (*NATSForwarder, error) {
	nc, err := nats.Connect(servers,
		nats.Name(sourceService),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Error("NATS disconnected with error")
			} else {
				log.Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.WithField("servers", servers).Info("Connected to NATS")

	return &NATSForwarder{
		conn:          nc,
		subjectPrefix: subjectPrefix,
		close:         nc.Close,
	}, nil
}

// NewNATSForwarder wraps an existing publisher
func NewNATSForwarder(conn subjectPublisher, subjectPrefix string) *NATSForwarder {
	return &NATSForwarder{conn: conn, subjectPrefix: subjectPrefix}
}

// Subject returns the subject an event type is published on
func (f *NATSForwarder) Subject(eventType EventType) string {
	return fmt.Sprintf("%s.%s", f.subjectPrefix, eventType)
}

// Handle is a bus handler publishing the event to NATS
func (f *NATSForwarder) Handle(ctx context.Context, event Event) {
	if err := f.Forward(event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"error":     err,
		}).Error("Failed to forward event to NATS")
	}
}

// Forward publishes a single event wrapped in an envelope
func (f *NATSForwarder) Forward(event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := Envelope{
		EventID:       uuid.NewString(),
		EventType:     event.Type(),
		Timestamp:     time.Now().UTC(),
		SourceService: sourceService,
		Payload:       payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := f.conn.Publish(f.Subject(event.Type()), data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Close closes the NATS connection if the forwarder owns one
func (f *NATSForwarder) Close() {
	if f.close != nil {
		f.close()
	}
}

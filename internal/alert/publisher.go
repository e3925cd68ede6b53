// Package alert publishes high-scoring opportunities to the event bus. This
// is the alerting stub: delivery, scheduling, and subscriber management live
// outside this service.
package alert

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/Roach1197/The-Radar/internal/domain/radar"
)

// Publisher emits opportunity-detected events on a NATS subject.
type Publisher struct {
	conn     *nats.Conn
	subject  string
	minScore int
}

// NewPublisher creates a publisher that emits opportunities scoring at least
// minScore.
func NewPublisher(conn *nats.Conn, subject string, minScore int) *Publisher {
	return &Publisher{conn: conn, subject: subject, minScore: minScore}
}

// Publish emits op when it crosses the score threshold.
func (p *Publisher) Publish(op radar.Opportunity) error {
	if op.Score < p.minScore {
		return nil
	}

	data, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("marshal opportunity: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish opportunity: %w", err)
	}
	return nil
}

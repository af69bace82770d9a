// Package notify publishes plan-change events to NATS so external systems
// can react to configuration changes without polling.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/actiongraph/internal/logfields"
	"git.home.luguber.info/inful/actiongraph/internal/plan"
)

// PlanChangeEvent is the JSON payload published on every plan change.
type PlanChangeEvent struct {
	Signature string    `json:"signature"`
	Added     []string  `json:"added,omitempty"`
	Removed   []string  `json:"removed,omitempty"`
	Unchanged int       `json:"unchanged"`
	At        time.Time `json:"at"`
}

// Publisher sends plan-change events to a NATS subject. A nil Publisher is
// valid and publishes nothing, so notification stays optional.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to the NATS server at url.
func NewPublisher(url, subject string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	slog.Info("Connected plan-change publisher", logfields.Subject(subject))
	return &Publisher{conn: conn, subject: subject}, nil
}

// PublishDiff publishes the plan diff. No-op on a nil publisher or an
// unchanged plan.
func (p *Publisher) PublishDiff(signature string, d *plan.Diff) error {
	if p == nil || !d.Changed() {
		return nil
	}
	ev := PlanChangeEvent{
		Signature: signature,
		Unchanged: d.Unchanged,
		At:        time.Now().UTC(),
	}
	for _, c := range d.Added {
		ev.Added = append(ev.Added, c.Description)
	}
	for _, c := range d.Removed {
		ev.Removed = append(ev.Removed, c.Description)
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal plan-change event: %w", err)
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", p.subject, err)
	}
	return nil
}

// Close drains and closes the connection. Safe on nil.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		slog.Warn("Error draining NATS connection", logfields.Error(err))
	}
}

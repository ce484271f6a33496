// Package bus publishes agent events to NATS so external observers can
// follow a run. Publishing is fire-and-forget: a failed or absent broker
// never slows the engine down.
package bus

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/vinayprograms/agentkit/logging"

	"github.com/vinayprograms/taskengine/internal/agent"
)

// conn is the slice of *nats.Conn the publisher needs.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// Publisher forwards agent events to a NATS subject scoped by run id.
type Publisher struct {
	conn   conn
	runID  string
	logger *logging.Logger
}

// Connect dials a NATS server and returns a publisher for one run.
func Connect(url, runID string) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("taskengine-"+runID))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return newPublisher(nc, runID), nil
}

func newPublisher(c conn, runID string) *Publisher {
	return &Publisher{
		conn:   c,
		runID:  runID,
		logger: logging.New().WithComponent("bus"),
	}
}

// Subject returns the per-run subject events are published on.
func (p *Publisher) Subject() string {
	return "taskengine.events." + p.runID
}

// Publish sends one event. Marshal or publish failures are logged and
// dropped.
func (p *Publisher) Publish(ev agent.Event) {
	data, err := agent.MarshalEvent(ev)
	if err != nil {
		p.logger.Warn("failed to encode event", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if err := p.conn.Publish(p.Subject(), data); err != nil {
		p.logger.Warn("failed to publish event", map[string]interface{}{
			"subject": p.Subject(),
			"error":   err.Error(),
		})
	}
}

// Run drains an event channel, publishing each event until the channel
// closes. Intended to run as a goroutine next to an agent run.
func (p *Publisher) Run(events <-chan agent.Event) {
	for ev := range events {
		p.Publish(ev)
	}
}

// Close flushes buffered messages and closes the connection.
func (p *Publisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("failed to drain NATS connection", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

package events

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"hire-portal/internal/audit"

	"github.com/nats-io/nats.go"
)

// Publisher sends audit events to NATS. A nil *Publisher drops events, which
// is how the portal runs when NATS_URL is unset.
type Publisher struct {
	nc       *nats.Conn
	producer string
	logger   *log.Logger
}

func Connect(url, name string, logger *log.Logger) (*nats.Conn, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("nats url not configured")
	}
	return nats.Connect(url,
		nats.Name(name),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if logger != nil && err != nil {
				logger.Printf("[Events] NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			if logger != nil {
				logger.Printf("[Events] NATS reconnected url=%s", c.ConnectedUrl())
			}
		}),
	)
}

func NewPublisher(nc *nats.Conn, producer string, logger *log.Logger) *Publisher {
	if nc == nil {
		return nil
	}
	return &Publisher{nc: nc, producer: producer, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, e audit.Event) error {
	if p == nil || p.nc == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.Producer == "" {
		e.Producer = p.producer
	}

	b, err := json.Marshal(e)
	if err != nil {
		return err
	}

	subject := e.EventType.Subject()
	if err := p.nc.Publish(subject, b); err != nil {
		if p.logger != nil {
			p.logger.Printf("[Events] Publish failed subject=%s type=%s: %v", subject, e.EventType, err)
		}
		return err
	}
	if p.logger != nil {
		p.logger.Printf("[Events] Published subject=%s type=%s id=%s", subject, e.EventType, e.EventID)
	}
	return nil
}

func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	_ = p.nc.Drain()
}

// Consumer delivers raw audit messages to a handler.
type Consumer struct {
	nc     *nats.Conn
	logger *log.Logger
}

func NewConsumer(nc *nats.Conn, logger *log.Logger) *Consumer {
	return &Consumer{nc: nc, logger: logger}
}

// Subscribe joins queue so that several auditor replicas share the stream.
func (c *Consumer) Subscribe(ctx context.Context, subject, queue string, handle func(context.Context, []byte) error) (*nats.Subscription, error) {
	if c == nil || c.nc == nil {
		return nil, errors.New("nil nats consumer")
	}
	return c.nc.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		if err := handle(ctx, msg.Data); err != nil && c.logger != nil {
			c.logger.Printf("[Events] Handler error subject=%s: %v", msg.Subject, err)
		}
	})
}

func (c *Consumer) Close() {
	if c == nil || c.nc == nil {
		return
	}
	_ = c.nc.Drain()
}

package libbus

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// PS is the NATS implementation of Messenger.
type PS struct {
	nc *nats.Conn
}

// NewPubSub connects to the NATS server of cfg.
func NewPubSub(ctx context.Context, cfg *Config) (Messenger, error) {
	opts := []nats.Option{
		nats.Name("testrail-mcp"),
		nats.Timeout(5 * time.Second),
		nats.MaxReconnects(-1),
	}
	if cfg.NATSUser != "" {
		opts = append(opts, nats.UserInfo(cfg.NATSUser, cfg.NATSPassword))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nc, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats %s: %w", cfg.NATSURL, err)
	}
	return &PS{nc: nc}, nil
}

// Publish implements Messenger.Publish
func (p *PS) Publish(ctx context.Context, subject string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.nc.IsClosed() {
		return ErrConnectionClosed
	}
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("%w: %w", ErrMessagePublish, err)
	}
	return nil
}

// Stream implements Messenger.Stream
func (p *PS) Stream(ctx context.Context, subject string, ch chan<- []byte) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.nc.IsClosed() {
		return nil, ErrConnectionClosed
	}
	sub, err := p.nc.Subscribe(subject, func(msg *nats.Msg) {
		select {
		case ch <- msg.Data:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStreamSubscriptionFail, err)
	}
	// make sure the subscription is registered before the first Publish
	if err := p.nc.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("%w: %w", ErrStreamSubscriptionFail, err)
	}

	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()
	return sub, nil
}

// Close flushes pending messages and closes the connection.
func (p *PS) Close() error {
	if p.nc.IsClosed() {
		return nil
	}
	err := p.nc.Flush()
	p.nc.Close()
	return err
}

var _ Messenger = (*PS)(nil)
